package animals

import (
	"context"
	"strings"

	"animal-reservations/internal/platform/apperr"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Type       string
	Breed      string
	NumAnimals int
	ImageURL   string
}

func (s *Service) List(ctx context.Context, f Filter) ([]Animal, error) {
	return s.repo.List(ctx, normalizeFilter(f))
}

func (s *Service) GetByID(ctx context.Context, id int64) (Animal, error) {
	if !validID(id) {
		return Animal{}, apperr.ErrAnimalNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Create es administrativo (seed / CLI); no hay endpoint público.
func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	a := Animal{
		Type:       strings.TrimSpace(in.Type),
		Breed:      strings.TrimSpace(in.Breed),
		NumAnimals: in.NumAnimals,
		ImageURL:   strings.TrimSpace(in.ImageURL),
	}
	if a.Type == "" || a.Breed == "" {
		return Animal{}, apperr.Validation("type and breed are required")
	}
	if a.NumAnimals <= 0 {
		return Animal{}, apperr.Validation("num_animals must be positive")
	}
	return s.repo.Create(ctx, a)
}

// Delete arrastra las reservas del animal (cascade en el store).
func (s *Service) Delete(ctx context.Context, id int64) error {
	if !validID(id) {
		return apperr.ErrAnimalNotFound
	}
	return s.repo.Delete(ctx, id)
}

func normalizeFilter(f Filter) Filter {
	out := Filter{Query: strings.TrimSpace(f.Query)}
	seen := map[string]bool{}
	for _, t := range f.Types {
		t = strings.TrimSpace(t)
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out.Types = append(out.Types, t)
	}
	return out
}

// Matches es la semántica de Filter que replican los stores.
func (f Filter) Matches(a Animal) bool {
	if f.IsEmpty() {
		return true
	}
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if strings.EqualFold(t, a.Type) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(a.Type), q) && !strings.Contains(strings.ToLower(a.Breed), q) {
			return false
		}
	}
	return true
}
