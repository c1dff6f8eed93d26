package reservations

import (
	"context"
	"math"
	"strings"
	"time"

	"animal-reservations/internal/platform/apperr"
)

// maxID es el mayor valor de las columnas SERIAL/INT (int4) de reservations.
const maxID = math.MaxInt32

func validID(id int64) bool {
	return id > 0 && id <= maxID
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	UserID    string
	AnimalID  int64
	StartDate Date
	EndDate   Date
}

// Create no chequea solapamiento con otras reservas del mismo animal ni fechas
// pasadas; solo exige referencias y start <= end.
func (s *Service) Create(ctx context.Context, in CreateInput) (Reservation, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return Reservation{}, apperr.Validation("user_id is required")
	}
	if in.AnimalID <= 0 {
		return Reservation{}, apperr.Validation("animal_id is required")
	}
	if in.AnimalID > maxID {
		return Reservation{}, apperr.ErrReference
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return Reservation{}, apperr.Validation("start_date and end_date are required")
	}
	if in.StartDate.After(in.EndDate) {
		return Reservation{}, apperr.ErrInvalidDateRange.WithMessage("Start date must be before the end date.")
	}

	return s.repo.Create(ctx, Reservation{
		UserID:    userID,
		AnimalID:  in.AnimalID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (Reservation, error) {
	if !validID(id) {
		return Reservation{}, apperr.ErrReservationNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListByUser trata la lista vacía como error (NoReservationsFoundError).
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Reservation, error) {
	items, err := s.repo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.ErrNoReservationsFound.WithMessage("No reservations found under that user")
	}
	return items, nil
}

// ListByAnimal, igual que ListByUser, trata vacío como error.
func (s *Service) ListByAnimal(ctx context.Context, animalID int64) ([]Reservation, error) {
	if !validID(animalID) {
		return nil, apperr.ErrNoReservationsFound.WithMessage("No reservations found for that animal")
	}
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.ErrNoReservationsFound.WithMessage("No reservations found for that animal")
	}
	return items, nil
}

// Update aplica un patch parcial. Un patch vacío es no-op y devuelve nil.
// Si el patch toca fechas, el rango resultante debe cumplir start <= end y
// ninguna fecha puede ser anterior a hoy; si no, InvalidDateRangeError sin
// tocar el store.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (*Reservation, error) {
	if p.IsEmpty() {
		return nil, nil
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.TouchesDates() {
		if err := s.validateRange(p.Apply(current)); err != nil {
			return nil, err
		}
	}
	if p.AnimalID != nil && *p.AnimalID <= 0 {
		return nil, apperr.Validation("animal_id must be positive")
	}
	if p.AnimalID != nil && *p.AnimalID > maxID {
		return nil, apperr.ErrReference
	}

	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete está acotado al dueño: borrar la reserva de otro usuario no afecta
// filas y no devuelve error.
func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || !validID(id) {
		return nil
	}
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) validateRange(r Reservation) error {
	today := DateOf(s.now())

	if r.StartDate.Before(today) {
		return apperr.ErrInvalidDateRange.WithMessage("Start date must be in the future.")
	}
	if r.EndDate.Before(today) {
		return apperr.ErrInvalidDateRange.WithMessage("End date must be in the future.")
	}
	if r.StartDate.After(r.EndDate) {
		return apperr.ErrInvalidDateRange.WithMessage("Start date must be before the end date.")
	}
	return nil
}
