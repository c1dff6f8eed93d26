package memory

import (
	"context"
	"slices"

	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/platform/apperr"
)

type animalRepo struct {
	st *Store
}

func NewAnimalRepo(st *Store) animals.Repository {
	return &animalRepo{st: st}
}

func (r *animalRepo) Create(_ context.Context, a animals.Animal) (animals.Animal, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	r.st.animalSeq++
	a.ID = r.st.animalSeq
	r.st.animals[a.ID] = a
	return a, nil
}

func (r *animalRepo) GetByID(_ context.Context, id int64) (animals.Animal, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	a, ok := r.st.animals[id]
	if !ok {
		return animals.Animal{}, apperr.ErrAnimalNotFound
	}
	return a, nil
}

func (r *animalRepo) List(_ context.Context, f animals.Filter) ([]animals.Animal, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.st.animals))
	for _, a := range r.st.animals {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b animals.Animal) int { return int(a.ID - b.ID) })
	return out, nil
}

func (r *animalRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.animals[id]; !ok {
		return apperr.ErrAnimalNotFound
	}
	delete(r.st.animals, id)
	r.st.cascadeLocked(func(res reservations.Reservation) bool { return res.AnimalID == id })
	return nil
}
