package memory

import (
	"context"
	"slices"

	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/platform/apperr"
)

type reservationRepo struct {
	st *Store
}

func NewReservationRepo(st *Store) reservations.Repository {
	return &reservationRepo{st: st}
}

// Create valida las FKs igual que Postgres: user y animal deben existir.
func (r *reservationRepo) Create(_ context.Context, res reservations.Reservation) (reservations.Reservation, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if err := r.checkRefsLocked(res.UserID, res.AnimalID); err != nil {
		return reservations.Reservation{}, err
	}

	r.st.reservationSeq++
	res.ID = r.st.reservationSeq
	r.st.reservations[res.ID] = res
	return res, nil
}

func (r *reservationRepo) GetByID(_ context.Context, id int64) (reservations.Reservation, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	res, ok := r.st.reservations[id]
	if !ok {
		return reservations.Reservation{}, apperr.ErrReservationNotFound
	}
	return res, nil
}

func (r *reservationRepo) ListByUser(_ context.Context, userID string) ([]reservations.Reservation, error) {
	return r.list(func(res reservations.Reservation) bool { return res.UserID == userID }), nil
}

func (r *reservationRepo) ListByAnimal(_ context.Context, animalID int64) ([]reservations.Reservation, error) {
	return r.list(func(res reservations.Reservation) bool { return res.AnimalID == animalID }), nil
}

func (r *reservationRepo) Update(_ context.Context, id int64, p reservations.Patch) (reservations.Reservation, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	current, ok := r.st.reservations[id]
	if !ok {
		return reservations.Reservation{}, apperr.ErrReservationNotFound
	}

	next := p.Apply(current)
	if next.AnimalID != current.AnimalID {
		if err := r.checkRefsLocked(next.UserID, next.AnimalID); err != nil {
			return reservations.Reservation{}, err
		}
	}

	r.st.reservations[id] = next
	return next, nil
}

// Delete filtra por dueño; si no matchea no hace nada.
func (r *reservationRepo) Delete(_ context.Context, userID string, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if res, ok := r.st.reservations[id]; ok && res.UserID == userID {
		delete(r.st.reservations, id)
	}
	return nil
}

func (r *reservationRepo) list(match func(reservations.Reservation) bool) []reservations.Reservation {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]reservations.Reservation, 0)
	for _, res := range r.st.reservations {
		if match(res) {
			out = append(out, res)
		}
	}
	slices.SortFunc(out, func(a, b reservations.Reservation) int { return int(a.ID - b.ID) })
	return out
}

func (r *reservationRepo) checkRefsLocked(userID string, animalID int64) error {
	if _, ok := r.st.users[userID]; !ok {
		return apperr.ErrReference.WithMessage("user " + userID + " does not exist")
	}
	if _, ok := r.st.animals[animalID]; !ok {
		return apperr.ErrReference.WithMessage("animal does not exist")
	}
	return nil
}
