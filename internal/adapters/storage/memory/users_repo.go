package memory

import (
	"context"
	"slices"

	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/domain/users"
	"animal-reservations/internal/platform/apperr"
)

type userRepo struct {
	st *Store
}

func NewUserRepo(st *Store) users.Repository {
	return &userRepo{st: st}
}

func (r *userRepo) Create(_ context.Context, u users.User) (users.User, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if u.ID == "" {
		return users.User{}, apperr.Validation("user id required")
	}
	if _, exists := r.st.users[u.ID]; exists {
		return users.User{}, apperr.New(apperr.KindDuplicate, "DuplicateUserError", "user already exists")
	}
	for _, existing := range r.st.users {
		if existing.Email == u.Email {
			return users.User{}, apperr.ErrDuplicateEmail
		}
	}

	r.st.users[u.ID] = u
	r.st.userOrder = append(r.st.userOrder, u.ID)
	return u, nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (users.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	u, ok := r.st.users[id]
	if !ok {
		return users.User{}, apperr.ErrUserNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	for _, u := range r.st.users {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, apperr.ErrUserNotFound
}

// List respeta el orden de alta.
func (r *userRepo) List(_ context.Context) ([]users.User, error) {
	r.st.mu.RLock()
	defer r.st.mu.RUnlock()

	out := make([]users.User, 0, len(r.st.userOrder))
	for _, id := range r.st.userOrder {
		out = append(out, r.st.users[id])
	}
	return out, nil
}

func (r *userRepo) Delete(_ context.Context, id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()

	if _, ok := r.st.users[id]; !ok {
		return apperr.ErrUserNotFound
	}
	delete(r.st.users, id)
	r.st.userOrder = slices.DeleteFunc(r.st.userOrder, func(v string) bool { return v == id })
	r.st.cascadeLocked(func(res reservations.Reservation) bool { return res.UserID == id })
	return nil
}
