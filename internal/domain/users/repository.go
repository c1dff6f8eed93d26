package users

import "context"

// Repository es el Credential Store. Las implementaciones devuelven errores
// de apperr: DuplicateEmailError en Create, UserNotFoundError en lecturas.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id string) error
}
