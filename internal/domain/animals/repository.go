package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) (Animal, error)
	GetByID(ctx context.Context, id int64) (Animal, error)
	// List devuelve en orden de id.
	List(ctx context.Context, f Filter) ([]Animal, error)
	Delete(ctx context.Context, id int64) error
}
