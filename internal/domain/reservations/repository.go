package reservations

import "context"

// Repository es el Reservation Store.
//
// Create corre en una transacción: si falla no queda fila parcial. Las
// violaciones de FK salen como ReferenceError. Update arma un UPDATE solo
// con las columnas del patch. Delete filtra por dueño e id; cero filas
// afectadas no es error.
type Repository interface {
	Create(ctx context.Context, r Reservation) (Reservation, error)
	GetByID(ctx context.Context, id int64) (Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]Reservation, error)
	ListByAnimal(ctx context.Context, animalID int64) ([]Reservation, error)
	Update(ctx context.Context, id int64, p Patch) (Reservation, error)
	Delete(ctx context.Context, userID string, id int64) error
}
