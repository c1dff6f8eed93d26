package postgres

import (
	"context"

	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/platform/apperr"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const reservationColumns = `id, user_id, animal_id, start_date, end_date`

type reservationRow struct {
	ID        int64             `db:"id"`
	UserID    string            `db:"user_id"`
	AnimalID  int64             `db:"animal_id"`
	StartDate reservations.Date `db:"start_date"`
	EndDate   reservations.Date `db:"end_date"`
}

func (r reservationRow) toDomain() reservations.Reservation {
	return reservations.Reservation{
		ID:        r.ID,
		UserID:    r.UserID,
		AnimalID:  r.AnimalID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

type ReservationsRepo struct {
	db *sqlx.DB
}

func NewReservationsRepo(db *sqlx.DB) *ReservationsRepo {
	return &ReservationsRepo{db: db}
}

// Create inserta dentro de una transacción; un FK inválido hace rollback y
// sale como ReferenceError.
func (r *ReservationsRepo) Create(ctx context.Context, res reservations.Reservation) (reservations.Reservation, error) {
	var row reservationRow
	err := WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sqlx.Tx) error {
		return tx.QueryRowxContext(ctx, `
			INSERT INTO reservations (user_id, animal_id, start_date, end_date)
			VALUES ($1,$2,$3,$4)
			RETURNING `+reservationColumns,
			res.UserID,
			res.AnimalID,
			res.StartDate,
			res.EndDate,
		).StructScan(&row)
	})
	if err != nil {
		if isInvalidText(err) {
			return reservations.Reservation{}, apperr.ErrReference.Wrap(err)
		}
		return reservations.Reservation{}, mapError(err, nil)
	}
	return row.toDomain(), nil
}

func (r *ReservationsRepo) GetByID(ctx context.Context, id int64) (reservations.Reservation, error) {
	var row reservationRow
	err := r.db.GetContext(ctx, &row, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	if err != nil {
		return reservations.Reservation{}, mapError(err, apperr.ErrReservationNotFound)
	}
	return row.toDomain(), nil
}

func (r *ReservationsRepo) ListByUser(ctx context.Context, userID string) ([]reservations.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *ReservationsRepo) ListByAnimal(ctx context.Context, animalID int64) ([]reservations.Reservation, error) {
	return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE animal_id = $1 ORDER BY id`, animalID)
}

// Update arma el SET solo con las columnas del patch.
func (r *ReservationsRepo) Update(ctx context.Context, id int64, p reservations.Patch) (reservations.Reservation, error) {
	cols := p.Columns()
	if len(cols) == 0 {
		return r.GetByID(ctx, id)
	}

	query, args, err := sq.Update("reservations").
		SetMap(cols).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + reservationColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return reservations.Reservation{}, apperr.ErrInternal.Wrap(err)
	}

	var row reservationRow
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&row); err != nil {
		return reservations.Reservation{}, mapError(err, apperr.ErrReservationNotFound)
	}
	return row.toDomain(), nil
}

// Delete filtra por dueño e id; cero filas afectadas no es error.
func (r *ReservationsRepo) Delete(ctx context.Context, userID string, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		if isInvalidText(err) {
			return nil
		}
		return mapError(err, nil)
	}
	return nil
}

func (r *ReservationsRepo) list(ctx context.Context, query string, arg any) ([]reservations.Reservation, error) {
	var rows []reservationRow
	if err := r.db.SelectContext(ctx, &rows, query, arg); err != nil {
		if isInvalidText(err) {
			return []reservations.Reservation{}, nil
		}
		return nil, mapError(err, nil)
	}

	out := make([]reservations.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
