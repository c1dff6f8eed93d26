package postgres

import (
	"context"
	"strings"

	"animal-reservations/internal/domain/users"
	"animal-reservations/internal/platform/apperr"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, first_name, last_name, email, password, address, host`

type userRow struct {
	ID        string `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Password  string `db:"password"`
	Address   string `db:"address"`
	Host      bool   `db:"host"`
}

func (r userRow) toDomain() users.User {
	return users.User{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Address:      r.Address,
		Host:         r.Host,
		PasswordHash: r.Password,
	}
}

type UsersRepo struct {
	db *sqlx.DB
}

func NewUsersRepo(db *sqlx.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	var row userRow
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, password, address, host)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING `+userColumns,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.Address,
		u.Host,
	).StructScan(&row)
	if err != nil {
		if isUniqueViolation(err) {
			return users.User{}, apperr.ErrDuplicateEmail.Wrap(err)
		}
		return users.User{}, mapError(err, nil)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, apperr.ErrUserNotFound
	}

	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		// un id que no es uuid hace fallar el cast en Postgres (22P02)
		if isInvalidText(err) {
			return users.User{}, apperr.ErrUserNotFound
		}
		return users.User{}, mapError(err, apperr.ErrUserNotFound)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	var row userRow
	err := r.db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return users.User{}, mapError(err, apperr.ErrUserNotFound)
	}
	return row.toDomain(), nil
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`); err != nil {
		return nil, mapError(err, nil)
	}

	out := make([]users.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Delete: las reservas del usuario se van por ON DELETE CASCADE.
func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return apperr.ErrUserNotFound
		}
		return mapError(err, nil)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrUserNotFound
	}
	return nil
}
