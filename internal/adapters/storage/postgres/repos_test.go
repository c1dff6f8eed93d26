package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/domain/users"
	"animal-reservations/internal/platform/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var (
	userCols        = []string{"id", "first_name", "last_name", "email", "password", "address", "host"}
	animalCols      = []string{"id", "type", "breed", "num_animals", "animal_img_url"}
	reservationCols = []string{"id", "user_id", "animal_id", "start_date", "end_date"}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUsersRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u-1", "Al", "Bert", "albert@email.com", "hash", "Maple Plain, MN", false).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u-1", "Al", "Bert", "albert@email.com", "hash", "Maple Plain, MN", false))

	u, err := repo.Create(context.Background(), users.User{
		ID: "u-1", FirstName: "Al", LastName: "Bert", Email: "albert@email.com",
		PasswordHash: "hash", Address: "Maple Plain, MN",
	})
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})

	_, err := repo.Create(context.Background(), users.User{ID: "u-1", Email: "albert@email.com"})
	assert.True(t, errors.Is(err, apperr.ErrDuplicateEmail))
	assert.Equal(t, apperr.KindDuplicate, apperr.KindOf(err))
}

func TestUsersRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("nobody@email.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@email.com")
	assert.True(t, errors.Is(err, apperr.ErrUserNotFound))
}

func TestUsersRepo_GetByID_MalformedUUID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WillReturnError(&pgconn.PgError{Code: codeInvalidText})

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.True(t, errors.Is(err, apperr.ErrUserNotFound))
}

func TestUsersRepo_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "u-1"))
	assert.True(t, errors.Is(repo.Delete(context.Background(), "u-1"), apperr.ErrUserNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreErrorsMapToStoreUnavailable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	_, err := repo.List(context.Background())
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
	assert.True(t, errors.Is(err, apperr.ErrStoreUnavailable))
}

func TestAnimalsRepo_List_Unfiltered(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnimalsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, type, breed, num_animals, animal_img_url FROM animals ORDER BY id`)).
		WillReturnRows(sqlmock.NewRows(animalCols).
			AddRow(int64(1), "Chicken", "Easter Eggers", 3, "https://example.test/chicken.jpg").
			AddRow(int64(2), "Sheep", "Cotswold", 2, nil))

	items, err := repo.List(context.Background(), animals.Filter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://example.test/chicken.jpg", items[0].ImageURL)
	assert.Equal(t, "", items[1].ImageURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalsRepo_List_Filtered(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnimalsRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM animals WHERE lower\(type\) IN \(\$1,\$2\) AND \(type ILIKE \$3 OR breed ILIKE \$4\) ORDER BY id`).
		WithArgs("sheep", "alpaca", `%50\%%`, `%50\%%`).
		WillReturnRows(sqlmock.NewRows(animalCols))

	items, err := repo.List(context.Background(), animals.Filter{Types: []string{"Sheep", "ALPACA"}, Query: "50%"})
	require.NoError(t, err)
	assert.Empty(t, items)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAnimalsRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAnimalsRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM animals WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.True(t, errors.Is(err, apperr.ErrAnimalNotFound))
}

func TestReservationsRepo_Create_Transactional(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationsRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO reservations`).
		WithArgs("u-1", int64(2), "2025-04-30", "2025-08-30").
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(int64(1), "u-1", int64(2), day(2025, 4, 30), day(2025, 8, 30)))
	mock.ExpectCommit()

	res, err := repo.Create(context.Background(), reservations.Reservation{
		UserID:    "u-1",
		AnimalID:  2,
		StartDate: reservations.NewDate(2025, 4, 30),
		EndDate:   reservations.NewDate(2025, 8, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, "2025-08-30", res.EndDate.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationsRepo_Create_ForeignKeyRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationsRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO reservations`).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), reservations.Reservation{
		UserID:    "u-1",
		AnimalID:  99,
		StartDate: reservations.NewDate(2025, 4, 30),
		EndDate:   reservations.NewDate(2025, 8, 30),
	})
	assert.True(t, errors.Is(err, apperr.ErrReference))
	assert.Equal(t, apperr.KindReference, apperr.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationsRepo_Update_OnlyPatchedColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE reservations SET end_date = $1, start_date = $2 WHERE id = $3 RETURNING id, user_id, animal_id, start_date, end_date`)).
		WithArgs("2025-09-01", "2025-06-01", int64(4)).
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(int64(4), "u-1", int64(2), day(2025, 6, 1), day(2025, 9, 1)))

	start := reservations.NewDate(2025, 6, 1)
	end := reservations.NewDate(2025, 9, 1)
	res, err := repo.Update(context.Background(), 4, reservations.Patch{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", res.StartDate.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationsRepo_Update_Missing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationsRepo(db)

	mock.ExpectQuery(`UPDATE reservations SET animal_id = \$1 WHERE id = \$2`).
		WithArgs(int64(3), int64(40)).
		WillReturnError(sql.ErrNoRows)

	animal := int64(3)
	_, err := repo.Update(context.Background(), 40, reservations.Patch{AnimalID: &animal})
	assert.True(t, errors.Is(err, apperr.ErrReservationNotFound))
}

func TestReservationsRepo_Delete_ScopedToOwner(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationsRepo(db)

	mock.ExpectExec(`DELETE FROM reservations WHERE user_id = \$1 AND id = \$2`).
		WithArgs("u-2", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "u-2", 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationsRepo_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReservationsRepo(db)

	mock.ExpectQuery(`SELECT (.+) FROM reservations WHERE user_id = \$1 ORDER BY id`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(reservationCols).
			AddRow(int64(1), "u-1", int64(1), day(2025, 4, 30), day(2025, 8, 30)).
			AddRow(int64(2), "u-1", int64(2), "2025-04-10", "2025-07-14"))

	items, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2025-07-14", items[1].EndDate.String())
}

func TestEnsureSSL(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db:5432/app", EnsureSSL("postgres://u:p@db:5432/app", false))
	assert.Equal(t, "postgres://u:p@db:5432/app?sslmode=require", EnsureSSL("postgres://u:p@db:5432/app", true))
	assert.Equal(t, "postgres://db/app?sslmode=disable", EnsureSSL("postgres://db/app?sslmode=disable", true))
	assert.Equal(t, "host=db dbname=app sslmode=require", EnsureSSL("host=db dbname=app", true))
}
