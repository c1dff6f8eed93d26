package memory

import (
	"context"
	"errors"
	"testing"

	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/domain/users"
	"animal-reservations/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	st   *Store
	us   users.Repository
	an   animals.Repository
	res  reservations.Repository
	u1   users.User
	u2   users.User
	calf animals.Animal
	goat animals.Animal
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := NewStore()
	f := fixture{st: st, us: NewUserRepo(st), an: NewAnimalRepo(st), res: NewReservationRepo(st)}

	var err error
	f.u1, err = f.us.Create(ctx, users.User{ID: "u-1", Email: "albert@email.com"})
	require.NoError(t, err)
	f.u2, err = f.us.Create(ctx, users.User{ID: "u-2", Email: "sandra@email.com"})
	require.NoError(t, err)
	f.calf, err = f.an.Create(ctx, animals.Animal{Type: "Cow Calf pair", Breed: "Jersey", NumAnimals: 2})
	require.NoError(t, err)
	f.goat, err = f.an.Create(ctx, animals.Animal{Type: "Goat", Breed: "Nubian", NumAnimals: 1})
	require.NoError(t, err)
	return f
}

func (f fixture) reserve(t *testing.T, userID string, animalID int64) reservations.Reservation {
	t.Helper()
	r, err := f.res.Create(context.Background(), reservations.Reservation{
		UserID:    userID,
		AnimalID:  animalID,
		StartDate: reservations.NewDate(2025, 4, 30),
		EndDate:   reservations.NewDate(2025, 8, 30),
	})
	require.NoError(t, err)
	return r
}

func TestUserRepo_UniqueEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.us.Create(context.Background(), users.User{ID: "u-3", Email: "albert@email.com"})
	assert.True(t, errors.Is(err, apperr.ErrDuplicateEmail))

	// comparación exacta: otra capitalización es otro email
	_, err = f.us.Create(context.Background(), users.User{ID: "u-4", Email: "Albert@email.com"})
	assert.NoError(t, err)
}

func TestUserRepo_ListKeepsInsertionOrder(t *testing.T) {
	f := newFixture(t)

	items, err := f.us.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "u-1", items[0].ID)
	assert.Equal(t, "u-2", items[1].ID)
}

func TestAnimalRepo_SequentialIDsAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), f.calf.ID)
	assert.Equal(t, int64(2), f.goat.ID)

	items, err := f.an.List(ctx, animals.Filter{Query: "nub"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Goat", items[0].Type)

	_, err = f.an.GetByID(ctx, 42)
	assert.True(t, errors.Is(err, apperr.ErrAnimalNotFound))
}

func TestReservationRepo_ForeignKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.res.Create(ctx, reservations.Reservation{UserID: "ghost", AnimalID: f.calf.ID})
	assert.True(t, errors.Is(err, apperr.ErrReference))

	_, err = f.res.Create(ctx, reservations.Reservation{UserID: f.u1.ID, AnimalID: 999})
	assert.True(t, errors.Is(err, apperr.ErrReference))

	r := f.reserve(t, f.u1.ID, f.calf.ID)
	bad := int64(999)
	_, err = f.res.Update(ctx, r.ID, reservations.Patch{AnimalID: &bad})
	assert.True(t, errors.Is(err, apperr.ErrReference))
}

func TestReservationRepo_UpdateOnlyTouchesPatchedFields(t *testing.T) {
	f := newFixture(t)
	r := f.reserve(t, f.u1.ID, f.calf.ID)

	start := reservations.NewDate(2025, 5, 1)
	got, err := f.res.Update(context.Background(), r.ID, reservations.Patch{StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, "2025-05-01", got.StartDate.String())
	assert.Equal(t, "2025-08-30", got.EndDate.String())
	assert.Equal(t, f.calf.ID, got.AnimalID)

	_, err = f.res.Update(context.Background(), 404, reservations.Patch{StartDate: &start})
	assert.True(t, errors.Is(err, apperr.ErrReservationNotFound))
}

func TestReservationRepo_DeleteScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.reserve(t, f.u1.ID, f.calf.ID)

	require.NoError(t, f.res.Delete(ctx, f.u2.ID, r.ID))
	_, err := f.res.GetByID(ctx, r.ID)
	require.NoError(t, err)

	require.NoError(t, f.res.Delete(ctx, f.u1.ID, r.ID))
	_, err = f.res.GetByID(ctx, r.ID)
	assert.True(t, errors.Is(err, apperr.ErrReservationNotFound))
}

func TestCascadeDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	byU1 := f.reserve(t, f.u1.ID, f.goat.ID)
	onCalf := f.reserve(t, f.u2.ID, f.calf.ID)
	kept := f.reserve(t, f.u2.ID, f.goat.ID)

	require.NoError(t, f.us.Delete(ctx, f.u1.ID))
	_, err := f.res.GetByID(ctx, byU1.ID)
	assert.True(t, errors.Is(err, apperr.ErrReservationNotFound))

	require.NoError(t, f.an.Delete(ctx, f.calf.ID))
	_, err = f.res.GetByID(ctx, onCalf.ID)
	assert.True(t, errors.Is(err, apperr.ErrReservationNotFound))

	items, err := f.res.ListByUser(ctx, f.u2.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, kept.ID, items[0].ID)

	assert.True(t, errors.Is(f.us.Delete(ctx, f.u1.ID), apperr.ErrUserNotFound))
}

func TestStore_Reset(t *testing.T) {
	f := newFixture(t)
	f.reserve(t, f.u1.ID, f.calf.ID)

	f.st.Reset()

	items, err := f.us.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	a, err := f.an.Create(context.Background(), animals.Animal{Type: "Sheep", Breed: "Cotswold", NumAnimals: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
}
