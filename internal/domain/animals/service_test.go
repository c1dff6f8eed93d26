package animals

import (
	"context"
	"errors"
	"testing"

	"animal-reservations/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	items []Animal
	last  Filter
}

func (r *testRepo) Create(_ context.Context, a Animal) (Animal, error) {
	a.ID = int64(len(r.items) + 1)
	r.items = append(r.items, a)
	return a, nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Animal, error) {
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return Animal{}, apperr.ErrAnimalNotFound
}

func (r *testRepo) List(_ context.Context, f Filter) ([]Animal, error) {
	r.last = f
	out := []Animal{}
	for _, a := range r.items {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id int64) error {
	for i, a := range r.items {
		if a.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func seeded(t *testing.T) (*Service, *testRepo) {
	t.Helper()
	repo := &testRepo{}
	svc := NewService(repo)
	for _, in := range []CreateInput{
		{Type: "Chicken", Breed: "Easter Eggers", NumAnimals: 3},
		{Type: "Sheep", Breed: "Cotswold", NumAnimals: 2},
		{Type: "Cow Calf pair", Breed: "Jersey", NumAnimals: 2},
		{Type: "Alpaca", Breed: "Huacaya", NumAnimals: 2},
	} {
		_, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
	}
	return svc, repo
}

func TestService_List_Unfiltered(t *testing.T) {
	svc, _ := seeded(t)

	items, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "Chicken", items[0].Type)
	assert.Equal(t, "Alpaca", items[3].Type)
}

func TestService_List_Filters(t *testing.T) {
	svc, repo := seeded(t)
	ctx := context.Background()

	items, err := svc.List(ctx, Filter{Types: []string{" sheep ", "", "SHEEP", "alpaca"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"sheep", "alpaca"}, repo.last.Types)
	assert.Len(t, items, 2)

	items, err = svc.List(ctx, Filter{Query: "jer"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cow Calf pair", items[0].Type)

	items, err = svc.List(ctx, Filter{Types: []string{"Chicken"}, Query: "cots"})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestService_GetByID(t *testing.T) {
	svc, _ := seeded(t)
	ctx := context.Background()

	a, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Cotswold", a.Breed)

	_, err = svc.GetByID(ctx, 99)
	assert.True(t, errors.Is(err, apperr.ErrAnimalNotFound))

	_, err = svc.GetByID(ctx, -1)
	assert.True(t, errors.Is(err, apperr.ErrAnimalNotFound))

	// fuera del rango de la columna
	_, err = svc.GetByID(ctx, MaxID+1)
	assert.True(t, errors.Is(err, apperr.ErrAnimalNotFound))
	assert.True(t, errors.Is(svc.Delete(ctx, 3_000_000_000), apperr.ErrAnimalNotFound))
}

func TestFilter_Matches(t *testing.T) {
	sheep := Animal{Type: "Sheep", Breed: "Cotswold"}

	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{}.Matches(sheep))
	assert.True(t, Filter{Types: []string{"SHEEP"}}.Matches(sheep))
	assert.True(t, Filter{Query: "wold"}.Matches(sheep))
	assert.False(t, Filter{Types: []string{"Alpaca"}}.Matches(sheep))
	assert.False(t, Filter{Types: []string{"Sheep"}, Query: "jers"}.Matches(sheep))
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Type: "Goat", Breed: "Nubian"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(ctx, CreateInput{Type: " ", Breed: "Nubian", NumAnimals: 1})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	a, err := svc.Create(ctx, CreateInput{Type: " Goat ", Breed: "Nubian", NumAnimals: 1})
	require.NoError(t, err)
	assert.Equal(t, "Goat", a.Type)
}
