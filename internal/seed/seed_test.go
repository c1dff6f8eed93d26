package seed

import (
	"context"
	"testing"
	"time"

	"animal-reservations/internal/adapters/auth/jwtauth"
	"animal-reservations/internal/adapters/storage/memory"
	"animal-reservations/internal/domain/animals"
	"animal-reservations/internal/domain/reservations"
	"animal-reservations/internal/domain/users"
	"animal-reservations/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MemoryStore(t *testing.T) {
	tokens, err := jwtauth.NewManager("seed-test", time.Hour)
	require.NoError(t, err)

	st := memory.NewStore()
	svc := Services{
		Users:        users.NewService(memory.NewUserRepo(st), tokens),
		Animals:      animals.NewService(memory.NewAnimalRepo(st)),
		Reservations: reservations.NewService(memory.NewReservationRepo(st)),
	}
	ctx := context.Background()

	res, err := Run(ctx, svc, logger.Nop())
	require.NoError(t, err)
	require.Len(t, res.Users, 3)
	require.Len(t, res.Animals, 4)
	require.Len(t, res.Reservations, 5)

	// Al Bert tiene tres reservas
	mine, err := svc.Reservations.ListByUser(ctx, res.Users[0].ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	// Sheep: reservado por Al y Sandra
	onSheep, err := svc.Reservations.ListByAnimal(ctx, res.Animals[1].ID)
	require.NoError(t, err)
	require.Len(t, onSheep, 2)
	assert.Equal(t, "2025-07-15", onSheep[1].StartDate.String())

	_, err = svc.Users.Login(ctx, "sandra@email.com", "2sandy4me")
	assert.NoError(t, err)
}
