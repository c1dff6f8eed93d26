package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs_MatchesByNameAcrossCopies(t *testing.T) {
	err := ErrUserNotFound.WithMessage("A user with that email does not exist")

	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.False(t, errors.Is(err, ErrAnimalNotFound))
}

func TestWrap_KeepsCauseAndDoesNotMutateSentinel(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Store(cause)

	require.ErrorIs(t, err, cause)
	require.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Nil(t, ErrStoreUnavailable.Err)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain error", errors.New("boom"), KindInternal},
		{"validation", Validation("start_date is required"), KindValidation},
		{"wrapped not found", fmt.Errorf("get: %w", ErrReservationNotFound), KindNotFound},
		{"auth", ErrIncorrectCredentials, KindAuth},
		{"reference", ErrReference.Wrap(errors.New("fk")), KindReference},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindOf(tc.err))
		})
	}
}
