// Package jwtauth emite y verifica los bearer tokens HS256 con payload
// {id, email}. Implementa auth.TokenIssuer y auth.AuthVerifier.
package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL es la validez fija de un token: una semana, sin refresh.
const DefaultTTL = 7 * 24 * time.Hour

var ErrEmptySecret = errors.New("jwt secret is empty")

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (m *Manager) Issue(_ context.Context, c auth.Claims) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ID:    c.UserID,
		Email: c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

// Verify es la operación "authenticate": cualquier falla (vacío, firma,
// expiración, formato) sale como InvalidTokenError.
func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, apperr.ErrInvalidToken
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return auth.Claims{}, apperr.ErrInvalidToken.Wrap(err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.ID) == "" {
		return auth.Claims{}, apperr.ErrInvalidToken
	}

	return auth.Claims{UserID: claims.ID, Email: claims.Email}, nil
}
