package users

import (
	"context"
	"errors"
	"strings"
	"sync"

	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost es fijo, no configurable.
const PasswordCost = 5

type Service struct {
	repo   Repository
	tokens auth.TokenIssuer
}

func NewService(repo Repository, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Address   string
}

// Register crea el usuario (solo guarda el hash) y devuelve además un token
// firmado con {id, email}.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, string, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" || in.Address == "" {
		return User{}, "", apperr.Validation("firstName, lastName, email, password and address are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), PasswordCost)
	if err != nil {
		return User{}, "", apperr.ErrInternal.Wrap(err)
	}

	u, err := s.repo.Create(ctx, User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: string(hash),
	})
	if err != nil {
		return User{}, "", err
	}

	token, err := s.tokens.Issue(ctx, auth.Claims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return User{}, "", apperr.ErrInternal.Wrap(err)
	}
	return u, token, nil
}

// Login no distingue "email inexistente" de "password incorrecto": ambos
// salen como IncorrectCredentialsError.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", apperr.ErrMissingCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, apperr.ErrUserNotFound):
		// Igualamos el costo de la comparación para no filtrar existencia por timing.
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return "", apperr.ErrIncorrectCredentials
	case err != nil:
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", apperr.ErrIncorrectCredentials
	}

	token, err := s.tokens.Issue(ctx, auth.Claims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return "", apperr.ErrInternal.Wrap(err)
	}
	return token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, apperr.ErrUserNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Delete borra el usuario; sus reservas caen por cascade en el store.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperr.ErrUserNotFound
	}
	return s.repo.Delete(ctx, id)
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), PasswordCost)
	return h
})
