// Package apperr define el conjunto cerrado de errores de dominio.
//
// Cada error lleva un Kind (discriminante usado por la capa HTTP para elegir el
// status) y un Name estable que viaja al cliente en el body {name, message}.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindDuplicate
	KindAuth
	KindForbidden
	KindReference
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindReference:
		return "reference"
	case KindStore:
		return "store"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Name    string
	Message string
	Err     error
}

func New(kind Kind, name, message string) *Error {
	return &Error{Kind: kind, Name: name, Message: message}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Name, así errors.Is(err, ErrUserNotFound) funciona aunque el
// error haya sido copiado con otro mensaje o causa.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Name == t.Name
}

// Wrap devuelve una copia con la causa adjunta (no muta el sentinel).
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// WithMessage devuelve una copia con otro mensaje visible para el cliente.
func (e *Error) WithMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return KindInternal
}

// Validation crea un ValidationError con mensaje libre.
func Validation(msg string) *Error {
	return ErrValidation.WithMessage(msg)
}

// Store envuelve una falla de conectividad/query.
func Store(err error) *Error {
	return ErrStoreUnavailable.Wrap(err)
}

var (
	ErrValidation = New(KindValidation, "ValidationError", "invalid input")
	ErrInternal   = New(KindInternal, "InternalError", "internal error")

	ErrStoreUnavailable = New(KindStore, "StoreUnavailableError", "the data store is unavailable")
	ErrReference        = New(KindReference, "ReferenceError", "referenced user or animal does not exist")

	ErrMissingCredentials   = New(KindAuth, "MissingCredentialsError", "Please supply both an email and password")
	ErrIncorrectCredentials = New(KindAuth, "IncorrectCredentialsError", "Email or password is incorrect")
	ErrInvalidToken         = New(KindAuth, "InvalidTokenError", "the supplied token is invalid or expired")
	ErrMissingUser          = New(KindAuth, "MissingUserError", "You must be logged in to perform this action")
	ErrForbidden            = New(KindForbidden, "ForbiddenError", "you are not allowed to perform this action")

	ErrDuplicateEmail = New(KindDuplicate, "DuplicateEmailError", "Email already exists. Please choose another.")

	ErrUserNotFound        = New(KindNotFound, "UserNotFoundError", "A user with that id does not exist")
	ErrAnimalNotFound      = New(KindNotFound, "AnimalNotFoundError", "An animal with that id does not exist")
	ErrReservationNotFound = New(KindNotFound, "ReservationNotFoundError", "A reservation with that id does not exist")
	ErrNoReservationsFound = New(KindNotFound, "NoReservationsFoundError", "No reservations found")

	ErrInvalidDateRange = New(KindValidation, "InvalidDateRangeError", "invalid date range")
)
