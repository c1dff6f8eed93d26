package postgres

import (
	"database/sql"
	"errors"

	"animal-reservations/internal/platform/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

var errDuplicate = apperr.New(apperr.KindDuplicate, "DuplicateError", "record already exists")

// mapError traduce errores del driver a apperr. notFound se usa para
// sql.ErrNoRows; los errores de conexión o timeout salen como Store.
func mapError(err error, notFound *apperr.Error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		if notFound != nil {
			return notFound
		}
		return apperr.ErrInternal.Wrap(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return errDuplicate.Wrap(err)
		case codeForeignKeyViolation:
			return apperr.ErrReference.Wrap(err)
		default:
			return apperr.ErrInternal.Wrap(err)
		}
	}

	// conexión caída, timeout del contexto, pool agotado
	return apperr.Store(err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeInvalidText
}
