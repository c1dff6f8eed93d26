package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// WithTx abre una transacción, corre fn y hace commit si fn no falla; ante
// error o panic hace rollback (el panic se relanza).
func WithTx(ctx context.Context, db *sqlx.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
