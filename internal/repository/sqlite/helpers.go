package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// tx runs fn inside a transaction, rolling back on error or panic.
func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			t.Rollback()
			panic(p)
		}
	}()

	if err := fn(t); err != nil {
		if rbErr := t.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return t.Commit()
}
