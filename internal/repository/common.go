package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bessima/food-dispatch/internal/config/db"
	"github.com/Bessima/food-dispatch/internal/customerror"
	"github.com/Bessima/food-dispatch/internal/retry"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryIDs runs a statement ending in `RETURNING id` and collects the ids.
func queryIDs(ctx context.Context, dbObj *db.DB, query string, args ...any) ([]string, error) {
	return retry.DoRetryWithResult(ctx, func() ([]string, error) {
		rows, err := dbObj.Pool.Query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		return collectIDs(rows)
	})
}

func txQueryIDs(ctx context.Context, tx pgx.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectIDs(rows)
}

func collectIDs(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func wrapPGError(err error, uniqueMessage string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return customerror.NewUniqueViolationError(uniqueMessage)
		case pgerrcode.ForeignKeyViolation:
			return customerror.NewValidationError("referenced record is not available")
		}
	}
	return customerror.NewCommonPGError(fmt.Sprintf("storage failure: %v", err))
}
