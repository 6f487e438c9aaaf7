package store

import (
	"context"
	"fmt"

	"crowdcube/internal/utils"
	"crowdcube/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the slice of pgxpool.Pool the repositories need. It also
// satisfies pgxscan.Querier, so scan helpers work against it directly.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func validID(id string) error {
	if !utils.ValidNanoID(id) {
		return fmt.Errorf("malformed id %q: %w", id, types.ErrInvalidInput)
	}
	return nil
}
