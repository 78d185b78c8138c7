package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/vocabdeck/vocabdeck-api/internal/store"
)

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// execBuilder renders b and executes it on db.
func execBuilder(ctx context.Context, db store.DBTX, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
