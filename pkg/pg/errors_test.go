package pg_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/apikit/pkg/pg"
)

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, pg.IsNotFoundError(pgx.ErrNoRows))
	assert.True(t, pg.IsNotFoundError(fmt.Errorf("get user: %w", sql.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pg.CodeUniqueViolation})
	assert.True(t, pg.IsDuplicateKeyError(dup))
	assert.False(t, pg.IsForeignKeyViolationError(dup))

	fk := &pgconn.PgError{Code: pg.CodeForeignKeyViolation}
	assert.True(t, pg.IsForeignKeyViolationError(fk))
	assert.False(t, pg.IsDuplicateKeyError(nil))
}

func TestConnect_EmptyURL(t *testing.T) {
	t.Parallel()
	_, err := pg.Connect(t.Context(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}
