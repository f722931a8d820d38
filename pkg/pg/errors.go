package pg

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/apikit/pkg/apierror"
	"github.com/dmitrymomot/apikit/pkg/errmap"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, use PG_CONN_URL env var")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
)

// SQLSTATE codes translated by Errors.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeNotNullViolation     = "23502"
	CodeInvalidTextRepresent = "22P02"
	CodeCheckViolation       = "23514"
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

func IsDuplicateKeyError(err error) bool { return hasCode(err, CodeUniqueViolation) }

func IsForeignKeyViolationError(err error) bool { return hasCode(err, CodeForeignKeyViolation) }

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// Errors is the errmap.Source for PostgreSQL.
func Errors(m errmap.Mapper) error {
	notFound := func(err error) error {
		return apierror.NotFound.New("record not found", err)
	}
	return errors.Join(
		m.MapErrorFunc(pgx.ErrNoRows, notFound),
		m.MapErrorFunc(sql.ErrNoRows, notFound),
		m.MapErrorFunc(apierror.TypeOf[*pgconn.PgError](), mapPgError),
	)
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	meta := map[string]any{}
	if pgErr.ConstraintName != "" {
		meta["constraint"] = pgErr.ConstraintName
	}
	if pgErr.ColumnName != "" {
		meta["column"] = pgErr.ColumnName
	}
	ctx := apierror.Context{apierror.MetadataKey: meta}

	switch pgErr.Code {
	case CodeUniqueViolation:
		return apierror.Conflict.New("record already exists", ctx, err)
	case CodeForeignKeyViolation:
		return apierror.BadRequest.New("referenced record does not exist", ctx, err)
	case CodeNotNullViolation:
		return apierror.BadRequest.New("required value is missing", ctx, err)
	case CodeInvalidTextRepresent:
		return apierror.BadRequest.New("value has an invalid format", ctx, err)
	case CodeCheckViolation:
		return apierror.BadRequest.New("value violates a check constraint", ctx, err)
	}
	return nil
}
