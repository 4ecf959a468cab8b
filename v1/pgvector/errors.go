package pgvector

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrExtensionMissing is returned when the vector extension is not
	// installed in the connected database.
	ErrExtensionMissing = errors.New("vector extension is not installed")

	// ErrTableNotFound is returned when the searched table does not exist.
	ErrTableNotFound = errors.New("table not found")

	// ErrColumnNotFound is returned when a query references an unknown column.
	ErrColumnNotFound = errors.New("column not found")

	// ErrDimensionMismatch is returned when the query vector does not have
	// the dimension of the searched column.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrInvalidData is returned when a value cannot be stored or compared.
	ErrInvalidData = errors.New("invalid data")
)

// PostgreSQL error codes the package translates.
const (
	codeUndefinedTable  = "42P01"
	codeUndefinedColumn = "42703"
	codeDataException   = "22000"
	codeInvalidText     = "22P02"
)

// TranslateError maps driver errors to the package errors above. The
// original error stays in the chain. Unknown errors are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUndefinedTable:
			return errors.Join(ErrTableNotFound, err)
		case codeUndefinedColumn:
			return errors.Join(ErrColumnNotFound, err)
		case codeDataException:
			// pgvector raises "different vector dimensions" with this code
			return errors.Join(ErrDimensionMismatch, err)
		case codeInvalidText:
			return errors.Join(ErrInvalidData, err)
		}
	}

	if errors.Is(err, gorm.ErrInvalidData) {
		return errors.Join(ErrInvalidData, err)
	}
	return err
}
