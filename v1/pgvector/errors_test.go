package pgvector

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"undefined table", &pgconn.PgError{Code: "42P01"}, ErrTableNotFound},
		{"undefined column", &pgconn.PgError{Code: "42703"}, ErrColumnNotFound},
		{"dimension mismatch", fmt.Errorf("query: %w", &pgconn.PgError{Code: "22000", Message: "different vector dimensions 3 and 2"}), ErrDimensionMismatch},
		{"invalid text", &pgconn.PgError{Code: "22P02"}, ErrInvalidData},
		{"gorm invalid data", gorm.ErrInvalidData, ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestTranslateError_Passthrough(t *testing.T) {
	assert.NoError(t, TranslateError(nil))

	cause := errors.New("connection reset")
	assert.Same(t, cause, TranslateError(cause))

	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), TranslateError(other))
}
