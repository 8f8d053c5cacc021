package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, MapError(nil, "footprint", uuid.New()))
}

func TestMapError_Mapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan row: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, domain.ErrNotFound},
		{"check violation", &pgconn.PgError{Code: "23514"}, domain.ErrValidation},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), domain.ErrAlreadyExists},
		{"deadline passes through", context.DeadlineExceeded, context.DeadlineExceeded},
		{"canceled passes through", context.Canceled, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tt.err, "footprint", uuid.New())
			assert.ErrorIs(t, got, tt.wantErr)
		})
	}
}

func TestMapError_ContextErrorsAreNotDomainErrors(t *testing.T) {
	t.Parallel()

	got := MapError(context.DeadlineExceeded, "footprint", uuid.New())

	assert.False(t, errors.Is(got, domain.ErrNotFound))
}

func TestMapError_UnknownPgErrorPassesThrough(t *testing.T) {
	t.Parallel()

	got := MapError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, "footprint", uuid.New())

	var pgErr *pgconn.PgError
	require.ErrorAs(t, got, &pgErr)
	assert.Equal(t, "42P01", pgErr.Code)
	assert.NotErrorIs(t, got, domain.ErrNotFound)
	assert.NotErrorIs(t, got, domain.ErrAlreadyExists)
	assert.NotErrorIs(t, got, domain.ErrValidation)
}

func TestMapError_Message(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	assert.EqualError(t, MapError(pgx.ErrNoRows, "recommendation", id), fmt.Sprintf("recommendation %s: not found", id))
	assert.EqualError(t, MapError(errors.New("boom"), "refresh_token", uuid.Nil), "refresh_token: boom")
}
