// Package authmethod implements the AuthMethod repository using PostgreSQL.
package authmethod

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const table = "auth_methods"

var columns = []string{"id", "user_id", "method", "password_hash", "created_at", "updated_at"}

// Repo provides auth-method persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new auth method repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a new auth method and returns it with server defaults filled.
func (r *Repo) Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	id := am.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC()

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(id, am.UserID, string(am.Method), am.PasswordHash, now, now).
		Suffix(postgres.Returning(columns...)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build auth method insert: %w", err)
	}

	var row authMethodRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "auth_method", id)
	}

	created := row.toDomain()
	return &created, nil
}

// GetByUserAndMethod returns the credential of the given type for a user.
func (r *Repo) GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID, "method": string(method)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build auth method query: %w", err)
	}

	var row authMethodRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "auth_method", userID)
	}

	am := row.toDomain()
	return &am, nil
}

type authMethodRow struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Method       string    `db:"method"`
	PasswordHash *string   `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r authMethodRow) toDomain() domain.AuthMethod {
	return domain.AuthMethod{
		ID:           r.ID,
		UserID:       r.UserID,
		Method:       domain.AuthMethodType(r.Method),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
