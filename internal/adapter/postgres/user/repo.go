// Package user implements the User repository using PostgreSQL.
package user

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

const table = "users"

var columns = []string{
	"id", "email", "username", "name", "role",
	"location", "household_size", "carbon_goal", "created_at", "updated_at",
}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, id)
}

// GetByEmail returns a user by email address, case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Expr("lower(email) = lower(?)", email), uuid.Nil)
}

// GetByUsername returns a user by username, case-insensitively.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Expr("lower(username) = lower(?)", username), uuid.Nil)
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Sqlizer, id uuid.UUID) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	u := row.toDomain()
	return &u, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	role := u.Role
	if role == "" {
		role = domain.UserRoleUser
	}
	household := u.HouseholdSize
	if household < 1 {
		household = domain.DefaultHouseholdSize
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(u.ID, u.Email, u.Username, u.Name, string(role),
			u.Location, household, u.CarbonGoal, u.CreatedAt, u.UpdatedAt).
		Suffix(postgres.Returning(columns...)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user insert: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	created := row.toDomain()
	return &created, nil
}

// UpdateProfile applies the non-nil fields of upd and returns the updated user.
// An empty update behaves like GetByID.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, upd domain.ProfileUpdate) (*domain.User, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	b := postgres.Builder().
		Update(table).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		Suffix(postgres.Returning(columns...))

	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	if upd.Location != nil {
		b = b.Set("location", *upd.Location)
	}
	if upd.HouseholdSize != nil {
		b = b.Set("household_size", *upd.HouseholdSize)
	}
	if upd.CarbonGoal != nil {
		b = b.Set("carbon_goal", *upd.CarbonGoal)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user update: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	u := row.toDomain()
	return &u, nil
}

// SetRoleByEmail changes the role of the user with the given email. It
// returns ErrNotFound when no such user exists.
func (r *Repo) SetRoleByEmail(ctx context.Context, email string, role domain.UserRole) (*domain.User, error) {
	query, args, err := postgres.Builder().
		Update(table).
		Set("role", string(role)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Suffix(postgres.Returning(columns...)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user role update: %w", err)
	}

	var row userRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	u := row.toDomain()
	return &u, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

type userRow struct {
	ID            uuid.UUID `db:"id"`
	Email         string    `db:"email"`
	Username      string    `db:"username"`
	Name          string    `db:"name"`
	Role          string    `db:"role"`
	Location      string    `db:"location"`
	HouseholdSize int       `db:"household_size"`
	CarbonGoal    float64   `db:"carbon_goal"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:            r.ID,
		Email:         r.Email,
		Username:      r.Username,
		Name:          r.Name,
		Role:          domain.UserRole(r.Role),
		Location:      r.Location,
		HouseholdSize: r.HouseholdSize,
		CarbonGoal:    r.CarbonGoal,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
