// Package recommendation implements the Recommendation repository using PostgreSQL.
package recommendation

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

const table = "recommendations"

var columns = []string{
	"id", "user_id", "category", "title", "description", "potential_impact",
	"difficulty", "is_implemented", "source", "created_at", "updated_at",
}

// Repo provides recommendation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new recommendation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a recommendation and returns the stored row.
func (r *Repo) Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.UserID, string(rec.Category), rec.Title, rec.Description, rec.PotentialImpact,
			string(rec.Difficulty), rec.IsImplemented, string(rec.Source), rec.CreatedAt, rec.UpdatedAt).
		Suffix(postgres.Returning(columns...)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recommendation insert: %w", err)
	}

	return r.getOne(ctx, rec.ID, query, args)
}

// Update overwrites the mutable fields of an existing recommendation.
func (r *Repo) Update(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	query, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"category":         string(rec.Category),
			"title":            rec.Title,
			"description":      rec.Description,
			"potential_impact": rec.PotentialImpact,
			"difficulty":       string(rec.Difficulty),
			"is_implemented":   rec.IsImplemented,
			"updated_at":       rec.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": rec.ID}).
		Suffix(postgres.Returning(columns...)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recommendation update: %w", err)
	}

	return r.getOne(ctx, rec.ID, query, args)
}

// Delete removes a recommendation. Returns domain.ErrNotFound if no row matched.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build recommendation delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "recommendation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recommendation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a recommendation regardless of owner.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	query, args, err := selectBase().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recommendation query: %w", err)
	}
	return r.getOne(ctx, id, query, args)
}

// GetForUpdate returns a recommendation and locks its row until the
// surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	query, args, err := selectBase().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recommendation lock query: %w", err)
	}
	return r.getOne(ctx, id, query, args)
}

// List returns the user's recommendations matching filter, newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.RecommendationFilter) ([]domain.Recommendation, error) {
	b := selectBase().Where(squirrel.Eq{"user_id": userID})
	if filter.Category != nil {
		b = b.Where(squirrel.Eq{"category": string(*filter.Category)})
	}
	if filter.Implemented != nil {
		b = b.Where(squirrel.Eq{"is_implemented": *filter.Implemented})
	}

	query, args, err := b.OrderBy("created_at DESC", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recommendation list: %w", err)
	}

	var rows []recommendationRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "recommendations of user", userID)
	}

	out := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func selectBase() squirrel.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table)
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, query string, args []any) (*domain.Recommendation, error) {
	var row recommendationRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "recommendation", id)
	}
	rec := row.toDomain()
	return &rec, nil
}

type recommendationRow struct {
	ID              uuid.UUID `db:"id"`
	UserID          uuid.UUID `db:"user_id"`
	Category        string    `db:"category"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	PotentialImpact float64   `db:"potential_impact"`
	Difficulty      string    `db:"difficulty"`
	IsImplemented   bool      `db:"is_implemented"`
	Source          string    `db:"source"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (r recommendationRow) toDomain() domain.Recommendation {
	return domain.Recommendation{
		ID:              r.ID,
		UserID:          r.UserID,
		Category:        domain.Category(r.Category),
		Title:           r.Title,
		Description:     r.Description,
		PotentialImpact: r.PotentialImpact,
		Difficulty:      domain.Difficulty(r.Difficulty),
		IsImplemented:   r.IsImplemented,
		Source:          domain.RecommendationSource(r.Source),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
