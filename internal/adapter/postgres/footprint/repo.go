// Package footprint implements the Footprint repository using PostgreSQL.
package footprint

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

const table = "footprints"

var columns = []string{
	"id", "user_id", "category", "activity", "date", "carbon_emission",
	"unit", "details", "source", "created_at", "updated_at",
}

// Repo provides footprint persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new footprint repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a footprint and returns the stored row.
func (r *Repo) Create(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(fp.ID, fp.UserID, string(fp.Category), fp.Activity, fp.Date, fp.CarbonEmission,
			fp.Unit, detailsOrEmpty(fp.Details), string(fp.Source), fp.CreatedAt, fp.UpdatedAt).
		Suffix(postgres.Returning(columns...)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build footprint insert: %w", err)
	}

	return r.getOne(ctx, fp.ID, query, args)
}

// Update overwrites the mutable fields of an existing footprint. UserID and
// CreatedAt are never changed.
func (r *Repo) Update(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error) {
	query, args, err := postgres.Builder().
		Update(table).
		SetMap(map[string]any{
			"category":        string(fp.Category),
			"activity":        fp.Activity,
			"date":            fp.Date,
			"carbon_emission": fp.CarbonEmission,
			"unit":            fp.Unit,
			"details":         detailsOrEmpty(fp.Details),
			"source":          string(fp.Source),
			"updated_at":      fp.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": fp.ID}).
		Suffix(postgres.Returning(columns...)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build footprint update: %w", err)
	}

	return r.getOne(ctx, fp.ID, query, args)
}

// Delete removes a footprint. Returns domain.ErrNotFound if no row matched.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build footprint delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "footprint", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("footprint %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a footprint regardless of owner.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Footprint, error) {
	query, args, err := selectBase().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build footprint query: %w", err)
	}
	return r.getOne(ctx, id, query, args)
}

// GetForUpdate returns a footprint and locks its row until the surrounding
// transaction ends. Must be called inside TxManager.RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Footprint, error) {
	query, args, err := selectBase().Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build footprint lock query: %w", err)
	}
	return r.getOne(ctx, id, query, args)
}

// List returns the user's footprints matching filter, newest date first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) ([]domain.Footprint, error) {
	b := applyFilter(selectBase().Where(squirrel.Eq{"user_id": userID}), filter).
		OrderBy("date DESC", "created_at DESC")
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build footprint list: %w", err)
	}
	return r.getMany(ctx, userID, query, args)
}

// Count returns how many of the user's footprints match filter, ignoring
// Limit and Offset.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) (int, error) {
	b := applyFilter(
		postgres.Builder().Select("count(*)").From(table).Where(squirrel.Eq{"user_id": userID}),
		filter,
	)

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build footprint count: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "footprint", userID)
	}
	return n, nil
}

// ListRecent returns up to limit of the user's footprints, most recently
// created first.
func (r *Repo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Footprint, error) {
	query, args, err := selectBase().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent footprints: %w", err)
	}
	return r.getMany(ctx, userID, query, args)
}

// ListAll returns every footprint of the user, newest date first.
func (r *Repo) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Footprint, error) {
	return r.List(ctx, userID, domain.FootprintFilter{})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func selectBase() squirrel.SelectBuilder {
	return postgres.Builder().Select(columns...).From(table)
}

func applyFilter(b squirrel.SelectBuilder, f domain.FootprintFilter) squirrel.SelectBuilder {
	if f.Category != nil {
		b = b.Where(squirrel.Eq{"category": string(*f.Category)})
	}
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.LtOrEq{"date": *f.To})
	}
	return b
}

func (r *Repo) getOne(ctx context.Context, id uuid.UUID, query string, args []any) (*domain.Footprint, error) {
	var row footprintRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(err, "footprint", id)
	}
	fp := row.toDomain()
	return &fp, nil
}

func (r *Repo) getMany(ctx context.Context, userID uuid.UUID, query string, args []any) ([]domain.Footprint, error) {
	var rows []footprintRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "footprints of user", userID)
	}

	out := make([]domain.Footprint, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func detailsOrEmpty(d map[string]any) map[string]any {
	if d == nil {
		return map[string]any{}
	}
	return d
}

type footprintRow struct {
	ID             uuid.UUID      `db:"id"`
	UserID         uuid.UUID      `db:"user_id"`
	Category       string         `db:"category"`
	Activity       string         `db:"activity"`
	Date           time.Time      `db:"date"`
	CarbonEmission float64        `db:"carbon_emission"`
	Unit           string         `db:"unit"`
	Details        map[string]any `db:"details"`
	Source         string         `db:"source"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r footprintRow) toDomain() domain.Footprint {
	return domain.Footprint{
		ID:             r.ID,
		UserID:         r.UserID,
		Category:       domain.Category(r.Category),
		Activity:       r.Activity,
		Date:           r.Date,
		CarbonEmission: r.CarbonEmission,
		Unit:           r.Unit,
		Details:        detailsOrEmpty(r.Details),
		Source:         domain.FootprintSource(r.Source),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
