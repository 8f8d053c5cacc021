package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with default profile values.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:            uuid.New(),
		Email:         "testuser-" + suffix + "@example.com",
		Username:      "testuser-" + suffix,
		Name:          "Test User " + suffix,
		Role:          domain.UserRoleUser,
		HouseholdSize: domain.DefaultHouseholdSize,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, username, name, role, household_size, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.Username, user.Name, string(user.Role), user.HouseholdSize, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedFootprint creates a footprint entry for userID dated at date.
func SeedFootprint(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, category domain.Category, emission float64, date time.Time) domain.Footprint {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	fp := domain.Footprint{
		ID:             uuid.New(),
		UserID:         userID,
		Category:       category,
		Activity:       "seeded " + string(category),
		Date:           date.UTC().Truncate(time.Microsecond),
		CarbonEmission: emission,
		Unit:           domain.DefaultEmissionUnit,
		Details:        map[string]any{},
		Source:         domain.FootprintSourceManual,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO footprints (id, user_id, category, activity, date, carbon_emission, unit, details, source, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		fp.ID, fp.UserID, string(fp.Category), fp.Activity, fp.Date, fp.CarbonEmission, fp.Unit, fp.Details,
		string(fp.Source), fp.CreatedAt, fp.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedFootprint insert: %v", err)
	}

	return fp
}
