package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultHouseholdSize is used for newly registered users.
const DefaultHouseholdSize = 1

// User represents an authenticated application user together with the
// profile data used to personalise summaries and coaching.
type User struct {
	ID            uuid.UUID
	Email         string
	Username      string
	Name          string
	Role          UserRole
	Location      string
	HouseholdSize int
	// CarbonGoal is the user's target in kg CO2e. Zero means no goal is set.
	CarbonGoal float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasGoal reports whether the user has set a carbon goal.
func (u *User) HasGoal() bool {
	return u.CarbonGoal > 0
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// ProfileUpdate carries optional profile changes. Nil fields are left as is.
type ProfileUpdate struct {
	Name          *string
	Location      *string
	HouseholdSize *int
	CarbonGoal    *float64
}

// IsEmpty reports whether no field is set.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Location == nil && p.HouseholdSize == nil && p.CarbonGoal == nil
}
