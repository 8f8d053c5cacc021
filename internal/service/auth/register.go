package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// Register creates a user with a password credential and signs them in.
// A taken email or username yields domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}
	passwordHash := string(hash)

	// Uniqueness is enforced by the database constraints.
	var user *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.now().UTC()
		created, err := s.users.Create(txCtx, &domain.User{
			ID:            uuid.New(),
			Email:         input.Email,
			Username:      input.Username,
			Name:          input.Username,
			Role:          domain.UserRoleUser,
			HouseholdSize: domain.DefaultHouseholdSize,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		if _, err := s.authMethods.Create(txCtx, &domain.AuthMethod{
			ID:           uuid.New(),
			UserID:       created.ID,
			Method:       domain.AuthMethodPassword,
			PasswordHash: &passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("create auth method: %w", err)
		}

		user = created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return result, nil
}
