package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}

	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}
	if err := c.Recommendations.validate(); err != nil {
		return fmt.Errorf("recommendations: %w", err)
	}
	if err := c.Coach.validate(); err != nil {
		return fmt.Errorf("coach: %w", err)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.AuthPerMinute <= 0 || c.RateLimit.AIPerMinute <= 0 {
			return fmt.Errorf("rate_limit: per-minute limits must be > 0")
		}
		if c.RateLimit.CleanupInterval <= 0 {
			return fmt.Errorf("rate_limit: cleanup_interval must be > 0")
		}
	}

	return nil
}

func (a *AIConfig) validate() error {
	if !a.IsProviderSupported() {
		return fmt.Errorf("unknown provider %q (want one of %v)", a.Provider, AIProviders())
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", a.Timeout)
	}
	if a.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", a.MaxTokens)
	}

	switch a.Provider {
	case AIProviderAnthropic:
		if a.APIKey == "" {
			return fmt.Errorf("api_key is required for provider %q", a.Provider)
		}
	case AIProviderVertex:
		if a.VertexProject == "" {
			return fmt.Errorf("vertex_project is required for provider %q", a.Provider)
		}
	}

	return nil
}

func (r *RecommendationsConfig) validate() error {
	if r.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be > 0 (got %d)", r.HistoryLimit)
	}
	if r.MaxGenerated <= 0 || r.MaxGenerated > 3 {
		return fmt.Errorf("max_generated must be in [1, 3] (got %d)", r.MaxGenerated)
	}
	return nil
}

func (c *CoachConfig) validate() error {
	if c.MaxHistory < 0 {
		return fmt.Errorf("max_history must be >= 0 (got %d)", c.MaxHistory)
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("max_message_length must be > 0 (got %d)", c.MaxMessageLength)
	}
	if c.RecentActivities < 0 {
		return fmt.Errorf("recent_activities must be >= 0 (got %d)", c.RecentActivities)
	}
	return nil
}
