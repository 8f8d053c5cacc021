package config

import (
	"slices"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server          ServerConfig          `yaml:"server"`
	Database        DatabaseConfig        `yaml:"database"`
	Auth            AuthConfig            `yaml:"auth"`
	Log             LogConfig             `yaml:"log"`
	CORS            CORSConfig            `yaml:"cors"`
	RateLimit       RateLimitConfig       `yaml:"rate_limit"`
	AI              AIConfig              `yaml:"ai"`
	Recommendations RecommendationsConfig `yaml:"recommendations"`
	Coach           CoachConfig           `yaml:"coach"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"carbontrack"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	AuthPerMinute   int           `yaml:"auth_per_minute"  env:"RATE_LIMIT_AUTH_PER_MINUTE"  env-default:"10"`
	AIPerMinute     int           `yaml:"ai_per_minute"    env:"RATE_LIMIT_AI_PER_MINUTE"    env-default:"20"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// Text generator providers.
const (
	AIProviderNone      = "none"
	AIProviderAnthropic = "anthropic"
	AIProviderVertex    = "vertex"
)

// AIConfig selects and configures the external text generator used for
// recommendations and the coach.
type AIConfig struct {
	Provider  string        `yaml:"provider"   env:"AI_PROVIDER"   env-default:"none"`
	Model     string        `yaml:"model"      env:"AI_MODEL"`
	APIKey    string        `yaml:"api_key"    env:"AI_API_KEY"`
	Timeout   time.Duration `yaml:"timeout"    env:"AI_TIMEOUT"    env-default:"15s"`
	MaxTokens int           `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"1024"`

	VertexProject         string `yaml:"vertex_project"          env:"AI_VERTEX_PROJECT"`
	VertexLocation        string `yaml:"vertex_location"         env:"AI_VERTEX_LOCATION"         env-default:"us-central1"`
	VertexCredentialsFile string `yaml:"vertex_credentials_file" env:"AI_VERTEX_CREDENTIALS_FILE"`
}

// RecommendationsConfig holds recommendation generation settings.
type RecommendationsConfig struct {
	HistoryLimit int `yaml:"history_limit" env:"RECOMMENDATIONS_HISTORY_LIMIT" env-default:"50"`
	MaxGenerated int `yaml:"max_generated" env:"RECOMMENDATIONS_MAX_GENERATED" env-default:"3"`
}

// CoachConfig holds carbon coach chat settings.
type CoachConfig struct {
	MaxHistory       int `yaml:"max_history"        env:"COACH_MAX_HISTORY"        env-default:"20"`
	MaxMessageLength int `yaml:"max_message_length" env:"COACH_MAX_MESSAGE_LENGTH" env-default:"2000"`
	RecentActivities int `yaml:"recent_activities"  env:"COACH_RECENT_ACTIVITIES"  env-default:"10"`
}

// AIProviders lists the supported values of AIConfig.Provider.
func AIProviders() []string {
	return []string{AIProviderNone, AIProviderAnthropic, AIProviderVertex}
}

// Enabled reports whether an external text generator is configured.
func (c AIConfig) Enabled() bool {
	return c.Provider != "" && c.Provider != AIProviderNone
}

// IsProviderSupported checks the provider name against AIProviders.
func (c AIConfig) IsProviderSupported() bool {
	return c.Provider == "" || slices.Contains(AIProviders(), c.Provider)
}
