package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Like      LikeConfig      `yaml:"like"`
	Karma     KarmaConfig     `yaml:"karma"`
	Content   ContentConfig   `yaml:"content"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
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
	// TrustProxy makes the rate limiter key on X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy" env:"SERVER_TRUST_PROXY" env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// StatementTimeout bounds every statement server-side. Zero leaves the
	// server default in place.
	StatementTimeout time.Duration `yaml:"statement_timeout" env:"DATABASE_STATEMENT_TIMEOUT" env-default:"5s"`
}

// RedisConfig holds the leaderboard cache connection. An empty Addr
// disables caching and every leaderboard request hits PostgreSQL.
type RedisConfig struct {
	Addr           string        `yaml:"addr"            env:"REDIS_ADDR"`
	Password       string        `yaml:"password"        env:"REDIS_PASSWORD"`
	DB             int           `yaml:"db"              env:"REDIS_DB"              env-default:"0"`
	LeaderboardTTL time.Duration `yaml:"leaderboard_ttl" env:"REDIS_LEADERBOARD_TTL" env-default:"10s"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"karmafeed"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"24h"`
}

// LikeConfig tunes the like toggle transaction retry loop.
type LikeConfig struct {
	MaxRetries   int           `yaml:"max_retries"   env:"LIKE_MAX_RETRIES"   env-default:"3"`
	RetryBackoff time.Duration `yaml:"retry_backoff" env:"LIKE_RETRY_BACKOFF" env-default:"20ms"`
}

// KarmaConfig holds leaderboard limits.
type KarmaConfig struct {
	LeaderboardDefaultLimit int `yaml:"leaderboard_default_limit" env:"KARMA_LEADERBOARD_DEFAULT_LIMIT" env-default:"5"`
	LeaderboardMaxLimit     int `yaml:"leaderboard_max_limit"     env:"KARMA_LEADERBOARD_MAX_LIMIT"     env-default:"100"`
}

// ContentConfig holds post and comment limits.
type ContentConfig struct {
	MaxPostLength    int `yaml:"max_post_length"    env:"CONTENT_MAX_POST_LENGTH"    env-default:"10000"`
	MaxCommentLength int `yaml:"max_comment_length" env:"CONTENT_MAX_COMMENT_LENGTH" env-default:"2000"`
	FeedDefaultLimit int `yaml:"feed_default_limit" env:"CONTENT_FEED_DEFAULT_LIMIT" env-default:"20"`
	FeedMaxLimit     int `yaml:"feed_max_limit"     env:"CONTENT_FEED_MAX_LIMIT"     env-default:"100"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"RATE_LIMIT_ENABLED"             env-default:"true"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_REQUESTS_PER_MINUTE" env-default:"300"`
	LikesPerMinute    int           `yaml:"likes_per_minute"    env:"RATE_LIMIT_LIKES_PER_MINUTE"    env-default:"60"`
	MaxClients        int           `yaml:"max_clients"         env:"RATE_LIMIT_MAX_CLIENTS"         env-default:"10000"`
	ClientTTL         time.Duration `yaml:"client_ttl"          env:"RATE_LIMIT_CLIENT_TTL"          env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
