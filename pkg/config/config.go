package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

// development fallbacks, used when the corresponding secret is not supplied
const (
	DefaultJWTSecret      = "dev-secret-key"
	DefaultPlaybackSecret = "playback-secret-key"
)

// Config is built once at startup and shared read-only by every component.
type Config struct {
	Port      string          `json:"port"`
	Auth      AuthConfig      `json:"auth"`
	Database  DatabaseConfig  `json:"database"`
	Redis     RedisConfig     `json:"redis"`
	Log       LogConfig       `json:"log"`
	CORS      CORSConfig      `json:"cors"`
	RateLimit RateLimitConfig `json:"rate_limit"`

	// TrustedProxies may set X-Forwarded-For; empty means the socket address is the client
	TrustedProxies []string `json:"trusted_proxies"`
}

type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret_key"`
	JWTExpiryHours int    `mapstructure:"jwt_expiry_hours"`
	PlaybackSecret string `mapstructure:"playback_secret_key"`
}

// SessionTTL returns the lifetime of an issued session token.
func (a AuthConfig) SessionTTL() time.Duration {
	return time.Duration(a.JWTExpiryHours) * time.Hour
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"database_url"`
	Name            string        `mapstructure:"db_name"`
	Host            string        `mapstructure:"db_host"`
	Port            string        `mapstructure:"db_port"`
	Username        string        `mapstructure:"db_username"`
	Password        string        `mapstructure:"db_password"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	SSLMode         string        `mapstructure:"db_ssl_mode"` // e.g., "disable", "require", "verify-ca", "verify-full"
}

// RedisConfig is optional; an empty Host disables the shared login limiter.
type RedisConfig struct {
	Host     string `mapstructure:"redis_host"`
	Port     string `mapstructure:"redis_port"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type LogConfig struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	AllowedMethods []string `mapstructure:"cors_allowed_methods"`
	AllowedHeaders []string `mapstructure:"cors_allowed_headers"`
}

// AllowsAnyOrigin reports whether the wildcard origin is configured.
func (c CORSConfig) AllowsAnyOrigin() bool {
	for _, origin := range c.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

type RateLimitConfig struct {
	LoginPerMinute int `mapstructure:"login_rate_limit"`
	GlobalPerHour  int `mapstructure:"global_rate_limit_per_hour"`
	GlobalPerDay   int `mapstructure:"global_rate_limit_per_day"`
}

func init() {
	if !isGCP {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not find or load .env file.")
		}
	}
}

func NewConfig() *Config {
	return &Config{
		Port: getOptionalSecret("PORT", "8080"),
		Auth: AuthConfig{
			JWTSecret:      getOptionalSecret("JWT_SECRET_KEY", DefaultJWTSecret),
			JWTExpiryHours: getOptionalInt("JWT_EXPIRY_HOURS", 24),
			PlaybackSecret: getOptionalSecret("PLAYBACK_SECRET_KEY", DefaultPlaybackSecret),
		},
		Database: DatabaseConfig{
			URL:             getOptionalSecret("DATABASE_URL", ""),
			Name:            getOptionalSecret("DB_NAME", "video_app"),
			Host:            getOptionalSecret("DB_HOST", "localhost"),
			Port:            getOptionalSecret("DB_PORT", "5432"),
			Username:        getOptionalSecret("DB_USERNAME", "postgres"),
			Password:        getOptionalSecret("DB_PASSWORD", "postgres"),
			MaxOpenConns:    getOptionalInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getOptionalInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getOptionalDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			SSLMode:         getOptionalSecret("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getOptionalSecret("REDIS_HOST", ""),
			Port:     getOptionalSecret("REDIS_PORT", "6379"),
			Password: getOptionalSecret("REDIS_PASSWORD", ""),
			DB:       getOptionalInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  getOptionalSecret("LOG_LEVEL", "info"),
			Format: getOptionalSecret("LOG_FORMAT", "json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getOptionalList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getOptionalList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders: getOptionalList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute: getOptionalInt("LOGIN_RATE_LIMIT", 5),
			GlobalPerHour:  getOptionalInt("GLOBAL_RATE_LIMIT_PER_HOUR", 50),
			GlobalPerDay:   getOptionalInt("GLOBAL_RATE_LIMIT_PER_DAY", 200),
		},
		TrustedProxies: getOptionalList("TRUSTED_PROXIES", nil),
	}
}

// InsecureDefaults lists the signing secrets still set to their development
// fallbacks. Running this way is allowed, callers only warn about it.
func (c *Config) InsecureDefaults() []string {
	var keys []string
	if c.Auth.JWTSecret == DefaultJWTSecret {
		keys = append(keys, "JWT_SECRET_KEY")
	}
	if c.Auth.PlaybackSecret == DefaultPlaybackSecret {
		keys = append(keys, "PLAYBACK_SECRET_KEY")
	}
	return keys
}
