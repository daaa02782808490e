package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultJWTSecret   = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTExpiry   = 30 * 24 * time.Hour
	defaultJWTIssuer   = "crm-backend"
	defaultLoginLimit  = "5-M"
	defaultSQLitePath  = "crm.db"
	defaultServicePort = "8080"
)

// Config holds application configuration.
type Config struct {
	DatabaseDriver    string
	DatabaseURL       string
	SQLitePath        string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	LogLevel          slog.Level
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	CORSAllowedOrigins []string
	LoginRateLimit     string // ulule/limiter format, e.g. "5-M"

	// Bootstrap admin, created on serve when FirstSuperuser is set
	FirstSuperuser         string
	FirstSuperuserEmail    string
	FirstSuperuserPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("DATABASE_DRIVER", DriverSQLite)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", defaultSQLitePath)
	v.SetDefault("PORT", defaultServicePort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiry.String())
	v.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOGIN_RATE_LIMIT", defaultLoginLimit)
	v.SetDefault("FIRST_SUPERUSER", "")
	v.SetDefault("FIRST_SUPERUSER_EMAIL", "")
	v.SetDefault("FIRST_SUPERUSER_PASSWORD", "")

	cfg := &Config{}

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER")))
	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	case "postgresql", "pgsql":
		cfg.DatabaseDriver = DriverPostgres
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (want %s or %s)", cfg.DatabaseDriver, DriverPostgres, DriverSQLite)
	}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseDriver == DriverPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required when DATABASE_DRIVER is %s", DriverPostgres)
	}
	cfg.SQLitePath = v.GetString("SQLITE_PATH")
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = defaultSQLitePath
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = defaultServicePort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	levelStr := v.GetString("LOG_LEVEL")
	if err := cfg.LogLevel.UnmarshalText([]byte(levelStr)); err != nil {
		cfg.LogLevel = slog.LevelInfo
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to %s.\n", levelStr, cfg.LogLevel)
	}

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// e.g. "60m", "720h"
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = defaultJWTExpiry
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = v.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")
	if cfg.LoginRateLimit == "" {
		cfg.LoginRateLimit = defaultLoginLimit
	}

	cfg.FirstSuperuser = v.GetString("FIRST_SUPERUSER")
	cfg.FirstSuperuserEmail = v.GetString("FIRST_SUPERUSER_EMAIL")
	cfg.FirstSuperuserPassword = v.GetString("FIRST_SUPERUSER_PASSWORD")
	if cfg.FirstSuperuser != "" && (cfg.FirstSuperuserEmail == "" || cfg.FirstSuperuserPassword == "") {
		return nil, fmt.Errorf("FIRST_SUPERUSER requires FIRST_SUPERUSER_EMAIL and FIRST_SUPERUSER_PASSWORD")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
