package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	SecretKey                 string
	AccessTokenExpireMinutes  int
	RefreshTokenExpireMinutes int
	BcryptCost                int

	CORSOrigins          []string
	CORSAllowCredentials bool
	CORSAllowMethods     []string
	CORSAllowHeaders     []string

	DefaultPhoneRegion string

	SeedAdminUsername string
	SeedAdminEmail    string
	SeedAdminPassword string

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:                getEnv("SERVER_PORT", "8000"),
		ServerReadHeaderTimeout:   getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:        getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:         getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:            getDuration("REQUEST_TIMEOUT", 30*time.Second),
		DatabaseURL:               strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:                int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:                int32(getInt("DB_MIN_CONNS", 1)),
		SecretKey:                 strings.TrimSpace(os.Getenv("SECRET_KEY")),
		AccessTokenExpireMinutes:  getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30),
		RefreshTokenExpireMinutes: getInt("REFRESH_TOKEN_EXPIRE_MINUTES", 600),
		BcryptCost:                getInt("BCRYPT_COST", 12),
		CORSOrigins:               splitCSV(os.Getenv("CORS_ORIGINS")),
		CORSAllowCredentials:      getBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowMethods:          splitCSV(getEnv("CORS_ALLOW_METHODS", "*")),
		CORSAllowHeaders:          splitCSV(getEnv("CORS_ALLOW_HEADERS", "*")),
		DefaultPhoneRegion:        strings.ToUpper(getEnv("DEFAULT_PHONE_REGION", "SA")),
		SeedAdminUsername:         strings.TrimSpace(os.Getenv("SEED_ADMIN_USERNAME")),
		SeedAdminEmail:            strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")),
		SeedAdminPassword:         os.Getenv("SEED_ADMIN_PASSWORD"),
		LogLevel:                  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:                 strings.ToLower(getEnv("LOG_FORMAT", "pretty")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	if c.RefreshTokenExpireMinutes <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_EXPIRE_MINUTES must be positive")
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	if c.DBMaxConns <= 0 || c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS/DB_MAX_CONNS are inconsistent")
	}

	seed := []string{c.SeedAdminUsername, c.SeedAdminEmail, c.SeedAdminPassword}
	if set := countNonEmpty(seed); set != 0 && set != len(seed) {
		return fmt.Errorf("SEED_ADMIN_USERNAME, SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together")
	}

	switch c.LogFormat {
	case "pretty", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be pretty or json")
	}

	return nil
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenExpireMinutes) * time.Minute
}

func (c *Config) SeedAdminEnabled() bool {
	return c.SeedAdminUsername != ""
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}

func countNonEmpty(values []string) int {
	n := 0
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
