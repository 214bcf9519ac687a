package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/spf13/viper"
)

const VERSION = "1.0"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	RateLimit   RateLimitConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SecurityConfig struct {
	// PASETO key types
	PasetoPrivateKey paseto.V4AsymmetricSecretKey
	PasetoPublicKey  paseto.V4AsymmetricPublicKey

	// Raw decoded bytes
	PasetoPrivateKeyBytes []byte
	PasetoPublicKeyBytes  []byte

	// Lifetime of issued access tokens
	AccessTokenTTL time.Duration
}

type RateLimitConfig struct {
	// PublicMaxRequests requests per PublicWindow per remote address on
	// the unauthenticated ingestion endpoints.
	PublicMaxRequests int
	PublicWindow      time.Duration
}

// IsDevelopment returns true when running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "minicrm")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 30)

	v.SetDefault("PUBLIC_RATE_LIMIT_MAX", 5)
	v.SetDefault("PUBLIC_RATE_LIMIT_WINDOW_SECONDS", 60)

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads configuration from environment variables, with defaults for
// local development. PASETO keys are required.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	privateKeyB64 := v.GetString("PASETO_PRIVATE_KEY")
	publicKeyB64 := v.GetString("PASETO_PUBLIC_KEY")
	if privateKeyB64 == "" || publicKeyB64 == "" {
		return nil, fmt.Errorf("PASETO_PRIVATE_KEY and PASETO_PUBLIC_KEY are required")
	}

	privateKeyBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(privateKeyB64))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PASETO_PRIVATE_KEY: %w", err)
	}
	publicKeyBytes, err := base64.StdEncoding.DecodeString(strings.TrimSpace(publicKeyB64))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PASETO_PUBLIC_KEY: %w", err)
	}

	privateKey, err := paseto.NewV4AsymmetricSecretKeyFromBytes(privateKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid PASETO private key: %w", err)
	}
	publicKey, err := paseto.NewV4AsymmetricPublicKeyFromBytes(publicKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid PASETO public key: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Security: SecurityConfig{
			PasetoPrivateKey:      privateKey,
			PasetoPublicKey:       publicKey,
			PasetoPrivateKeyBytes: privateKeyBytes,
			PasetoPublicKeyBytes:  publicKeyBytes,
			AccessTokenTTL:        time.Duration(v.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			PublicMaxRequests: v.GetInt("PUBLIC_RATE_LIMIT_MAX"),
			PublicWindow:      time.Duration(v.GetInt("PUBLIC_RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     VERSION,
	}, nil
}
