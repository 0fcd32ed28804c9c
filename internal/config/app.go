// Package config assembles the service configuration from the security
// policy file and environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	envcfg "news-portal/pkg/config"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// App is the complete runtime configuration of the API server.
type App struct {
	Env      string
	Port     string
	LogLevel string
	Version  string

	StorageDriver string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	Media MediaConfig
	Auth  AuthConfig

	CORSOrigins    []string
	TrustedProxies []string
	RequestTimeout time.Duration
	// PublicURL is the site address used in feed links.
	PublicURL string
}

// MediaConfig configures the media store client.
type MediaConfig struct {
	CloudinaryURL string
	CloudName     string
	APIKey        string
	APISecret     string
	// RatePerSecond throttles calls to the provider; Burst is the bucket size.
	RatePerSecond float64
	Burst         int
	MaxFileSize   int64
}

// AuthConfig configures credential issuance and verification.
type AuthConfig struct {
	Secret            string
	TokenTTL          time.Duration
	CookieName        string
	CookieTTL         time.Duration
	MinPasswordLength int
	LoginPerMinute    int
	WeakSecrets       []string
	MinSecretSize     int
}

// IsProduction reports whether APP_ENV is production.
func (a *App) IsProduction() bool { return a.Env == "production" }

// Load builds App from the security file named by SECURITY_CONFIG and the environment.
func Load() (*App, error) {
	sec, err := LoadSecurityConfig(envcfg.GetEnvString("SECURITY_CONFIG", "config/security.yaml"))
	if err != nil {
		return nil, err
	}

	app := &App{
		Env:      envcfg.GetEnvString("APP_ENV", "development"),
		Port:     envcfg.GetEnvString("PORT", "8080"),
		LogLevel: envcfg.GetEnvString("LOG_LEVEL", "info"),
		Version:  envcfg.GetEnvString("VERSION", "dev"),

		StorageDriver: envcfg.GetEnvString("STORAGE_DRIVER", DriverMongo),
		MongoURI:      envcfg.GetEnvString("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: envcfg.GetEnvString("MONGO_DATABASE", "news_portal"),
		DatabaseURL:   envcfg.GetEnvString("DATABASE_URL", ""),

		Media: MediaConfig{
			CloudinaryURL: envcfg.GetEnvString("CLOUDINARY_URL", ""),
			CloudName:     envcfg.GetEnvString("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:        envcfg.GetEnvString("CLOUDINARY_API_KEY", ""),
			APISecret:     envcfg.GetEnvString("CLOUDINARY_API_SECRET", ""),
			RatePerSecond: float64(envcfg.GetEnvInt("MEDIA_RATE_LIMIT", 10)),
			Burst:         envcfg.GetEnvInt("MEDIA_RATE_BURST", 5),
			MaxFileSize:   envcfg.GetEnvInt64("MAX_FILE_UPLOAD", 10<<20),
		},
		Auth: AuthConfig{
			Secret:            envcfg.GetEnvString(sec.Security.JWT.SecretEnv, ""),
			TokenTTL:          envcfg.GetEnvDuration("JWT_EXPIRE", sec.TokenTTL()),
			CookieName:        sec.Security.Cookie.Name,
			CookieTTL:         time.Duration(envcfg.GetEnvInt("JWT_COOKIE_EXPIRE", sec.Security.Cookie.ExpireDays)) * 24 * time.Hour,
			MinPasswordLength: sec.Security.Password.MinLength,
			LoginPerMinute:    envcfg.GetEnvInt("LOGIN_RATE_LIMIT", sec.Security.Login.RequestsPerMinute),
			WeakSecrets:       sec.Security.JWT.WeakSecrets,
			MinSecretSize:     sec.Security.JWT.MinSecretSize,
		},

		CORSOrigins:    envcfg.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		TrustedProxies: envcfg.GetEnvStringList("TRUSTED_PROXIES", nil),
		RequestTimeout: envcfg.GetEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		PublicURL:      envcfg.GetEnvString("PUBLIC_URL", "http://localhost:5173"),
	}

	if err := app.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}

// Validate rejects configurations the server cannot start with.
func (a *App) Validate() error {
	if err := ValidateJWTSecret(a.Auth.Secret, a.Auth.MinSecretSize, a.Auth.WeakSecrets); err != nil {
		return err
	}
	switch a.StorageDriver {
	case DriverMongo:
		if a.MongoURI == "" {
			return errors.New("MONGO_URI must be set")
		}
	case DriverPostgres:
		if a.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", a.StorageDriver)
	}
	if a.Media.CloudinaryURL == "" && (a.Media.CloudName == "" || a.Media.APIKey == "" || a.Media.APISecret == "") {
		return errors.New("CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME/API_KEY/API_SECRET must be set")
	}
	if a.Media.MaxFileSize <= 0 {
		return errors.New("MAX_FILE_UPLOAD must be positive")
	}
	if a.Media.RatePerSecond <= 0 || a.Media.Burst <= 0 {
		return errors.New("MEDIA_RATE_LIMIT and MEDIA_RATE_BURST must be positive")
	}
	if a.RequestTimeout <= 0 {
		return fmt.Errorf("duration must be positive, got %v", a.RequestTimeout)
	}
	return nil
}

// ValidateJWTSecret enforces the minimum size and rejects common weak values.
func ValidateJWTSecret(secret string, minSize int, weak []string) error {
	if secret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	// セキュリティ: 最小長（既定32文字 = 256ビット）を強制
	if len(secret) < minSize {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSize)
	}
	for _, w := range weak {
		if secret == w || secret == w+"123" {
			return fmt.Errorf("JWT_SECRET must not be a common weak value")
		}
	}
	return nil
}
