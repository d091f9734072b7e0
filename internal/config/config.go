package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env      string
	LogLevel string
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Bcrypt   BcryptConfig
	Redis    RedisConfig
	Webhook  WebhookConfig
	Secure   SecureConfig
	Metrics  bool
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	CACert   string // PEM; enables verified TLS when set
	SQLite   string // file path, or ":memory:"
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type BcryptConfig struct {
	Cost int
}

type RedisConfig struct {
	URL string
}

type WebhookConfig struct {
	URL    string
	Secret string
}

type SecureConfig struct {
	IsDevelopment      bool
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// A missing .env is fine; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
	}
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("SQLITE_PATH", "userorg.db")
	v.SetDefault("JWT_EXPIRY", "2160h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("METRICS_ENABLED", true)

	env := v.GetString("APP_ENV")
	v.SetDefault("SECURE_DEVELOPMENT", env == "development" || env == "test")

	cfg := &Config{
		Env:      env,
		LogLevel: v.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DATABASE_DRIVER")),
			URL:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DATABASE_HOST"),
			Port:     v.GetString("DATABASE_PORT"),
			Name:     v.GetString("DATABASE_NAME"),
			User:     v.GetString("DATABASE_USER"),
			Password: v.GetString("DATABASE_PASSWORD"),
			CACert:   strings.ReplaceAll(v.GetString("CA_CERT"), `\n`, "\n"),
			SQLite:   v.GetString("SQLITE_PATH"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: v.GetDuration("JWT_EXPIRY"),
		},
		Bcrypt: BcryptConfig{
			Cost: v.GetInt("BCRYPT_COST"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		Webhook: WebhookConfig{
			URL:    v.GetString("WEBHOOK_URL"),
			Secret: v.GetString("WEBHOOK_SECRET"),
		},
		Secure: SecureConfig{
			IsDevelopment:      v.GetBool("SECURE_DEVELOPMENT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Metrics: v.GetBool("METRICS_ENABLED"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && (c.Database.Host == "" || c.Database.Name == "" || c.Database.User == "") {
			return fmt.Errorf("DATABASE_URL or DATABASE_HOST, DATABASE_NAME and DATABASE_USER are required")
		}
	case DriverSQLite:
		if c.Database.SQLite == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver)
	}
	return nil
}

// DSN returns DATABASE_URL, or a URL assembled from the individual settings.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	if d.CACert != "" {
		q.Set("sslmode", "verify-full")
	} else {
		q.Set("sslmode", "prefer")
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
