// Package config loads the service configuration from a YAML file, with
// secrets and deployment specific values overridable from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Environment variables that take precedence over the config file.
const (
	envJWTSecret            = "JWT_SECRET"
	envJWTExpiration        = "JWT_EXPIRATION"
	envJWTRefreshSecret     = "JWT_REFRESH_SECRET"
	envJWTRefreshExpiration = "JWT_REFRESH_EXPIRATION"
	envBaseURL              = "BASE_URL"
)

type Config struct {
	Env             string `yaml:"env"`
	BaseURL         string `yaml:"base_url"`
	ShortCodeLength int    `yaml:"short_code_length"`
	Log             `yaml:"log"`
	HTTPServer      `yaml:"http_server"`
	Postgres        `yaml:"postgres"`
	JWT             `yaml:"jwt"`
	Password        `yaml:"password"`
}

type Log struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name to a slog.Level, defaulting to info.
func (l *Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Postgres struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DB              string        `yaml:"db"`
	SSLMode         string        `yaml:"sslmode"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MigrationsPath  string        `yaml:"migrations_path"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	MigrationsPath:  "file://migrations",
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

// JWT holds the independent secrets and lifetimes of access and refresh tokens.
type JWT struct {
	AccessSecret      string        `yaml:"access_secret"`
	AccessExpiration  time.Duration `yaml:"access_expiration"`
	RefreshSecret     string        `yaml:"refresh_secret"`
	RefreshExpiration time.Duration `yaml:"refresh_expiration"`
}

type Password struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

// Load reads the config file at path, applies overrides from the environment
// (and from a .env file in the working directory, if present) and validates
// the result.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: failed to load .env file: %w", op, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.ShortCodeLength = 6
	cfg.Log = Log{Level: "info"}
	cfg.HTTPServer = defaultHTTPServer
	cfg.Postgres = defaultPostgres
	cfg.Password = Password{BcryptCost: 10}
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(envJWTSecret); ok {
		cfg.JWT.AccessSecret = v
	}
	if v, ok := os.LookupEnv(envJWTRefreshSecret); ok {
		cfg.JWT.RefreshSecret = v
	}
	if v, ok := os.LookupEnv(envBaseURL); ok {
		cfg.BaseURL = v
	}

	if v, ok := os.LookupEnv(envJWTExpiration); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envJWTExpiration, err)
		}
		cfg.JWT.AccessExpiration = d
	}
	if v, ok := os.LookupEnv(envJWTRefreshExpiration); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", envJWTRefreshExpiration, err)
		}
		cfg.JWT.RefreshExpiration = d
	}

	return nil
}

var (
	ErrMissingSecret     = errors.New("token secret is not configured")
	ErrInvalidExpiration = errors.New("token expiration must be positive")
	ErrSharedSecret      = errors.New("access and refresh tokens must use different secrets")
	ErrMissingBaseURL    = errors.New("base url is not configured")
)

// Validate reports the first missing or inconsistent required setting.
func (cfg *Config) Validate() error {
	switch {
	case cfg.JWT.AccessSecret == "", cfg.JWT.RefreshSecret == "":
		return ErrMissingSecret
	case cfg.JWT.AccessExpiration <= 0, cfg.JWT.RefreshExpiration <= 0:
		return ErrInvalidExpiration
	case cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret:
		return ErrSharedSecret
	case cfg.BaseURL == "":
		return ErrMissingBaseURL
	}

	return nil
}
