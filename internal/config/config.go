// Package config arma la configuración del servidor en capas: defaults,
// archivo YAML opcional, variables de entorno (con .env) y por último los
// flags de la CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config del proceso.
//
//   - DatabaseURL vacío => store en memoria (sembrado si SeedMemory).
//   - JWTSecret es obligatorio fuera de development.
//   - RequestTimeout acota cada request (y por lo tanto cada query).
type Config struct {
	Env  string `yaml:"env"`
	Port string `yaml:"port"`

	DatabaseURL string `yaml:"database_url"`
	SeedMemory  bool   `yaml:"seed_memory"`

	// La validez del token es fija (jwtauth.DefaultTTL); solo se configura el secreto.
	JWTSecret string `yaml:"jwt_secret"`

	CORSOrigins     []string      `yaml:"cors_origins"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	AuthRatePerSecond float64 `yaml:"auth_rate_per_second"`
	AuthRateBurst     int     `yaml:"auth_rate_burst"`

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// devSecret solo se acepta con Env=development.
const devSecret = "dev-only-secret"

func Defaults() Config {
	return Config{
		Env:               EnvDevelopment,
		Port:              "5000",
		SeedMemory:        true,
		JWTSecret:         devSecret,
		CORSOrigins:       []string{"https://capstone-project-ct4v.onrender.com", "http://localhost:5173"},
		RequestTimeout:    15 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		AuthRatePerSecond: 1,
		AuthRateBurst:     10,
		Log:               LogConfig{Level: "info", Format: "text"},
	}
}

// LookupFunc es la firma de os.LookupEnv; los tests pasan un map.
type LookupFunc func(key string) (string, bool)

// Load aplica defaults, el YAML en path (si path != "") y el entorno.
func Load(path string, lookup LookupFunc) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv carga los .env que existan sin pisar variables ya definidas.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	// NODE_ENV se respeta por compatibilidad con los despliegues existentes.
	str("NODE_ENV", &c.Env)
	str("APP_ENV", &c.Env)
	str("PORT", &c.Port)
	str("DATABASE_URL", &c.DatabaseURL)
	str("JWT_SECRET", &c.JWTSecret)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("CORS_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		c.CORSOrigins = SplitList(v)
	}
	if v, ok := lookup("SEED_MEMORY"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SEED_MEMORY: %w", err)
		}
		c.SeedMemory = b
	}
	for key, dst := range map[string]*time.Duration{
		"REQUEST_TIMEOUT":  &c.RequestTimeout,
		"SHUTDOWN_TIMEOUT": &c.ShutdownTimeout,
	} {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Validate corre después de aplicar los flags.
func (c Config) Validate() error {
	var errs []error

	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("env must be development, production or test (got %q)", c.Env))
	}
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.Env != EnvDevelopment && (c.JWTSecret == "" || c.JWTSecret == devSecret) {
		errs = append(errs, errors.New("JWT_SECRET must be set outside development"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if c.AuthRatePerSecond <= 0 || c.AuthRateBurst <= 0 {
		errs = append(errs, errors.New("auth rate limit must be positive"))
	}
	return errors.Join(errs...)
}

// SplitList parte "a, b,,c" en [a b c].
func SplitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
