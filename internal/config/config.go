package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Auth struct {
		Secret   string
		TokenTTL time.Duration
	}
	Cache struct {
		Backend       string // "memory" or "redis"
		RedisAddr     string
		RedisPassword string
		RedisDB       int
		TTL           time.Duration
	}
}

// Load reads config from environment (MARKER_ prefix) and optional marker.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MARKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("marker")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", "0")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Auth.Secret = v.GetString("auth.secret")
	cfg.Cache.Backend = v.GetString("cache.backend")
	cfg.Cache.RedisAddr = v.GetString("cache.redis_addr")
	cfg.Cache.RedisPassword = v.GetString("cache.redis_password")
	cfg.Cache.RedisDB = v.GetInt("cache.redis_db")

	ttl, err := time.ParseDuration(v.GetString("auth.token_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid MARKER_AUTH_TOKEN_TTL: %w", err)
	}
	cfg.Auth.TokenTTL = ttl

	cacheTTL, err := time.ParseDuration(v.GetString("cache.ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid MARKER_CACHE_TTL: %w", err)
	}
	cfg.Cache.TTL = cacheTTL

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("MARKER_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("MARKER_DB_DSN is required")
	}
	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("MARKER_AUTH_SECRET is required")
	}
	switch cfg.Cache.Backend {
	case "memory":
	case "redis":
		if cfg.Cache.RedisAddr == "" {
			return nil, fmt.Errorf("MARKER_CACHE_REDIS_ADDR is required when cache.backend is redis")
		}
	default:
		return nil, fmt.Errorf("unsupported cache backend %q: must be memory or redis", cfg.Cache.Backend)
	}

	return cfg, nil
}
