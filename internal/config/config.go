package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	DBDriver   string `toml:"db_driver"`
	DBHost     string `toml:"db_host"`
	DBPort     string `toml:"db_port"`
	DBUser     string `toml:"db_user"`
	DBPassword string `toml:"db_password"`
	DBName     string `toml:"db_name"`
	DBPath     string `toml:"db_path"`
	DBLogLevel string `toml:"db_log_level"`

	ServerPort string `toml:"server_port"`
	GinMode    string `toml:"gin_mode"`

	RedisHost     string `toml:"redis_host"`
	RedisPort     string `toml:"redis_port"`
	RedisPassword string `toml:"redis_password"`
	SessionSecret string `toml:"session_secret"`

	CORSOrigins []string `toml:"cors_origins"`

	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`

	OpenAIAPIKey      string        `toml:"openai_api_key"`
	RecommendCooldown time.Duration `toml:"-"`
	// RecommendCooldownSeconds is the file form of RecommendCooldown.
	RecommendCooldownSeconds int `toml:"recommend_cooldown_seconds"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() *Config {
	return &Config{
		DBDriver:                 "postgres",
		DBHost:                   "localhost",
		DBPort:                   "5432",
		DBUser:                   "onestep",
		DBPassword:               "onestep",
		DBName:                   "onestep",
		DBPath:                   "onestep.db",
		DBLogLevel:               "warn",
		ServerPort:               "8080",
		GinMode:                  "debug",
		RedisHost:                "localhost",
		RedisPort:                "6379",
		SessionSecret:            "default-secret-key-change-me",
		CORSOrigins:              []string{"http://localhost:3000"},
		RateLimitRPS:             20,
		RateLimitBurst:           40,
		RecommendCooldownSeconds: 10,
		LogLevel:                 "info",
		LogFormat:                "console",
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.DBLogLevel = getEnv("DB_LOG_LEVEL", cfg.DBLogLevel)
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.RedisHost = getEnv("REDIS_HOST", cfg.RedisHost)
	cfg.RedisPort = getEnv("REDIS_PORT", cfg.RedisPort)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.OpenAIAPIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)

	if v, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", ""), 64); err == nil {
		cfg.RateLimitRPS = v
	}
	if v, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "")); err == nil {
		cfg.RateLimitBurst = v
	}
	if v, err := strconv.Atoi(getEnv("RECOMMEND_COOLDOWN_SECONDS", "")); err == nil {
		cfg.RecommendCooldownSeconds = v
	}
}

func (c *Config) finalize() error {
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.RecommendCooldownSeconds < 0 {
		return fmt.Errorf("recommend cooldown must not be negative")
	}
	c.RecommendCooldown = time.Duration(c.RecommendCooldownSeconds) * time.Second
	return nil
}

// RedisAddr returns host:port of the redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
