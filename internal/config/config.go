package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Studio    StudioConfig    `mapstructure:"studio"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// StoreConfig selects the slot store backend and carries per-driver settings.
type StoreConfig struct {
	Driver string       `mapstructure:"driver"` // memory, sqlite, mongo, redis
	SQLite SQLiteConfig `mapstructure:"sqlite"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Redis  RedisConfig  `mapstructure:"redis"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type MongoConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type RedisConfig struct {
	Address   string `mapstructure:"address"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// GeneratorConfig configures the workout text generator.
// BaseURL points at an OpenAI-compatible endpoint (Gemini exposes one).
type GeneratorConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	ChatModel      string        `mapstructure:"chat_model"`
	Temperature    float64       `mapstructure:"temperature"`
	ThinkingBudget int           `mapstructure:"thinking_budget"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type StudioConfig struct {
	Name      string `mapstructure:"name"`
	Locale    string `mapstructure:"locale"`
	ClassSize int    `mapstructure:"class_size"`
}

// S3Config configures the optional backup bucket. Backups are disabled when
// BucketName is empty.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// AuthConfig holds the single coach account. PasswordHash is a bcrypt hash
// (see the hash-password command).
type AuthConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	CoachEmail   string `mapstructure:"coach_email"`
	PasswordHash string `mapstructure:"coach_password_hash"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // auto, console, json
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, generator.api_key -> GENERATOR_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// Config file is optional; defaults and env vars are enough.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if err = config.Validate(); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	// Generation can take a while; the write timeout must outlast generator.timeout.
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("store.driver", DriverSQLite)
	v.SetDefault("store.sqlite.path", "data/coachos.db")
	v.SetDefault("store.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("store.mongo.name", "coachos")
	v.SetDefault("store.redis.address", "localhost:6379")
	v.SetDefault("store.redis.key_prefix", "coachos:")

	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("generator.model", "gemini-2.5-pro")
	v.SetDefault("generator.chat_model", "gemini-2.5-flash")
	v.SetDefault("generator.temperature", 0.8)
	v.SetDefault("generator.thinking_budget", 6000)
	v.SetDefault("generator.timeout", "90s")

	v.SetDefault("studio.name", "Functional Lab")
	v.SetDefault("studio.locale", "en")
	v.SetDefault("studio.class_size", 12)

	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.bucket_name", "")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "12h")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.coach_email", "")
	v.SetDefault("auth.coach_password_hash", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// Validate checks cross-field constraints that defaults cannot express.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverMongo, DriverRedis:
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Generator.Temperature < 0 || c.Generator.Temperature > 2 {
		return fmt.Errorf("%w: generator.temperature must be within [0, 2]", ErrInvalidConfig)
	}
	if c.Studio.ClassSize <= 0 {
		return fmt.Errorf("%w: studio.class_size must be positive", ErrInvalidConfig)
	}
	if c.Auth.Enabled {
		if c.JWT.Secret == "" {
			return fmt.Errorf("%w: auth.enabled requires jwt.secret", ErrInvalidConfig)
		}
		if c.Auth.CoachEmail == "" || c.Auth.PasswordHash == "" {
			return fmt.Errorf("%w: auth.enabled requires coach_email and coach_password_hash", ErrInvalidConfig)
		}
	}
	return nil
}

// BackupsEnabled reports whether an S3 bucket is configured.
func (c Config) BackupsEnabled() bool {
	return c.S3.BucketName != ""
}
