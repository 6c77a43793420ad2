package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host    string `mapstructure:"SERVER_HOST"`
	Port    int    `mapstructure:"SERVER_PORT"`
	BaseURL string `mapstructure:"SERVER_BASE_URL"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"DB_HOST"`
	Port     int    `mapstructure:"DB_PORT"`
	User     string `mapstructure:"DB_USER"`
	Password string `mapstructure:"DB_PASSWORD"`
	DBName   string `mapstructure:"DB_NAME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     int    `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type JWTConfig struct {
	Secret            string `mapstructure:"JWT_SECRET"`
	AccessExpiryMins  int    `mapstructure:"JWT_ACCESS_EXPIRY_MINUTES"`
	RefreshExpiryMins int    `mapstructure:"JWT_REFRESH_EXPIRY_MINUTES"`
}

type GoogleAPIConfig struct {
	ClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	ClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `mapstructure:"GOOGLE_REDIRECT_URI"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"OPENAI_API_KEY"`
	Model  string `mapstructure:"OPENAI_MODEL"`
}

type YelpConfig struct {
	APIKey string `mapstructure:"YELP_API_KEY"`
}

type S3Config struct {
	Region          string `mapstructure:"S3_REGION"`
	Bucket          string `mapstructure:"S3_BUCKET"`
	AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	Endpoint        string `mapstructure:"S3_ENDPOINT"`
}

type LogConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	JWT       JWTConfig       `mapstructure:",squash"`
	GoogleAPI GoogleAPIConfig `mapstructure:",squash"`
	OpenAI    OpenAIConfig    `mapstructure:",squash"`
	Yelp      YelpConfig      `mapstructure:",squash"`
	S3        S3Config        `mapstructure:",squash"`
	Log       LogConfig       `mapstructure:",squash"`
}

var (
	instance *Config
	mu       sync.RWMutex
)

// Init loads configuration from environment variables (godotenv has already
// populated the process env in core/server).
func Init() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)
	v.SetDefault("SERVER_BASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "plansync")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ACCESS_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_REFRESH_EXPIRY_MINUTES", 60*24*7)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	// Bind every key we read so AutomaticEnv picks them up without a config file.
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_BASE_URL",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB",
		"JWT_SECRET", "JWT_ACCESS_EXPIRY_MINUTES", "JWT_REFRESH_EXPIRY_MINUTES",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URI",
		"OPENAI_API_KEY", "OPENAI_MODEL",
		"YELP_API_KEY",
		"S3_REGION", "S3_BUCKET", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_ENDPOINT",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded config. Panics if Init has not been called; use
// GetSafe where startup ordering is not guaranteed.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Init")
	}
	return instance
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
