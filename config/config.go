package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API struct {
		BaseURL       string
		Timeout       time.Duration
		UploadTimeout time.Duration
	}
	AI struct {
		MaxPollAttempts int
		PollInterval    time.Duration
	}
	Store struct {
		Driver        string
		Path          string
		RedisAddr     string
		RedisPassword string
		RedisDB       int
	}
	Telegram struct {
		Token string
		Debug bool
	}
	DB struct {
		Host         string
		Port         string
		User         string
		Password     string
		DBName       string
		SSLMode      string
		MaxOpenConns int
		MaxIdleConns int
		ConnLifetime time.Duration
	}
	Stripe struct {
		SecretKey  string
		PublicKey  string
		WebhookKey string
		ProductID  string
		PriceID    string
	}
	GPT struct {
		APIKey  string
		Model   string
		BaseURL string
	}
	Server struct {
		Port string
	}
	Log struct {
		Level       string
		Development bool
	}
	ShutdownTimeout time.Duration
}

// Load reads config.yaml or config.json from the usual places and lets
// environment variables override single keys (API_BASEURL, STORE_DRIVER, ...).
// Without a config file it builds the config from the environment alone.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.daily-energy")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		return fromEnv(), nil
	}

	// Process any ${ENV_VAR} syntax in the config values
	for _, key := range v.AllKeys() {
		value := v.GetString(key)
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(value, "}"), "${")
			if envValue := os.Getenv(envVar); envValue != "" {
				v.Set(key, envValue)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API.BaseURL", "http://localhost:8080/api")
	v.SetDefault("API.Timeout", 30*time.Second)
	v.SetDefault("API.UploadTimeout", 60*time.Second)
	v.SetDefault("AI.MaxPollAttempts", 30)
	v.SetDefault("AI.PollInterval", 2*time.Second)
	v.SetDefault("Store.Driver", "sqlite")
	v.SetDefault("Store.RedisAddr", "localhost:6379")
	v.SetDefault("GPT.Model", "gpt-4o-mini")
	v.SetDefault("Server.Port", "8081")
	v.SetDefault("Log.Level", "info")
	v.SetDefault("DB.Port", "5432")
	v.SetDefault("DB.SSLMode", "disable")
	v.SetDefault("DB.MaxOpenConns", 20)
	v.SetDefault("DB.MaxIdleConns", 10)
	v.SetDefault("DB.ConnLifetime", 5*time.Minute)
	v.SetDefault("ShutdownTimeout", 10*time.Second)
}

func fromEnv() *Config {
	cfg := &Config{}

	cfg.API.BaseURL = getEnvOr("API_BASE_URL", "http://localhost:8080/api")
	cfg.API.Timeout = getDurationOr("API_TIMEOUT", 30*time.Second)
	cfg.API.UploadTimeout = getDurationOr("API_UPLOAD_TIMEOUT", 60*time.Second)
	cfg.AI.MaxPollAttempts = getIntOr("AI_MAX_POLL_ATTEMPTS", 30)
	cfg.AI.PollInterval = getDurationOr("AI_POLL_INTERVAL", 2*time.Second)
	cfg.Store.Driver = getEnvOr("STORE_DRIVER", "sqlite")
	cfg.Store.Path = os.Getenv("STORE_PATH")
	cfg.Store.RedisAddr = getEnvOr("REDIS_ADDR", "localhost:6379")
	cfg.Store.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.Store.RedisDB = getIntOr("REDIS_DB", 0)
	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	cfg.DB.Host = os.Getenv("DB_HOST")
	cfg.DB.Port = getEnvOr("DB_PORT", "5432")
	cfg.DB.User = getEnvOr("DB_USER", "postgres")
	cfg.DB.Password = os.Getenv("DB_PASSWORD")
	cfg.DB.DBName = getEnvOr("DB_NAME", "daily_energy")
	cfg.DB.SSLMode = getEnvOr("DB_SSL_MODE", "disable")
	cfg.DB.MaxOpenConns = getIntOr("DB_MAX_OPEN_CONNS", 20)
	cfg.DB.MaxIdleConns = getIntOr("DB_MAX_IDLE_CONNS", 10)
	cfg.DB.ConnLifetime = getDurationOr("DB_CONN_LIFETIME", 5*time.Minute)
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.PublicKey = os.Getenv("STRIPE_PUBLIC_KEY")
	cfg.Stripe.WebhookKey = os.Getenv("STRIPE_WEBHOOK_KEY")
	cfg.Stripe.ProductID = os.Getenv("STRIPE_PRODUCT_ID")
	cfg.Stripe.PriceID = os.Getenv("STRIPE_PRICE_ID")
	cfg.GPT.APIKey = os.Getenv("GPT_API_KEY")
	cfg.GPT.Model = getEnvOr("GPT_MODEL", "gpt-4o-mini")
	cfg.GPT.BaseURL = os.Getenv("GPT_BASE_URL")
	cfg.Server.Port = getEnvOr("SERVER_PORT", "8081")
	cfg.Log.Level = getEnvOr("LOG_LEVEL", "info")
	cfg.Log.Development = os.Getenv("LOG_DEVELOPMENT") == "true"
	cfg.ShutdownTimeout = getDurationOr("SHUTDOWN_TIMEOUT", 10*time.Second)

	return cfg
}

// Helper function to get environment variable with default value
func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOr(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getDurationOr(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
