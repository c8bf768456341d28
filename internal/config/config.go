package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to start.
type Config struct {
	Addr          string        `mapstructure:"addr"`
	MongoURI      string        `mapstructure:"mongo_uri"`
	MongoDatabase string        `mapstructure:"mongo_database"`
	GeminiAPIKey  string        `mapstructure:"gemini_api_key"`
	GeminiModel   string        `mapstructure:"gemini_model"`
	AITimeout     time.Duration `mapstructure:"ai_timeout"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() *Config {
	return &Config{
		Addr:          ":8000",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "intellitasker",
		GeminiModel:   "gemini-2.5-flash",
		AITimeout:     30 * time.Second,
	}
}

// Load builds the configuration: defaults, then an optional YAML file,
// then environment variables on top. Env always wins so deployments can
// override a checked-in config file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else if _, err := os.Stat("intellitasker.yaml"); err == nil {
		if err := loadFile("intellitasker.yaml", cfg); err != nil {
			return nil, fmt.Errorf("read config file intellitasker.yaml: %w", err)
		}
	}

	cfg.Addr = getEnv("ADDR", cfg.Addr)
	cfg.MongoURI = getEnv("MONGODB_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGODB_DATABASE", cfg.MongoDatabase)
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)

	if raw := os.Getenv("AI_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("AI_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.AITimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
