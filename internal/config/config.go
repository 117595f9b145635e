package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromEnv builds a Config from lookup. DB_NAME and PORT are required.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getOptional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getInt := func(key string, fallback int) (int, error) {
		raw := getOptional(key, "")
		if raw == "" {
			return fallback, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("environment variable %s must be an integer, got %q", key, raw)
		}
		return n, nil
	}

	cfg := Config{
		DBName:      getEnv("DB_NAME"),
		Port:        getEnv("PORT"),
		LogLevel:    getOptional("LOG_LEVEL", "info"),
		ScorerToken: getOptional("SCORER_TOKEN", ""),
		Slack: SlackConfig{
			Token:         getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID:     getOptional("SLACK_CHANNEL_ID", ""),
			SigningSecret: getOptional("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:   getOptional("GCP_PROJECT", ""),
			TopicPrefix: getOptional("PUBSUB_TOPIC", ""),
		},
		Redis: RedisConfig{
			Addr:     getOptional("REDIS_ADDR", ""),
			Password: getOptional("REDIS_PASSWORD", ""),
			Channel:  getOptional("REDIS_CHANNEL", ""),
		},
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %v", missing)
	}

	var err error
	if cfg.DefaultOvers, err = getInt("DEFAULT_OVERS", 20); err != nil {
		return Config{}, err
	}
	if cfg.DefaultOvers <= 0 {
		return Config{}, fmt.Errorf("DEFAULT_OVERS must be positive, got %d", cfg.DefaultOvers)
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
