package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Turso: TursoConfig{
			PrimaryURL: getOptionalEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptionalEnv("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:         getOptionalEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:     getOptionalEnv("SLACK_CHANNEL_ID", ""),
			SigningSecret: getOptionalEnv("SLACK_SIGNING_SECRET", ""),
		},
		PubSub: PubSubConfig{
			ProjectID:   getOptionalEnv("GCP_PROJECT", ""),
			TopicPrefix: getOptionalEnv("PUBSUB_TOPIC_PREFIX", "matchday"),
		},
		LogLevel:  getOptionalEnv("LOG_LEVEL", "info"),
		LogFormat: getOptionalEnv("LOG_FORMAT", "json"),
	}
	return cfg
}

func getOptionalEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// ConfigureLogger applies the log level and format to the global logger.
func ConfigureLogger(cfg Config) {
	if cfg.LogFormat == "json" {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn("Unknown log level, falling back to info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
