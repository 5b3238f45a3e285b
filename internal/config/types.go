package config

// Config holds all configuration for the application.
type Config struct {
	DBName   string
	Port     string
	Turso    TursoConfig
	Slack    SlackConfig
	PubSub   PubSubConfig
	LogLevel string
	// LogFormat is "json" or "text".
	LogFormat string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether alerts should be posted to Slack.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type PubSubConfig struct {
	ProjectID   string
	TopicPrefix string
}

// Enabled reports whether league updates should also be published to Pub/Sub.
func (p PubSubConfig) Enabled() bool {
	return p.ProjectID != ""
}
