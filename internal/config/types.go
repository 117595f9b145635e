package config

// Config holds all configuration for the application.
type Config struct {
	DBName       string
	Port         string
	LogLevel     string
	ScorerToken  string
	DefaultOvers int
	Slack        SlackConfig
	Turso        TursoConfig
	PubSub       PubSubConfig
	Redis        RedisConfig
}

// SlackConfig covers outgoing notifications (Token, ChannelID) and incoming
// slash commands (SigningSecret).
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// PubSubConfig is optional; an empty ProjectID handles completions in-process.
type PubSubConfig struct {
	ProjectID   string
	TopicPrefix string
}

// RedisConfig is optional; an empty Addr broadcasts to this instance only.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// SlackEnabled reports whether notifications can be posted.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}
