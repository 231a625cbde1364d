package config

// WebConfig holds the HTTP front-end settings.
type WebConfig struct {
	Enabled        bool
	Port           string
	AllowedOrigins []string
	GinMode        string
}

// DiscordConfig holds the Discord front-end settings.
type DiscordConfig struct {
	Enabled bool
	Token   string
	GuildID string
}

// EventsConfig points at the Redis instance receiving consultation events.
type EventsConfig struct {
	RedisURL string
	Stream   string
}

// Config aggregates everything the service binary needs.
type Config struct {
	AI      AIConfig
	Web     WebConfig
	Discord DiscordConfig
	Events  EventsConfig
}

// LoadWebConfig loads HTTP front-end configuration
func LoadWebConfig() WebConfig {
	origins := parseCSV(GetSetting("web_allowed_origins", "WEB_ALLOWED_ORIGINS", "http://localhost:8501"))
	return WebConfig{
		Enabled:        getBoolSetting("enable_web", "ENABLE_WEB", true),
		Port:           GetSetting("web_port", "WEB_PORT", "8501"),
		AllowedOrigins: origins,
		GinMode:        GetSetting("gin_mode", "GIN_MODE", "release"),
	}
}

// LoadDiscordConfig loads Discord configuration. The bot is enabled by
// default only when a token is configured.
func LoadDiscordConfig() DiscordConfig {
	token := GetSetting("discord_token", "DISCORD_TOKEN", "")
	return DiscordConfig{
		Enabled: getBoolSetting("enable_discord", "ENABLE_DISCORD", token != ""),
		Token:   token,
		GuildID: GetSetting("guild_id", "GUILD_ID", ""),
	}
}

// LoadEventsConfig loads the consultation event stream configuration.
func LoadEventsConfig() EventsConfig {
	return EventsConfig{
		RedisURL: GetSetting("redis_url", "REDIS_URL", ""),
		Stream:   GetSetting("events_stream", "EVENTS_STREAM", "expertdesk.consultations"),
	}
}

// Load reads every section. Call data.LoadSettings first when a settings table is available.
func Load() Config {
	return Config{
		AI:      LoadAIConfig(),
		Web:     LoadWebConfig(),
		Discord: LoadDiscordConfig(),
		Events:  LoadEventsConfig(),
	}
}
