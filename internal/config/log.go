package config

import "github.com/rs/zerolog"

// MarshalZerologObject writes cfg as a log object. Keys are logged as
// fingerprints only.
func (cfg *ServerConfig) MarshalZerologObject(e *zerolog.Event) {
	e.Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("public_url", cfg.PublicURL).
		Strs("app_key_fingerprints", cfg.App.Keys.Fingerprints()).
		Dict("cron", zerolog.Dict().
			Bool("enabled", cfg.Cron.Enabled).
			Strs("tasks", cfg.Cron.Tasks.Names()))

	if cfg.JSONFilePath != "" {
		e.Str("config_file", cfg.JSONFilePath)
	}
}
