package pachca

import "time"

const (
	// DefaultBaseURL is the Pachca shared API root
	DefaultBaseURL = "https://api.pachca.com/api/shared/v1"

	// DefaultOutputPath is where the export is written when no path is given
	DefaultOutputPath = "pachca_export.txt"

	// DefaultPageDelay is the pause between message pages
	DefaultPageDelay = 150 * time.Millisecond

	// DefaultTimeout bounds each HTTP request
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for an export run
type Config struct {
	Token      string        // Pachca API access token (required)
	ChatID     string        // id of the channel to export (required)
	BaseURL    string        // API root; DefaultBaseURL when empty
	OutputPath string        // export file path; DefaultOutputPath when empty
	LogLevel   string        // "debug", "info", "warn", "error"
	LogDir     string        // optional directory for a log file
	PageDelay  time.Duration // minimum spacing between message page requests
	Timeout    time.Duration // per-request timeout
}

// WithDefaults returns a copy of cfg with unset optional fields filled in
func (cfg Config) WithDefaults() Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.PageDelay < 0 {
		cfg.PageDelay = 0
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// Validate reports every required setting that is missing
func (cfg Config) Validate() error {
	var missing []string
	if cfg.Token == "" {
		missing = append(missing, "PACHCA_TOKEN")
	}
	if cfg.ChatID == "" {
		missing = append(missing, "PACHCA_CHAT_ID")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}
