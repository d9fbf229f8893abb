package config

const (
	defaultDataDir         = "~/.local/share/boardhook"
	defaultAttachmentsDir  = "data/files"
	defaultRequestTimeout  = 10
	defaultOverdueInterval = 3600
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:        defaultDataDir,
			AttachmentsDir: defaultAttachmentsDir,
		},
		Discord: Discord{
			RequestTimeout: defaultRequestTimeout,
		},
		Overdue: Overdue{
			Enabled:  false,
			Interval: defaultOverdueInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
