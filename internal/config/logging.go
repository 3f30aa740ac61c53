package config

import (
	"github.com/rshade/binderlca/internal/logging"
)

// ToLoggingConfig converts the YAML logging section into a logging.Config.
// "text" is accepted as an alias of the console format.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	format := lc.Format
	if format == "text" {
		format = logging.FormatConsole
	}
	return logging.Config{
		Level:  lc.Level,
		Format: format,
		File:   lc.File,
	}
}

// UsesFile reports whether logs are routed to a file rather than stderr.
func (lc *LoggingConfig) UsesFile() bool {
	return lc.File != ""
}

// Output names the log destination for display: "file" or "stderr".
func (lc *LoggingConfig) Output() string {
	if lc.UsesFile() {
		return outputTypeFile
	}
	return "stderr"
}

// GetLoggingConfig returns a copy of the Logging section of the global
// configuration. Flag overrides such as --debug are applied by the caller.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
