package env

import (
	"errors"

	"tosipeli/internal/config"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logFormatEnvName = "LOG_FORMAT"
	logOutputEnvName = "LOG_OUTPUT"
	logFileEnvName   = "LOG_FILE"
)

type logConfig struct {
	level  string
	format string
	output string
	file   string
}

// NewLogConfig output is stdout, stderr or file; file requires LOG_FILE.
func NewLogConfig() (config.LogConfig, error) {
	cfg := &logConfig{
		level:  getOr(logLevelEnvName, "info"),
		format: getOr(logFormatEnvName, "json"),
		output: getOr(logOutputEnvName, "stdout"),
		file:   getOr(logFileEnvName, ""),
	}

	if cfg.output == "file" && cfg.file == "" {
		return nil, errors.New("log output is file but LOG_FILE is empty")
	}

	return cfg, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Format() string {
	return cfg.format
}

func (cfg *logConfig) Output() string {
	return cfg.output
}

func (cfg *logConfig) File() string {
	return cfg.file
}
