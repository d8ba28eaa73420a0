package logger

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tosipeli/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileMaxSizeMB  = 50
	fileMaxBackups = 5
	fileMaxAgeDays = 14
)

func shortCaller(_ uintptr, file string, line int) string {
	return filepath.Base(file) + ":" + strconv.Itoa(line)
}

// New builds the process logger and installs it as the zerolog global.
func New(cfg config.LogConfig) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level()))
	zerolog.CallerMarshalFunc = shortCaller

	output := writer(cfg.Output(), cfg.File())
	if cfg.Format() == "console" || cfg.Format() == "pretty" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger()

	log.Logger = logger
	return logger
}

func writer(output, file string) io.Writer {
	switch output {
	case "stderr":
		return os.Stderr
	case "file":
		return &lumberjack.Logger{
			Filename:   file,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
			Compress:   true,
		}
	default:
		return os.Stdout
	}
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithComponent tags a logger with the component name.
func WithComponent(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}
