// Package logging configures the global zerolog logger used by nsproxy.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/nextproxy/nsproxy/lib/configtypes"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.Disabled,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

// ParseLevel matches a level name case-insensitively.
func ParseLevel(level string) (zerolog.Level, bool) {
	l, ok := logLevelMatches[strings.ToUpper(level)]
	return l, ok
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

func isTerminalAttached() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && runtime.GOOS != "windows"
}

// Setup configures the global logger. Unknown levels fall back to info. The
// returned close function is non-nil when a log file was opened.
func Setup(cfg configtypes.Log) (func(), error) {
	logLevel, ok := ParseLevel(cfg.Level)
	if !ok {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.Logger = log.Output(f)
		return func() {
			_ = f.Close()
		}, nil
	}
	if isTerminalAttached() {
		log.Logger = log.Output(consoleWriter(os.Stdout))
	}
	return nil, nil
}

// Enabled checks if a specific logging level is enabled
func Enabled(level zerolog.Level) bool {
	return level >= zerolog.GlobalLevel()
}
