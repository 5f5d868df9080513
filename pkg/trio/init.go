// Package trio builds an application's screens from a declaration file into
// a live tree of (model, controller, view) triples, and rebuilds parts of
// that tree when their view resources change during development.
//
// The heavy lifting lives in the subpackages: schema validates and orders
// declarations, registry owns the trios and the tree operations, declare
// reads declaration files, and hotreload watches files. This package wires
// them together behind Options and a Session.
package trio

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BrandonKowalski/trio/pkg/trio/constants"
	"github.com/BrandonKowalski/trio/pkg/trio/internal"
)

// Options configures logging, the declaration source and hot reload.
type Options struct {
	LogPath           string        // Full path for the log file; empty logs to stdout only
	LogLevel          string        // Application log level name ("debug", "info", ...)
	ScreensFile       string        // Declaration file (.toml, .yaml)
	ResourceRoot      string        // Directory view resources resolve against; defaults to the declaration file's directory
	ResourceExt       string        // Conventional resource suffix; defaults to constants.DefaultResourceExt
	HotReload         bool          // Watch resources and rebuild screens on change; on by default in dev mode
	ReloadDescendants bool          // Rebuild descendants of a changed screen too
	ReloadDebounce    time.Duration // Quiet period before a reload fires
}

// WithEnvironment applies environment overrides: TRIO_LOG_LEVEL,
// TRIO_SCREENS_FILE (when ScreensFile is empty) and TRIO_HOT_RELOAD. In dev
// mode (ENVIRONMENT=DEV) hot reload is on unless TRIO_HOT_RELOAD disables it.
func (o Options) WithEnvironment() Options {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		o.LogLevel = v
	}
	if o.ScreensFile == "" {
		o.ScreensFile = os.Getenv(constants.ScreensFileEnvVar)
	}

	if constants.IsDevMode() {
		o.HotReload = true
	}
	if v := os.Getenv(constants.HotReloadEnvVar); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			o.HotReload = enabled
		} else {
			internal.GetInternalLogger().Warn("Invalid TRIO_HOT_RELOAD; ignoring", "value", v, "error", err)
		}
	}
	return o
}

func (o Options) withDefaults() Options {
	if o.ResourceRoot == "" && o.ScreensFile != "" {
		o.ResourceRoot = filepath.Dir(o.ScreensFile)
	}
	if o.ResourceExt == "" {
		o.ResourceExt = constants.DefaultResourceExt
	}
	if o.ReloadDebounce <= 0 {
		o.ReloadDebounce = constants.DefaultReloadDebounce
	}
	return o
}

// Init sets up logging. Call it before Open.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}

	if constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}
}

// Close flushes and closes the log file.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetInternalLogLevel sets the level of the registry's own logging.
func SetInternalLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}
