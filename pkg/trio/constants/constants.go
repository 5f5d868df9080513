// Package constants defines shared constants and environment switches
// used throughout the trio screen registry.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by trio.Init.
const (
	EnvironmentEnvVar = "ENVIRONMENT"
	LogLevelEnvVar    = "TRIO_LOG_LEVEL"
	ScreensFileEnvVar = "TRIO_SCREENS_FILE"
	HotReloadEnvVar   = "TRIO_HOT_RELOAD"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Reserved screen names. Every schema declares exactly one of each.
const (
	AppScreen     = "app_screen"     // Root of the screen tree
	InitialScreen = "initial_screen" // First child of AppScreen, shown at startup
)

// ObjectKind names one of the three slots of a screen trio.
type ObjectKind int

const (
	KindModel ObjectKind = iota
	KindController
	KindView
)

func (k ObjectKind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindController:
		return "controller"
	case KindView:
		return "view"
	default:
		return "unknown"
	}
}

// Defaults for optional configuration.
const (
	DefaultResourceExt    = ".view"                 // Conventional view resource suffix
	DefaultReloadDebounce = 150 * time.Millisecond // Quiet period before a hot reload fires
)
