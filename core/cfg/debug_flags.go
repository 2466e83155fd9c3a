package cfg

import (
	"os"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Package-wide debug switch for verbose logging in the block interpreter.
// Default is off to keep logs clean unless explicitly enabled by tests or callers.
var debugLogsEnabled atomic.Bool

func init() {
	if os.Getenv("CFG_DEBUG") == "1" || os.Getenv("CFG_DEBUG") == "true" {
		debugLogsEnabled.Store(true)
	}
}

// EnableDebugLogs toggles all cfg debug logs. Safe to call while blocks execute.
func EnableDebugLogs(on bool) { debugLogsEnabled.Store(on) }

// DebugLogsEnabled reports whether cfg debug logs are on.
func DebugLogsEnabled() bool { return debugLogsEnabled.Load() }

func cfgDebugWarn(msg string, ctx ...interface{}) {
	if debugLogsEnabled.Load() {
		ethlog.Warn(msg, ctx...)
	}
}

func cfgDebugInfo(msg string, ctx ...interface{}) {
	if debugLogsEnabled.Load() {
		ethlog.Info(msg, ctx...)
	}
}

func cfgDebugError(msg string, ctx ...interface{}) {
	if debugLogsEnabled.Load() {
		ethlog.Error(msg, ctx...)
	}
}
