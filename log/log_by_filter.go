// Package log adds sampled and conditional helpers on top of the
// go-ethereum logger, for call sites that sit on an interpreter hot path.
package log

import (
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
	"golang.org/x/exp/slog"
)

// LevelTrace mirrors the go-ethereum trace level.
const LevelTrace = ethlog.LevelTrace

// LoggerFilter is used to print log when check func returns true.
type LoggerFilter interface {
	check() bool
}

// EveryN lets one call in N through. A nil or zero EveryN lets every call
// through. It is safe for concurrent use.
type EveryN struct {
	N       uint32
	counter atomic.Uint32
}

func (e *EveryN) check() bool {
	if e == nil || e.N == 0 {
		return true
	}
	c := e.counter.Add(1)
	return c%e.N == 0
}

var _ LoggerFilter = &EveryN{}

type ifCondition struct {
	Condition bool
}

func (i *ifCondition) check() bool {
	if i == nil || i.Condition {
		return true
	}
	return false
}

var _ LoggerFilter = &ifCondition{}

func write(filter LoggerFilter, level slog.Level, msg string, ctx ...interface{}) {
	if filter == nil || filter.check() {
		ethlog.Root().Write(level, msg, ctx...)
	}
}

func TraceBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	write(filter, LevelTrace, msg, ctx...)
}

func DebugBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	write(filter, slog.LevelDebug, msg, ctx...)
}

func InfoBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	write(filter, slog.LevelInfo, msg, ctx...)
}

func WarnBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	write(filter, slog.LevelWarn, msg, ctx...)
}

func ErrorBy(filter LoggerFilter, msg string, ctx ...interface{}) {
	write(filter, slog.LevelError, msg, ctx...)
}

func TraceIf(condition bool, msg string, ctx ...interface{}) {
	TraceBy(&ifCondition{condition}, msg, ctx...)
}

func DebugIf(condition bool, msg string, ctx ...interface{}) {
	DebugBy(&ifCondition{condition}, msg, ctx...)
}

func InfoIf(condition bool, msg string, ctx ...interface{}) {
	InfoBy(&ifCondition{condition}, msg, ctx...)
}

func WarnIf(condition bool, msg string, ctx ...interface{}) {
	WarnBy(&ifCondition{condition}, msg, ctx...)
}

func ErrorIf(condition bool, msg string, ctx ...interface{}) {
	ErrorBy(&ifCondition{condition}, msg, ctx...)
}
