// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

// Package log is a thin structured-logging facade for the planner libraries.
// It renders format arguments through redact so values flagged as unsafe stay
// redactable, prefixes messages with the tags carried by the context, and
// hands the result to a configurable go-kit sink (a no-op by default, since
// these libraries are embedded in a host engine that owns log routing).
package log

import (
	"context"
	"sync/atomic"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var logger atomic.Value // kitlog.Logger

// verbosity gates VEventf; see V.
var verbosity atomic.Int32

type loggerBox struct {
	log kitlog.Logger
}

func init() {
	logger.Store(loggerBox{log: kitlog.NewNopLogger()})
}

// SetLogger routes all subsequent log output to the given sink. Passing nil
// restores the no-op sink.
func SetLogger(l kitlog.Logger) {
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	logger.Store(loggerBox{log: l})
}

// SetVerbosity sets the level below which VEventf calls produce output.
func SetVerbosity(v int) {
	verbosity.Store(int32(v))
}

// V returns true if the current verbosity is at or above the requested
// level. Use it to avoid evaluating expensive log arguments.
func V(level int) bool {
	return verbosity.Load() >= int32(level)
}

// Infof logs an informational message.
func Infof(ctx context.Context, format string, args ...interface{}) {
	emit(ctx, level.Info, format, args)
}

// Warningf logs a warning message.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	emit(ctx, level.Warn, format, args)
}

// Errorf logs an error message.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	emit(ctx, level.Error, format, args)
}

// VEventf logs a debug message if the verbosity is at or above the given
// level.
func VEventf(ctx context.Context, v int, format string, args ...interface{}) {
	if !V(v) {
		return
	}
	emit(ctx, level.Debug, format, args)
}

func emit(
	ctx context.Context,
	lvl func(kitlog.Logger) kitlog.Logger,
	format string,
	args []interface{},
) {
	l := lvl(logger.Load().(loggerBox).log)
	msg := redact.Sprintf(format, args...)
	if tags := logtags.FromContext(ctx); tags != nil {
		_ = l.Log("tags", tags.String(), "msg", msg.StripMarkers())
		return
	}
	_ = l.Log("msg", msg.StripMarkers())
}
