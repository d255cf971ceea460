// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the courier server and client.
//
// Both binaries log JSON with a role, a timestamp and the calling function.
// Request and job scoped loggers travel in the context and are recovered
// with FromContext or FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelEnv overrides the default debug level, e.g. LOG_LEVEL=warn.
const LevelEnv = "LOG_LEVEL"

// Logger embeds zerolog.Logger so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

var setupGlobals sync.Once

// configure applies the process-wide zerolog settings once. The level is
// re-read on every call so tests can change it.
func configure() {
	setupGlobals.Do(func() {
		zerolog.CallerFieldName = "func"
		zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
			return runtime.FuncForPC(pc).Name()
		}
	})

	level := zerolog.DebugLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv(LevelEnv)); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)
}

func newLogger(out io.Writer, role string) *Logger {
	configure()

	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// NewLogger returns the server logger for role, writing to stdout.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

// NewClientLogger returns the CLI logger. Entries go to
// <user cache dir>/file-courier/client.log so they never mix with command
// output. When the file cannot be opened logging is discarded.
func NewClientLogger(role string) *Logger {
	return newLogger(clientLogFile(), role)
}

func clientLogFile() io.Writer {
	dir, err := os.UserCacheDir()
	if err != nil {
		return io.Discard
	}

	logDir := filepath.Join(dir, "file-courier")
	if err = os.MkdirAll(logDir, 0o700); err != nil {
		return io.Discard
	}

	f, err := os.OpenFile(filepath.Join(logDir, "client.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard
	}
	return f
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithTransfer returns a child logger tagged with transferID.
func (l *Logger) WithTransfer(transferID string) *Logger {
	return &Logger{l.With().Str("transfer_id", transferID).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx, or zerolog's default
// logger when there is none. It never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
