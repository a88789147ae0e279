// Package logging provides structured logging for the tank battle. It wraps
// Go's standard slog package so every component logs JSON the same way, with
// the battle id attached and sensitive attributes masked.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv is the environment variable that selects the log level
const LevelEnv = "TANKS_LOG_LEVEL"

// Logger wraps slog.Logger with context-first helpers that pick up the
// battle id from the context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger on stdout. The level is read from
// TANKS_LOG_LEVEL (DEBUG, INFO, WARN, ERROR) and defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, getLogLevelFromEnv())
}

// NewLoggerWithWriter creates a JSON logger writing to w at the given level.
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitizeAttributes,
	})
	return &Logger{slog.New(handler)}
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return NewLoggerWithWriter(io.Discard, slog.LevelError+4)
}

// LogWithContext logs a message, adding the battle id from ctx when present.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if battleID := GetBattleID(ctx); battleID != "" {
		args = append(args, "battle_id", battleID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type battleIDKey struct{}

// WithBattleID adds a battle id to the context, generating one when empty.
func WithBattleID(ctx context.Context, battleID string) context.Context {
	if battleID == "" {
		battleID = GenerateBattleID()
	}
	return context.WithValue(ctx, battleIDKey{}, battleID)
}

// GetBattleID extracts the battle id from the context, or "" if none is set.
func GetBattleID(ctx context.Context) string {
	if id, ok := ctx.Value(battleIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateBattleID creates a new random battle id.
func GenerateBattleID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// ParseLevel converts a level name to a slog level, defaulting to INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getLogLevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// sanitizeAttributes masks attributes whose key looks like a credential.
func sanitizeAttributes(groups []string, a slog.Attr) slog.Attr {
	key := strings.ToLower(a.Key)

	sensitiveKeys := []string{
		"password", "passwd", "pwd",
		"token", "auth", "authorization",
		"secret", "private",
	}

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return slog.Attr{
				Key:   a.Key,
				Value: slog.StringValue("[REDACTED]"),
			}
		}
	}

	return a
}

// WrapError wraps an error with additional context information.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
