// Package logger provides structured event logging for the application.
// Every entry is a named event plus a flat set of key-value fields, emitted
// as JSON on stdout.
package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu  sync.RWMutex
	log *slog.Logger
)

func Init() {
	mu.Lock()
	defer mu.Unlock()
	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if log == nil {
		return slog.Default()
	}
	return log
}

func attrs(fields map[string]interface{}) []any {
	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}
	return args
}

func Info(event string, fields map[string]interface{}) {
	logger().Info(event, attrs(fields)...)
}

func Warn(event string, fields map[string]interface{}) {
	logger().Warn(event, attrs(fields)...)
}

func Error(event string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	logger().Error(event, args...)
}

func InfoWithUser(userID, event string, fields map[string]interface{}) {
	logger().Info(event, append(attrs(fields), "user_id", userID)...)
}

func WarnWithUser(userID, event string, fields map[string]interface{}) {
	logger().Warn(event, append(attrs(fields), "user_id", userID)...)
}
