// Package logger はslogによるJSON構造化ログの初期化を提供します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel はLOG_LEVELの文字列をslog.Levelに変換します。不明な値はInfoになります。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup はJSON形式で出力するslog.Loggerを生成します。
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetupDefault はSetupで生成したロガーをグローバルロガーとして設定し、返します。
func SetupDefault(w io.Writer, level string) *slog.Logger {
	l := Setup(w, ParseLevel(level))
	slog.SetDefault(l)
	return l
}
