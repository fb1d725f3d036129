package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a colored text logger writing to w.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC1123Z,
		NoColor:    noColor,
	}))
}

// Setup installs a logger from New as slog.Default and returns it.
func Setup(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	l := New(w, level, noColor)
	slog.SetDefault(l)
	return l
}
