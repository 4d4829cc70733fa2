package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog logger writing to a log file under the user
// cache directory. The TUI owns stdout, so logs never go there; if the file
// cannot be opened the logger discards everything rather than corrupting the
// screen.
func NewLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var out io.Writer = io.Discard
	if dir, err := os.UserCacheDir(); err == nil {
		path := filepath.Join(dir, "cinemas", "cinemas.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				out = f
			}
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
