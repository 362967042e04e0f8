package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	Debug   = zerolog.Nop()
	Scanner = zerolog.Nop()
	Remover = zerolog.Nop()
	Enabled bool
)

// Init enables debug logging to path. With enabled false, or when the log
// file can't be opened, every logger discards its output; the terminal
// belongs to the UI. The returned closer releases the log file.
func Init(enabled bool, path string) (io.Closer, error) {
	disable()
	if !enabled {
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nopCloser{}, fmt.Errorf("open debug log: %w", err)
	}

	Enabled = true
	zerolog.TimeFieldFormat = time.RFC3339Nano

	base := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	Debug = base.With().Str("component", "ui").Logger()
	Scanner = base.With().Str("component", "scanner").Logger()
	Remover = base.With().Str("component", "remover").Logger()
	return f, nil
}

func disable() {
	Debug = zerolog.Nop()
	Scanner = zerolog.Nop()
	Remover = zerolog.Nop()
	Enabled = false
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
