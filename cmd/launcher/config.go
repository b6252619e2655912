package main

import (
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// settings are the launcher's own knobs. They come from the inherited
// environment only; the project's .env is reserved for the app.
type settings struct {
	Root     string `env:"GOLDPREDICT_ROOT"`
	LogLevel string `env:"GOLDPREDICT_LOG_LEVEL" envDefault:"warn"`
	NoColor  string `env:"NO_COLOR"`
}

func loadSettings() (settings, error) {
	s, err := env.ParseAs[settings]()
	if err != nil {
		return settings{}, fmt.Errorf("cannot read launcher settings: %w", err)
	}
	return s, nil
}

// newLogger returns the diagnostics logger. Unknown levels fall back to warn.
func newLogger(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "launcher",
		Level:  lvl,
	})
}
