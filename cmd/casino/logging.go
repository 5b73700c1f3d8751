package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/minicasino/internal/config"
)

// setupLogger builds the stderr logger; --debug wins over the configured level.
func setupLogger(w io.Writer, level string, debug bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "casino",
		Level:           lvl,
	})
}

// loadConfig reads and validates the configuration, applying the global
// seed override.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if g.Seed != nil {
		cfg.Casino.Seed = *g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
