// Package config loads the game settings from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the terminal client configuration. Flags override the
// environment.
type Config struct {
	Seed     uint64 `env:"TETRIS_SEED"`
	FPS      int    `env:"TETRIS_FPS"       envDefault:"60"`
	LogFile  string `env:"TETRIS_LOG_FILE"`
	LogLevel string `env:"TETRIS_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the piece sequence (0 picks a random one)")
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Frames per second of the game loop")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "File to write JSON logs to (empty disables logging)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.FPS <= 0 {
		return Config{}, fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	return cfg, nil
}

// Level converts LogLevel into a slog.Level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Logger builds the JSON logger described by the config. The returned
// function closes the log file, if any.
func (c Config) Logger() (*slog.Logger, func() error, error) {
	level, err := c.Level()
	if err != nil {
		return nil, nil, err
	}
	if c.LogFile == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}
