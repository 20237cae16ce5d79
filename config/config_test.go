package config

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("tetris", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, Config{FPS: 60, LogLevel: "info"}, cfg)
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("TETRIS_SEED", "99")
	t.Setenv("TETRIS_FPS", "30")
	t.Setenv("TETRIS_LOG_LEVEL", "debug")

	fs := flag.NewFlagSet("tetris", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("TETRIS_FPS", "30")

	fs := flag.NewFlagSet("tetris", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-fps", "120", "-seed", "7", "-log-file", "out.log"})
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.FPS)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, "out.log", cfg.LogFile)
}

func TestParseConfigErrors(t *testing.T) {
	t.Run("bad env", func(t *testing.T) {
		t.Setenv("TETRIS_FPS", "fast")
		_, err := ParseConfig(flag.NewFlagSet("tetris", flag.ContinueOnError), nil)
		assert.Error(t, err)
	})

	t.Run("non positive fps", func(t *testing.T) {
		_, err := ParseConfig(flag.NewFlagSet("tetris", flag.ContinueOnError), []string{"-fps", "0"})
		assert.Error(t, err)
	})
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Config{LogLevel: tt.in}.Level()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.log")
	l, closeFn, err := Config{LogFile: path, LogLevel: "info"}.Logger()
	require.NoError(t, err)
	l.Info("hello", slog.Int("score", 10))
	require.NoError(t, closeFn())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"score":10`)
}
