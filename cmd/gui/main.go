//go:build ebiten

package main

import (
	"blockfall/config"
	"blockfall/gui"
	"blockfall/tetris"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	logger, closeLog, err := cfg.Logger()
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog() //nolint:errcheck

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = tetris.NewSeed(); err != nil {
			log.Fatal(err)
		}
	}
	logger.Info("starting", slog.Uint64("seed", seed), slog.Int("fps", cfg.FPS))

	t, err := tetris.New(tetris.DefaultRules(), tetris.NewRandomSource(seed))
	if err != nil {
		log.Fatal(err)
	}
	game := gui.New(t, logger)
	ebiten.SetWindowTitle("Tetris")
	ebiten.SetTPS(cfg.FPS)
	ebiten.SetWindowSize(game.Size())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
