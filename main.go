package main

import (
	"blockfall/client"
	"blockfall/config"
	"blockfall/tetris"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[24;0H\n\r\033[?25h"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("tetris needs an interactive terminal")
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

	c, err := client.New(logger, &client.Options{
		Game: &tetris.Options{
			Rules:  tetris.DefaultRules(),
			Source: tetris.NewRandomSource(seed),
			FPS:    cfg.FPS,
			Logger: logger,
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(hideCursor)
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("unable to close keyboard", slog.String("error", err.Error()))
		}
		fmt.Print(showCursor)
	}()
	c.Start()
}
