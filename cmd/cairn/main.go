package main

import (
	"flag"
	"log"
	"os"

	"github.com/akmonengine/cairn/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	difficulty := flag.String("difficulty", config.DefaultDifficulty, "stability preset: easy, medium or hard")
	configDir := flag.String("config", "", "directory holding difficulty.yaml and catalog.yaml, watched for changes")
	level := flag.Int("level", 1, "level whose rocks fill the tray")
	seed := flag.Int64("seed", 1, "seed for the random nudges")
	debug := flag.Bool("debug", false, "log kernel decisions to stderr")
	flag.Parse()

	opts := Options{
		Difficulty: *difficulty,
		ConfigDir:  *configDir,
		Level:      *level,
		Seed:       *seed,
	}
	if *debug {
		opts.Logger = log.New(os.Stderr, "cairn ", log.Lmicroseconds)
	}

	g, err := NewGame(opts)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	defer g.Close()

	if *configDir != "" {
		if err := g.Watch(*configDir); err != nil {
			log.Printf("Config hot reload disabled: %v", err)
		}
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Cairn")
	ebiten.SetWindowResizable(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
