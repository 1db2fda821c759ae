//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"autotile/internal/app"
	"autotile/internal/core"
	"autotile/internal/mapio"
	"autotile/internal/tileset"
	rng "autotile/pkg/core"
	_ "autotile/pkg/sims/caves"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	hz := flag.Int("gen-hz", 4, "generator smoothing passes per second")
	flag.Parse()

	logger := log.New(os.Stderr, "[viewer] ", log.LstdFlags)

	var doc *tileset.Document
	var err error
	if cfg.Tileset != "" {
		doc, err = tileset.Load(cfg.Tileset)
	} else {
		doc, err = tileset.Preset(cfg.Preset)
	}
	if err != nil {
		logger.Fatal(err)
	}

	s, err := app.NewSession(doc, cfg.Width, cfg.Height, rng.NewRNG(cfg.Seed), logger)
	if err != nil {
		logger.Fatal(err)
	}
	if cfg.Paint != "" {
		f, err := os.Open(cfg.Paint)
		if err != nil {
			logger.Fatal(err)
		}
		p, err := mapio.ReadPaint(f, doc.Legend)
		f.Close()
		if err != nil {
			logger.Fatalf("%s: %v", cfg.Paint, err)
		}
		if _, err := s.LoadPaint(p); err != nil {
			logger.Fatal(err)
		}
	}

	game := app.New(s, cfg.Scale)
	if cfg.Generator != "" {
		gen, err := core.New(cfg.Generator, cfg.GeneratorConfig())
		if err != nil {
			logger.Fatal(err)
		}
		solid, err := s.Lookup(cfg.Solid)
		if err != nil {
			logger.Fatal(err)
		}
		open, err := s.Lookup(cfg.Open)
		if err != nil {
			logger.Fatal(err)
		}
		game.SetGenerator(gen, solid, open, core.StepsFor(gen), *hz, cfg.Seed)
		gen.Reset(cfg.Seed)
		if _, err := s.LoadMask(core.MaskOf(gen), solid, open); err != nil {
			logger.Fatal(err)
		}
	}

	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("autotile: " + doc.Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
