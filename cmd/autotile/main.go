package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"autotile/internal/app"
	"autotile/internal/core"
	"autotile/internal/mapio"
	"autotile/internal/tileset"
	rng "autotile/pkg/core"
	_ "autotile/pkg/sims/caves"
	"autotile/pkg/terrain"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	out := flag.String("out", "", "write resolved tiles as JSON lines; a .zst suffix compresses")
	printMap := flag.Bool("print", false, "print the painted terrain map to stdout")
	list := flag.Bool("list", false, "list presets and generators, then exit")
	verbose := flag.Bool("v", false, "log resolver diagnostics")
	flag.Parse()

	logger := log.New(os.Stderr, "[autotile] ", log.LstdFlags)

	if *list {
		fmt.Println("presets:   ", strings.Join(tileset.Presets(), ", "))
		fmt.Println("generators:", strings.Join(core.Names(), ", "))
		return
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	var resolverLog *log.Logger
	if *verbose {
		resolverLog = logger
	}
	s, err := app.NewSession(doc, cfg.Width, cfg.Height, rng.NewRNG(cfg.Seed), resolverLog)
	if err != nil {
		logger.Fatal(err)
	}

	rep, err := fill(cfg, s)
	if err != nil {
		logger.Fatal(err)
	}
	b := s.Bounds()
	logger.Printf("%s: %dx%d cells, rendered=%d snapshot=%d committed=%d skipped=%d",
		doc.Name, b.Size.X, b.Size.Y, rep.Rendered, rep.Snapshot, rep.Committed, rep.Skipped)

	if *out != "" {
		recs := s.Records()
		if err := mapio.WriteTiles(*out, recs); err != nil {
			logger.Fatalf("write %s: %v", *out, err)
		}
		logger.Printf("wrote %d tiles to %s", len(recs), *out)
	}
	if *printMap {
		if err := mapio.WritePaint(os.Stdout, s.Painting(), doc.Legend); err != nil {
			logger.Fatal(err)
		}
	}
}

func loadDocument(cfg *app.Config) (*tileset.Document, error) {
	if cfg.Tileset != "" {
		return tileset.Load(cfg.Tileset)
	}
	return tileset.Preset(cfg.Preset)
}

func fill(cfg *app.Config, s *app.Session) (terrain.Report, error) {
	switch {
	case cfg.Paint != "":
		f, err := os.Open(cfg.Paint)
		if err != nil {
			return terrain.Report{}, err
		}
		defer f.Close()
		p, err := mapio.ReadPaint(f, s.Doc.Legend)
		if err != nil {
			return terrain.Report{}, fmt.Errorf("%s: %w", cfg.Paint, err)
		}
		return s.LoadPaint(p)

	case cfg.Generator != "":
		gen, err := core.New(cfg.Generator, cfg.GeneratorConfig())
		if err != nil {
			return terrain.Report{}, err
		}
		solid, err := s.Lookup(cfg.Solid)
		if err != nil {
			return terrain.Report{}, err
		}
		open, err := s.Lookup(cfg.Open)
		if err != nil {
			return terrain.Report{}, err
		}
		return s.LoadMask(core.Run(gen, cfg.Seed), solid, open)
	}
	return terrain.Report{}, fmt.Errorf("nothing to autotile: pass -paint or -gen")
}
