package app

import (
	"flag"
	"strings"
)

// Config represents the command-line parameters shared by the commands.
type Config struct {
	Tileset   string
	Preset    string
	Paint     string
	Generator string
	GenOpts   string
	Solid     string
	Open      string
	Width     int
	Height    int
	Scale     int
	TPS       int
	Seed      int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Preset: "meadow",
		Solid:  "grass",
		Open:   "water",
		Width:  48,
		Height: 32,
		Scale:  12,
		TPS:    60,
		Seed:   42,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Tileset, "tileset", c.Tileset, "tileset YAML file (overrides -preset)")
	fs.StringVar(&c.Preset, "preset", c.Preset, "built-in tileset to use")
	fs.StringVar(&c.Paint, "paint", c.Paint, "text paint map to load")
	fs.StringVar(&c.Generator, "gen", c.Generator, "mask generator to paint from (caves, islands)")
	fs.StringVar(&c.GenOpts, "gen-opts", c.GenOpts, "generator options as key=value,key=value")
	fs.StringVar(&c.Solid, "solid", c.Solid, "terrain painted on solid generator cells")
	fs.StringVar(&c.Open, "open", c.Open, "terrain painted on open generator cells (or \"empty\")")
	fs.IntVar(&c.Width, "w", c.Width, "map width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "map height in cells")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for tile selection and generators")
}

// GeneratorConfig parses GenOpts and fills in the map size.
func (c *Config) GeneratorConfig() map[string]string {
	out := ParseOptions(c.GenOpts)
	if _, ok := out["w"]; !ok && c.Width > 0 {
		out["w"] = itoa(c.Width)
	}
	if _, ok := out["h"]; !ok && c.Height > 0 {
		out["h"] = itoa(c.Height)
	}
	return out
}

// ParseOptions splits "k=v,k2=v2" into a map. Entries without '=' are kept
// with an empty value.
func ParseOptions(s string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
