// Package caves generates cave and island masks by cellular-automaton
// smoothing of random noise.
package caves

import (
	"strconv"

	"autotile/internal/core"
	rng "autotile/pkg/core"
)

// Config holds the generator parameters.
type Config struct {
	Width  int
	Height int
	// Fill is the chance that a cell starts solid.
	Fill float64
	// A solid cell stays solid with at least Survive solid neighbours; an
	// open cell turns solid with at least Birth.
	Birth   int
	Survive int
	// Steps is the number of smoothing passes a full run makes.
	Steps int
	// SolidEdge counts cells past the edge as solid, closing the map in rock.
	SolidEdge bool
}

// DefaultConfig returns settings for enclosed caves.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 48, Fill: 0.45, Birth: 5, Survive: 4, Steps: 5, SolidEdge: true}
}

// IslandConfig returns settings for land masses in open water.
func IslandConfig() Config {
	return Config{Width: 64, Height: 48, Fill: 0.42, Birth: 5, Survive: 4, Steps: 4}
}

// FromMap populates a Config from a string map, starting from base.
func FromMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["fill"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Fill = parsed
		}
	}
	if v, ok := cfg["birth"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 8 {
			c.Birth = parsed
		}
	}
	if v, ok := cfg["survive"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 8 {
			c.Survive = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Steps = parsed
		}
	}
	if v, ok := cfg["solid_edge"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.SolidEdge = parsed
		}
	}
	return c
}

// Caves smooths a random mask towards connected solid and open regions.
type Caves struct {
	name string
	cfg  Config
	cur  *core.Mask
	nxt  *core.Mask
}

// New returns a generator named name with the provided configuration.
func New(name string, cfg Config) *Caves {
	return &Caves{
		name: name,
		cfg:  cfg,
		cur:  core.NewMask(cfg.Width, cfg.Height),
		nxt:  core.NewMask(cfg.Width, cfg.Height),
	}
}

// Name returns the generator identifier.
func (c *Caves) Name() string { return c.name }

// Size returns the mask dimensions.
func (c *Caves) Size() core.Size { return core.Size{W: c.cur.W, H: c.cur.H} }

// Cells exposes the current mask values.
func (c *Caves) Cells() []uint8 { return c.cur.Cells() }

// Mask exposes the current mask.
func (c *Caves) Mask() *core.Mask { return c.cur }

// Reset fills the mask with noise drawn from seed.
func (c *Caves) Reset(seed int64) {
	rng.FillChance(rng.NewRNG(seed).Source(), c.cur.Cells(), c.cfg.Fill)
}

// Step runs one smoothing pass.
func (c *Caves) Step() {
	var outside uint8
	if c.cfg.SolidEdge {
		outside = 1
	}
	src, dst := c.cur, c.nxt.Cells()
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			n := src.Count8(x, y, outside)
			idx := src.Index(x, y)
			solid := src.Cells()[idx] != 0
			dst[idx] = 0
			if (solid && n >= c.cfg.Survive) || (!solid && n >= c.cfg.Birth) {
				dst[idx] = 1
			}
		}
	}
	c.cur, c.nxt = c.nxt, c.cur
}

// Steps implements core.Stepper.
func (c *Caves) Steps() int { return c.cfg.Steps }

func init() {
	core.Register("caves", func(cfg map[string]string) core.Generator {
		return New("caves", FromMap(DefaultConfig(), cfg))
	})
	core.Register("islands", func(cfg map[string]string) core.Generator {
		return New("islands", FromMap(IslandConfig(), cfg))
	})
}
