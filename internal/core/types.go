package core

import (
	"fmt"
	"slices"
)

// Size describes the dimensions of a generated mask.
type Size struct {
	W int
	H int
}

// Generator produces a binary mask that is refined one step at a time. Cells
// holding 1 are solid, 0 are open.
type Generator interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Stepper is implemented by generators with a preferred number of passes.
type Stepper interface {
	Steps() int
}

// DefaultSteps is used for generators that do not implement Stepper.
const DefaultSteps = 4

// StepsFor returns the number of passes to run for g.
func StepsFor(g Generator) int {
	if s, ok := g.(Stepper); ok {
		return s.Steps()
	}
	return DefaultSteps
}

// Run resets g from seed, runs its passes and returns the resulting mask.
func Run(g Generator, seed int64) *Mask {
	g.Reset(seed)
	for i := StepsFor(g); i > 0; i-- {
		g.Step()
	}
	return MaskOf(g)
}

// Factory constructs a Generator using an optional configuration map.
type Factory func(cfg map[string]string) Generator

var generators = map[string]Factory{}

// Register adds a generator factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	generators[name] = f
}

// Generators exposes the registry of available generator factories.
func Generators() map[string]Factory {
	return generators
}

// Names lists the registered generators in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the generator registered as name.
func New(name string, cfg map[string]string) (Generator, error) {
	f, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q (have %v)", name, Names())
	}
	return f(cfg), nil
}
