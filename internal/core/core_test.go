package core

import (
	"slices"
	"testing"
	"time"

	"autotile/pkg/grid"
)

type fixed struct{ name string }

func (f fixed) Name() string   { return f.name }
func (f fixed) Size() Size     { return Size{W: 1, H: 1} }
func (f fixed) Reset(int64)    {}
func (f fixed) Step()          {}
func (f fixed) Cells() []uint8 { return []uint8{1} }

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) Generator { return fixed{} })
	Register("nil", nil)
	Register("test-fixed", func(map[string]string) Generator { return fixed{name: "test-fixed"} })

	if _, ok := Generators()[""]; ok {
		t.Fatal("empty names must be ignored")
	}
	if _, ok := Generators()["nil"]; ok {
		t.Fatal("nil factories must be ignored")
	}
	g, err := New("test-fixed", nil)
	if err != nil || g.Name() != "test-fixed" {
		t.Fatalf("New = %v, %v", g, err)
	}
	if _, err := New("missing", nil); err == nil {
		t.Fatal("unknown generator should fail")
	}
	if !slices.IsSorted(Names()) {
		t.Fatalf("Names() not sorted: %v", Names())
	}
}

type counter struct {
	fixed
	steps int
}

func (c *counter) Step()      { c.steps++ }
func (c *counter) Steps() int { return 3 }

func TestRunUsesPreferredSteps(t *testing.T) {
	c := &counter{}
	m := Run(c, 1)
	if c.steps != 3 {
		t.Fatalf("ran %d steps, want 3", c.steps)
	}
	if m.W != 1 || m.H != 1 || m.Cells()[0] != 1 {
		t.Fatalf("mask = %+v", m)
	}
	if StepsFor(fixed{}) != DefaultSteps {
		t.Fatal("generators without Stepper use the default")
	}
}

func TestMaskCount8(t *testing.T) {
	m := NewMask(3, 3)
	cells := m.Cells()
	cells[m.Index(0, 0)] = 1
	cells[m.Index(2, 2)] = 1
	cells[m.Index(1, 1)] = 1

	if n := m.Count8(1, 1, 0); n != 2 {
		t.Fatalf("centre count = %d", n)
	}
	// corner cell sees five outside neighbours
	if n := m.Count8(0, 0, 1); n != 6 {
		t.Fatalf("corner count with solid outside = %d", n)
	}
	want := []grid.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	if got := m.Coords(1); !slices.Equal(got, want) {
		t.Fatalf("Coords = %v", got)
	}
	m.Clear()
	if len(m.Coords(1)) != 0 {
		t.Fatal("Clear left cells set")
	}
	if NewMask(0, -2).W != 1 {
		t.Fatal("dimensions are clamped to 1")
	}
}

func TestTickerDue(t *testing.T) {
	tk := NewTicker(4)
	start := time.Unix(100, 0)
	if !tk.Due(start) {
		t.Fatal("first call fires")
	}
	if tk.Due(start.Add(100 * time.Millisecond)) {
		t.Fatal("fired early")
	}
	if !tk.Due(start.Add(260 * time.Millisecond)) {
		t.Fatal("should fire after a quarter second")
	}
	// a long stall fires once, not for every missed interval
	if !tk.Due(start.Add(2 * time.Second)) {
		t.Fatal("should fire after a stall")
	}
	if tk.Due(start.Add(2*time.Second + 10*time.Millisecond)) {
		t.Fatal("stall must not queue extra firings")
	}
}
