package core

// Readout is a single labelled value shown on the HUD.
type Readout struct {
	Label string
	Value string
}

// ReadoutGroup clusters related readouts under a heading.
type ReadoutGroup struct {
	Name  string
	Items []Readout
}

// ReadoutProvider exposes the values the HUD should display.
type ReadoutProvider interface {
	Readouts() []ReadoutGroup
}
