package tileset

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// Presets lists the names of the built-in tile sets.
func Presets() []string {
	entries, err := fs.ReadDir(presetFS, "presets")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Preset parses the built-in tile set called name.
func Preset(name string) (*Document, error) {
	raw, err := presetFS.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("tileset: unknown preset %q", name)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}
