package mapio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"autotile/pkg/grid"
	"autotile/pkg/tilemap"
)

// TileRecord is one line of a tile layer export.
type TileRecord struct {
	Layer     int    `json:"layer"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Source    int    `json:"source"`
	Atlas     [2]int `json:"atlas"`
	Alternate int    `json:"alternate"`
	Terrain   string `json:"terrain,omitempty"`
}

// Tile returns the record's tile.
func (r TileRecord) Tile() grid.Tile {
	return grid.Tile{Source: r.Source, Atlas: grid.Coord{X: r.Atlas[0], Y: r.Atlas[1]}, Alternate: r.Alternate}
}

// Coord returns the record's cell.
func (r TileRecord) Coord() grid.Coord { return grid.Coord{X: r.X, Y: r.Y} }

// Records lists every occupied cell of m, layer by layer, in cell order.
// name resolves the terrain label written alongside each tile; it may be nil.
func Records(m *tilemap.Map, name func(layer int, c grid.Coord) string) []TileRecord {
	var out []TileRecord
	for l := 0; l < m.Layers(); l++ {
		for _, c := range m.UsedCells(l) {
			t, _ := m.Cell(l, c)
			rec := TileRecord{
				Layer:     l,
				X:         c.X,
				Y:         c.Y,
				Source:    t.Source,
				Atlas:     [2]int{t.Atlas.X, t.Atlas.Y},
				Alternate: t.Alternate,
			}
			if name != nil {
				rec.Terrain = name(l, c)
			}
			out = append(out, rec)
		}
	}
	return out
}

// EncodeTiles writes records as JSON lines.
func EncodeTiles(w io.Writer, recs []TileRecord) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeTiles reads JSON-lines records.
func DecodeTiles(r io.Reader) ([]TileRecord, error) {
	var out []TileRecord
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(strings.TrimSpace(string(b))) == 0 {
			continue
		}
		var rec TileRecord
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("tiles: line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tiles: %w", err)
	}
	return out, nil
}

func compressed(path string) bool { return strings.HasSuffix(path, ".zst") }

// WriteTiles exports records to path, compressing with zstd when the path
// ends in ".zst".
func WriteTiles(path string, recs []TileRecord) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if !compressed(path) {
		return EncodeTiles(f, recs)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if err := EncodeTiles(enc, recs); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadTiles loads records written by WriteTiles.
func ReadTiles(path string) ([]TileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !compressed(path) {
		return DecodeTiles(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return DecodeTiles(dec)
}

// ErrLayer is returned when a record names a layer the map does not have.
var ErrLayer = errors.New("tiles: layer out of range")

// Apply writes records into m.
func Apply(m *tilemap.Map, recs []TileRecord) error {
	for _, r := range recs {
		if r.Layer < 0 || r.Layer >= m.Layers() {
			return fmt.Errorf("%w: %d", ErrLayer, r.Layer)
		}
		m.SetCell(r.Layer, r.Coord(), r.Tile())
	}
	return nil
}
