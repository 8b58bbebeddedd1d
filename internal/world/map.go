package world

import (
	"fmt"
	"math"
	"sync/atomic"
)

// BoundaryWall is the wall-type code reported for any grid access outside
// the map bounds. Rays that leave the map stop against it instead of
// wandering forever.
const BoundaryWall = 1

var generationCounter uint64

// Map is a square occupancy grid of wall-type codes. Code 0 is empty;
// positive codes select a wall texture/palette entry. The renderer treats a
// Map as read-only.
type Map struct {
	width, height int
	cells         []int
	generation    uint64
}

// New creates an empty map of the given dimensions.
func New(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("world: invalid map size %dx%d", width, height)
	}
	return &Map{
		width:      width,
		height:     height,
		cells:      make([]int, width*height),
		generation: atomic.AddUint64(&generationCounter, 1),
	}, nil
}

// Parse builds a map from character rows. Digits 1-9 are wall codes,
// '#' is wall code 1, anything else is empty. Rows are padded to the widest
// row's length.
func Parse(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("world: empty map")
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	m, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x, ch := range row {
			switch {
			case ch == '#':
				m.cells[y*width+x] = 1
			case ch >= '1' && ch <= '9':
				m.cells[y*width+x] = int(ch - '0')
			}
		}
	}
	return m, nil
}

// Width returns the grid width in cells.
func (m *Map) Width() int { return m.width }

// Height returns the grid height in cells.
func (m *Map) Height() int { return m.height }

// Generation identifies this map instance for caches keyed by map identity.
func (m *Map) Generation() uint64 { return m.generation }

// SetCell writes a wall code and advances the map generation so caches keyed
// on it rebuild. In-bounds only; out-of-range writes are ignored (the border
// is implicit).
func (m *Map) SetCell(cx, cy, code int) {
	if cx < 0 || cy < 0 || cx >= m.width || cy >= m.height {
		return
	}
	m.cells[cy*m.width+cx] = code
	m.generation = atomic.AddUint64(&generationCounter, 1)
}

// WallTypeAt returns the wall code of a cell. Out-of-range access reports
// BoundaryWall so grid traversal always terminates.
func (m *Map) WallTypeAt(cx, cy int) int {
	if cx < 0 || cy < 0 || cx >= m.width || cy >= m.height {
		return BoundaryWall
	}
	return m.cells[cy*m.width+cx]
}

// IsWall reports whether the cell containing the world point (x, y) is
// occupied. World units are grid cells.
func (m *Map) IsWall(x, y float64) bool {
	return m.WallTypeAt(int(math.Floor(x)), int(math.Floor(y))) > 0
}

// WallTypeAtPoint returns the wall code of the cell containing (x, y).
func (m *Map) WallTypeAtPoint(x, y float64) int {
	return m.WallTypeAt(int(math.Floor(x)), int(math.Floor(y)))
}
