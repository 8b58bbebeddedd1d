package world

import "testing"

func TestParse(t *testing.T) {
	m, err := Parse([]string{
		"####",
		"#.2#",
		"####",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Width() != 4 || m.Height() != 3 {
		t.Errorf("Expected 4x3 map, got %dx%d", m.Width(), m.Height())
	}
	if m.WallTypeAt(0, 0) != 1 {
		t.Errorf("Expected '#' to parse as code 1, got %d", m.WallTypeAt(0, 0))
	}
	if m.WallTypeAt(1, 1) != 0 {
		t.Errorf("Expected '.' to parse as empty, got %d", m.WallTypeAt(1, 1))
	}
	if m.WallTypeAt(2, 1) != 2 {
		t.Errorf("Expected '2' to parse as code 2, got %d", m.WallTypeAt(2, 1))
	}
}

func TestParse_PadsRaggedRows(t *testing.T) {
	m, err := Parse([]string{
		"####",
		"#",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Width() != 4 {
		t.Errorf("Expected width of the widest row, got %d", m.Width())
	}
	if m.WallTypeAt(3, 1) != 0 {
		t.Errorf("Expected padded cell empty, got %d", m.WallTypeAt(3, 1))
	}
}

func TestParse_EmptyFails(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Error("Expected error for empty map")
	}
}

func TestNew_RejectsInvalidSize(t *testing.T) {
	if _, err := New(0, 5); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := New(5, -1); err == nil {
		t.Error("Expected error for negative height")
	}
}

func TestWallTypeAt_OutOfRangeIsBoundary(t *testing.T) {
	m, _ := New(4, 4)

	cases := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}}
	for _, c := range cases {
		if got := m.WallTypeAt(c[0], c[1]); got != BoundaryWall {
			t.Errorf("(%d, %d): expected boundary wall, got %d", c[0], c[1], got)
		}
	}
}

func TestIsWall_PointQueries(t *testing.T) {
	m, _ := Parse([]string{
		"###",
		"#.#",
		"###",
	})

	if m.IsWall(1.5, 1.5) {
		t.Error("Expected open cell at (1.5, 1.5)")
	}
	if !m.IsWall(0.5, 0.5) {
		t.Error("Expected wall at (0.5, 0.5)")
	}
	if !m.IsWall(-0.5, 1.5) {
		t.Error("Expected implicit boundary wall outside the grid")
	}
	if m.WallTypeAtPoint(1.2, 1.8) != 0 {
		t.Error("Expected empty cell for interior point")
	}
}

func TestSetCell(t *testing.T) {
	m, _ := New(4, 4)

	gen := m.Generation()
	m.SetCell(2, 2, 3)
	if m.WallTypeAt(2, 2) != 3 {
		t.Errorf("Expected code 3 after set, got %d", m.WallTypeAt(2, 2))
	}
	if m.Generation() == gen {
		t.Error("Expected generation to advance after a cell write")
	}

	// Out-of-range writes are ignored.
	gen = m.Generation()
	m.SetCell(-1, 0, 5)
	m.SetCell(0, 100, 5)
	if m.Generation() != gen {
		t.Error("Expected ignored writes to leave the generation alone")
	}
}

func TestGeneration_UniquePerMap(t *testing.T) {
	a, _ := New(2, 2)
	b, _ := New(2, 2)
	if a.Generation() == b.Generation() {
		t.Error("Expected distinct generations for distinct maps")
	}
}
