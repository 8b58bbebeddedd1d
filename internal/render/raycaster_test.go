package render

import (
	"math"
	"testing"

	"gridfire/internal/world"
)

func mustParse(t *testing.T, rows []string) *world.Map {
	t.Helper()
	m, err := world.Parse(rows)
	if err != nil {
		t.Fatalf("parse map: %v", err)
	}
	return m
}

func TestCastRay_StraightIntoWall(t *testing.T) {
	// Player at (1.5, 1.5) facing +x; wall column of code 2 at x=5.
	m := mustParse(t, []string{
		"#########",
		"#....2..#",
		"#....2..#",
		"#....2..#",
		"#########",
	})

	hit := CastRay(m, 1.5, 1.5, 0, 20)
	if hit.WallType != 2 {
		t.Errorf("Expected wall type 2, got %d", hit.WallType)
	}
	// Wall face at x=5, player at x=1.5.
	if math.Abs(hit.Distance-3.5) > 1e-9 {
		t.Errorf("Expected distance 3.5, got %f", hit.Distance)
	}
	if hit.Side != 0 {
		t.Errorf("Expected a vertical boundary hit, got side %d", hit.Side)
	}
	if hit.CellX != 5 || hit.CellY != 1 {
		t.Errorf("Expected hit cell (5, 1), got (%d, %d)", hit.CellX, hit.CellY)
	}
}

func TestCastRay_StraightDown(t *testing.T) {
	m := mustParse(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#...#",
		"#####",
	})

	// Facing +y (down in grid coordinates).
	hit := CastRay(m, 2.5, 1.5, math.Pi/2, 20)
	if hit.WallType != 1 {
		t.Errorf("Expected wall type 1, got %d", hit.WallType)
	}
	if math.Abs(hit.Distance-2.5) > 1e-9 {
		t.Errorf("Expected distance 2.5, got %f", hit.Distance)
	}
	if hit.Side != 1 {
		t.Errorf("Expected a horizontal boundary hit, got side %d", hit.Side)
	}
}

func TestCastRay_MissBeyondMaxDepth(t *testing.T) {
	// The far wall at x=9 is 7.5 cells away, past a max depth of 5 but still
	// inside the step budget: reported as a miss at the far plane.
	rows := []string{
		"##########",
		"#........#",
		"##########",
	}
	m := mustParse(t, rows)

	hit := CastRay(m, 1.5, 1.5, 0, 5)
	if hit.WallType != 0 {
		t.Errorf("Expected wall type 0 past max depth, got %d", hit.WallType)
	}
	if hit.Distance != 5 {
		t.Errorf("Expected distance capped at max depth 5, got %f", hit.Distance)
	}
}

func TestCastRay_OutOfBoundsStopsAtBoundary(t *testing.T) {
	// Completely open map: the ray leaves the grid and must stop against the
	// implicit boundary wall instead of looping.
	m, err := world.New(4, 4)
	if err != nil {
		t.Fatalf("new map: %v", err)
	}

	hit := CastRay(m, 2.0, 2.0, 0.3, 20)
	if hit.WallType != world.BoundaryWall {
		t.Errorf("Expected boundary wall, got type %d", hit.WallType)
	}
	if hit.Distance <= 0 || hit.Distance > 20 {
		t.Errorf("Expected distance in (0, 20], got %f", hit.Distance)
	}
}

func TestCastRay_TexCoordInRange(t *testing.T) {
	m := mustParse(t, []string{
		"#######",
		"#.....#",
		"#.....#",
		"#######",
	})

	for i := 0; i < 32; i++ {
		angle := float64(i) / 32 * 2 * math.Pi
		hit := CastRay(m, 3.2, 1.7, angle, 20)
		if hit.WallType == 0 {
			t.Fatalf("angle %f: expected a hit inside a closed room", angle)
		}
		if hit.TexCoord < 0 || hit.TexCoord >= 1 {
			t.Errorf("angle %f: texture coordinate %f out of [0, 1)", angle, hit.TexCoord)
		}
	}
}

func TestCastRay_AxisAlignedRaysTerminate(t *testing.T) {
	// Exact axis-aligned directions exercise the near-zero direction guard.
	m := mustParse(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#####",
	})

	angles := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	for _, angle := range angles {
		hit := CastRay(m, 2.5, 1.5, angle, 20)
		if hit.WallType == 0 {
			t.Errorf("angle %f: expected a hit inside a closed room", angle)
		}
		if math.IsInf(hit.Distance, 0) || math.IsNaN(hit.Distance) {
			t.Errorf("angle %f: non-finite distance %f", angle, hit.Distance)
		}
	}
}

func TestColumnCaster_MatchesSerialCast(t *testing.T) {
	m := mustParse(t, []string{
		"##########",
		"#....2...#",
		"#..3.....#",
		"#....#...#",
		"#.4......#",
		"##########",
	})

	const n = 128
	px, py := 1.5, 1.5
	heading := 0.4
	fov := math.Pi / 3
	maxDepth := 20.0

	cc := newColumnCaster(n)
	batch := cc.cast(m, px, py, heading, fov, maxDepth)

	for i := 0; i < n; i++ {
		angle := columnAngle(heading, fov, i, n)
		serial := CastRay(m, px, py, angle, maxDepth)
		got := batch[i]
		if got.WallType != serial.WallType || got.Side != serial.Side ||
			got.CellX != serial.CellX || got.CellY != serial.CellY {
			t.Errorf("column %d: batch hit %+v != serial hit %+v", i, got, serial)
			continue
		}
		if math.Abs(got.Distance-serial.Distance) > 1e-9 {
			t.Errorf("column %d: batch distance %f != serial distance %f", i, got.Distance, serial.Distance)
		}
		if math.Abs(got.TexCoord-serial.TexCoord) > 1e-9 {
			t.Errorf("column %d: batch tex coord %f != serial tex coord %f", i, got.TexCoord, serial.TexCoord)
		}
	}
}

func TestColumnCaster_ReusableAcrossFrames(t *testing.T) {
	m := mustParse(t, []string{
		"#####",
		"#...#",
		"#...#",
		"#####",
	})

	cc := newColumnCaster(32)
	first := cc.cast(m, 1.5, 1.5, 0, math.Pi/3, 20)
	firstCopy := make([]Hit, len(first))
	copy(firstCopy, first)

	// Second frame with a different heading, then back to the first: results
	// must only depend on the inputs.
	cc.cast(m, 2.5, 2.5, 1.0, math.Pi/3, 20)
	again := cc.cast(m, 1.5, 1.5, 0, math.Pi/3, 20)

	for i := range firstCopy {
		if firstCopy[i] != again[i] {
			t.Errorf("column %d: hit changed between identical frames: %+v vs %+v", i, firstCopy[i], again[i])
		}
	}
}

func TestColumnAngle_SpansFOV(t *testing.T) {
	heading := 1.0
	fov := math.Pi / 3
	n := 100

	first := columnAngle(heading, fov, 0, n)
	if math.Abs(first-(heading-fov/2)) > 1e-12 {
		t.Errorf("Expected first column at heading-fov/2, got %f", first)
	}

	for i := 1; i < n; i++ {
		prev := columnAngle(heading, fov, i-1, n)
		cur := columnAngle(heading, fov, i, n)
		if cur <= prev {
			t.Errorf("column %d: angles must increase, got %f then %f", i, prev, cur)
		}
	}

	last := columnAngle(heading, fov, n-1, n)
	if last >= heading+fov/2 {
		t.Errorf("Expected last column below heading+fov/2, got %f", last)
	}
}

func TestCorrectedDistance(t *testing.T) {
	if got := correctedDistance(10, 0); got != 10 {
		t.Errorf("Expected center column unchanged, got %f", got)
	}
	got := correctedDistance(10, math.Pi/6)
	want := 10 * math.Cos(math.Pi/6)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Expected %f, got %f", want, got)
	}
	if got >= 10 {
		t.Errorf("Edge column distance must shrink, got %f", got)
	}
}
