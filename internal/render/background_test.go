package render

import "testing"

func TestHorizonClip(t *testing.T) {
	cases := []struct {
		name                 string
		top, height, horizon int
		want                 int
	}{
		{"fully above", 10, 20, 100, 20},
		{"touching from above", 80, 20, 100, 20},
		{"straddling", 90, 20, 100, 10},
		{"starting at horizon", 100, 20, 100, 0},
		{"fully below", 150, 20, 100, 0},
		{"raised horizon clips more", 90, 20, 95, 5},
	}
	for _, c := range cases {
		if got := horizonClip(c.top, c.height, c.horizon); got != c.want {
			t.Errorf("%s: expected %d visible rows, got %d", c.name, c.want, got)
		}
	}
}

func TestGenerateStars_AllInSkyBand(t *testing.T) {
	stars := generateStars(starCount)
	if len(stars) != starCount {
		t.Fatalf("Expected %d stars, got %d", starCount, len(stars))
	}
	for i, s := range stars {
		if s.x < 0 || s.x >= 1 {
			t.Errorf("star %d: x %f outside [0, 1)", i, s.x)
		}
		// Stars and the horizon translate together under pitch, so any star
		// placed at or below the screen midline would never be visible.
		if s.y < 0 || s.y >= starMaxY {
			t.Errorf("star %d: y %f outside [0, %v)", i, s.y, starMaxY)
		}
		if s.size < 1 {
			t.Errorf("star %d: degenerate size %d", i, s.size)
		}
	}
}

func TestGenerateStars_Deterministic(t *testing.T) {
	a := generateStars(starCount)
	b := generateStars(starCount)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}
