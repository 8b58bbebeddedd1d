package render

import "testing"

func TestFogHoles_FiltersOutOfBounds(t *testing.T) {
	m := mustParse(t, []string{
		"#####",
		"#...#",
		"#####",
	})

	visited := map[[2]int]bool{
		{1, 1}:   true,
		{3, 1}:   true,
		{-1, 1}:  true,
		{1, -1}:  true,
		{5, 1}:   true,
		{1, 3}:   true,
		{99, 99}: true,
	}

	holes := fogHoles(m, visited)
	if len(holes) != 2 {
		t.Fatalf("Expected 2 in-bounds holes, got %v", holes)
	}
	got := map[[2]int]bool{}
	for _, h := range holes {
		got[h] = true
	}
	if !got[[2]int{1, 1}] || !got[[2]int{3, 1}] {
		t.Errorf("Expected holes at (1,1) and (3,1), got %v", holes)
	}
}

func TestFogHoles_SkipsFalseEntries(t *testing.T) {
	m := mustParse(t, []string{
		"###",
		"#.#",
		"###",
	})

	visited := map[[2]int]bool{
		{1, 1}: false,
		{0, 0}: true,
	}
	holes := fogHoles(m, visited)
	if len(holes) != 1 || holes[0] != [2]int{0, 0} {
		t.Errorf("Expected only the true entry, got %v", holes)
	}
}

func TestFogHoles_TracksChangedSet(t *testing.T) {
	// Two same-size visited sets over the same map must punch different
	// holes; the mask follows whatever set the caller passes this frame.
	m := mustParse(t, []string{
		"#####",
		"#...#",
		"#####",
	})

	first := fogHoles(m, map[[2]int]bool{{1, 1}: true})
	second := fogHoles(m, map[[2]int]bool{{3, 1}: true})
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("Expected one hole each, got %v and %v", first, second)
	}
	if first[0] == second[0] {
		t.Error("Expected the holes to follow the supplied set")
	}
	if first[0] != [2]int{1, 1} || second[0] != [2]int{3, 1} {
		t.Errorf("Expected holes (1,1) then (3,1), got %v and %v", first, second)
	}
}

func TestFogHoles_EmptySet(t *testing.T) {
	m := mustParse(t, []string{
		"###",
		"#.#",
		"###",
	})
	if holes := fogHoles(m, nil); len(holes) != 0 {
		t.Errorf("Expected no holes for a nil set, got %v", holes)
	}
	if holes := fogHoles(m, map[[2]int]bool{}); len(holes) != 0 {
		t.Errorf("Expected no holes for an empty set, got %v", holes)
	}
}
