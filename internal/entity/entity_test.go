package entity

import "testing"

func TestBot_Renderable(t *testing.T) {
	cases := []struct {
		name string
		bot  Bot
		want bool
	}{
		{"alive", Bot{Alive: true}, true},
		{"dead no effect", Bot{Alive: false}, false},
		{"dead disintegrating", Bot{Alive: false, DisintegrateTime: 10}, true},
		{"removed", Bot{Alive: true, Removed: true}, false},
		{"removed while disintegrating", Bot{DisintegrateTime: 10, Removed: true}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.bot.Renderable(); got != c.want {
				t.Errorf("Expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestBot_DeathPhaseZeroWhileAlive(t *testing.T) {
	b := Bot{Alive: true, DeathTimer: 30}
	if b.DeathPhase() != 0 {
		t.Errorf("Expected death phase 0 while alive, got %d", b.DeathPhase())
	}
	b.Alive = false
	if b.DeathPhase() != 30 {
		t.Errorf("Expected death phase 30 after death, got %d", b.DeathPhase())
	}
}

func TestParseVisualStyle(t *testing.T) {
	if ParseVisualStyle("brute") != StyleBrute {
		t.Error("Expected brute tag to parse")
	}
	if ParseVisualStyle("no-such-style") != StyleOrb {
		t.Error("Expected unknown tag to fall back to orb")
	}
	if ParseVisualStyle("") != StyleOrb {
		t.Error("Expected empty tag to fall back to orb")
	}
}

func TestVisualStyle_RoundTrip(t *testing.T) {
	for s := VisualStyle(0); s < NumVisualStyles; s++ {
		if ParseVisualStyle(s.String()) != s {
			t.Errorf("style %d: tag %q does not round-trip", s, s.String())
		}
	}
}
