package entity

// Player is the camera-bearing viewpoint. The renderer receives it by value
// each frame, so gameplay code keeps exclusive write access.
type Player struct {
	X, Y   float64 // position in grid cells
	Angle  float64 // heading in radians
	Pitch  int     // vertical look offset in screen pixels
	Zoomed bool
	Moving bool
}

// Bot is a gameplay-owned enemy or pickup. The renderer only ever reads it
// through the view methods below.
type Bot struct {
	X, Y             float64
	Kind             string
	Alive            bool
	Removed          bool
	DeathTimer       int // frames since death, 0 while alive
	DisintegrateTime int // frames of disintegration effect remaining
	WalkFrame        int
	ShootFrame       int
	Frozen           bool
}

// Position returns the bot's world position.
func (b *Bot) Position() (x, y float64) { return b.X, b.Y }

// KindID returns the enemy-type id used to look up visual metadata.
func (b *Bot) KindID() string { return b.Kind }

// Renderable reports whether the bot should appear at all this frame.
// Dead bots remain renderable while their disintegration plays out.
func (b *Bot) Renderable() bool {
	if b.Removed {
		return false
	}
	return b.Alive || b.DisintegrateTime > 0
}

// WalkPhase returns the walk animation counter.
func (b *Bot) WalkPhase() int { return b.WalkFrame }

// ShootPhase returns the shoot animation counter.
func (b *Bot) ShootPhase() int { return b.ShootFrame }

// DeathPhase returns the frames elapsed since death, 0 while alive.
func (b *Bot) DeathPhase() int {
	if b.Alive {
		return 0
	}
	return b.DeathTimer
}

// IsFrozen reports the frozen status effect.
func (b *Bot) IsFrozen() bool { return b.Frozen }

// Projectile is a gameplay-owned shot. Damage is carried for the gameplay
// layer; the renderer ignores it.
type Projectile struct {
	X, Y, Z    float64 // Z is height above the floor in cell units
	Alive      bool
	Size       float64 // world-space size scale
	Color      [3]int
	WeaponKind string
	Damage     int
}

// Position returns the projectile's world position.
func (p *Projectile) Position() (x, y float64) { return p.X, p.Y }

// Height returns the height above the floor in cell units.
func (p *Projectile) Height() float64 { return p.Z }

// IsAlive reports whether the projectile is live.
func (p *Projectile) IsAlive() bool { return p.Alive }

// SizeScale returns the world-space size multiplier.
func (p *Projectile) SizeScale() float64 { return p.Size }

// ColorRGB returns the projectile's base color.
func (p *Projectile) ColorRGB() [3]int { return p.Color }

// Weapon returns the weapon-type tag that selects the accent style.
func (p *Projectile) Weapon() string { return p.WeaponKind }
