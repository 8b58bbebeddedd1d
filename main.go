package main

import (
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gridfire/internal/config"
	"gridfire/internal/entity"
	"gridfire/internal/render"
	"gridfire/internal/world"
)

var demoMap = []string{
	"111111111111111111111111",
	"1......................1",
	"1..22..................1",
	"1..22......3...........1",
	"1..........3...........1",
	"1..........3.....44....1",
	"1................44....1",
	"1......................1",
	"1...2222...............1",
	"1......2.......3333....1",
	"1......2...............1",
	"1......................1",
	"1..........44..........1",
	"1..........44..........1",
	"1......................1",
	"111111111111111111111111",
}

const (
	moveSpeed = 0.06
	turnSpeed = 0.045
	pitchStep = 6
	maxPitch  = 200
)

// demoShot carries a velocity alongside the renderable projectile state.
type demoShot struct {
	entity.Projectile
	vx, vy float64
}

type demoGame struct {
	cfg      *config.Config
	world    *world.Map
	renderer *render.Renderer

	player      entity.Player
	bots        []*entity.Bot
	projectiles []*demoShot
	visited     map[[2]int]bool
	portal      [2]int
	level       int
	frame       int
}

func newDemoGame(cfg *config.Config) *demoGame {
	m, err := world.Parse(demoMap)
	if err != nil {
		log.Fatal(err)
	}

	g := &demoGame{
		cfg:      cfg,
		world:    m,
		renderer: render.New(cfg, m),
		player:   entity.Player{X: 1.5, Y: 1.5, Angle: 0.7},
		visited:  make(map[[2]int]bool),
		portal:   [2]int{22, 14},
	}
	g.bots = []*entity.Bot{
		{X: 6.5, Y: 6.5, Kind: "grunt", Alive: true},
		{X: 12.5, Y: 3.5, Kind: "floater", Alive: true},
		{X: 18.5, Y: 10.5, Kind: "wraith", Alive: true},
		{X: 9.5, Y: 12.5, Kind: "urchin", Alive: true, Frozen: true},
		{X: 20.5, Y: 2.5, Kind: "medkit", Alive: true},
	}
	return g
}

func (g *demoGame) Update() error {
	g.frame++

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.player.Angle -= turnSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.player.Angle += turnSpeed
	}

	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dx += math.Cos(g.player.Angle) * moveSpeed
		dy += math.Sin(g.player.Angle) * moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dx -= math.Cos(g.player.Angle) * moveSpeed
		dy -= math.Sin(g.player.Angle) * moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		dx += math.Cos(g.player.Angle-math.Pi/2) * moveSpeed
		dy += math.Sin(g.player.Angle-math.Pi/2) * moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += math.Cos(g.player.Angle+math.Pi/2) * moveSpeed
		dy += math.Sin(g.player.Angle+math.Pi/2) * moveSpeed
	}
	// Per-axis collision so the player slides along walls.
	if !g.world.IsWall(g.player.X+dx, g.player.Y) {
		g.player.X += dx
	}
	if !g.world.IsWall(g.player.X, g.player.Y+dy) {
		g.player.Y += dy
	}
	g.player.Moving = dx != 0 || dy != 0

	if ebiten.IsKeyPressed(ebiten.KeyPageUp) {
		g.player.Pitch += pitchStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyPageDown) {
		g.player.Pitch -= pitchStep
	}
	if g.player.Pitch > maxPitch {
		g.player.Pitch = maxPitch
	}
	if g.player.Pitch < -maxPitch {
		g.player.Pitch = -maxPitch
	}
	g.player.Zoomed = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)

	for scale := 1; scale <= 4; scale++ {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1 + ebiten.Key(scale-1)) {
			g.renderer.SetRenderScale(scale)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.level = (g.level + 1) % len(g.cfg.Levels)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.fire()
	}

	g.visited[[2]int{int(g.player.X), int(g.player.Y)}] = true

	g.updateBots()
	g.updateProjectiles()
	return nil
}

func (g *demoGame) fire() {
	g.projectiles = append(g.projectiles, &demoShot{
		Projectile: entity.Projectile{
			X:          g.player.X + math.Cos(g.player.Angle)*0.4,
			Y:          g.player.Y + math.Sin(g.player.Angle)*0.4,
			Z:          0.1,
			Alive:      true,
			Size:       0.25,
			Color:      [3]int{120, 200, 255},
			WeaponKind: "bolt",
			Damage:     10,
		},
		vx: math.Cos(g.player.Angle) * 0.2,
		vy: math.Sin(g.player.Angle) * 0.2,
	})
}

func (g *demoGame) updateBots() {
	for _, b := range g.bots {
		if !b.Alive {
			if b.DisintegrateTime > 0 {
				b.DeathTimer++
				b.DisintegrateTime--
				if b.DisintegrateTime == 0 {
					b.Removed = true
				}
			}
			continue
		}
		b.WalkFrame++
		if g.frame%180 < 20 {
			b.ShootFrame++
		} else {
			b.ShootFrame = 0
		}
	}
}

func (g *demoGame) updateProjectiles() {
	alive := g.projectiles[:0]
	for _, p := range g.projectiles {
		if !p.Alive {
			continue
		}
		p.X += p.vx
		p.Y += p.vy
		if g.world.IsWall(p.X, p.Y) {
			p.Alive = false
			continue
		}
		for _, b := range g.bots {
			if !b.Alive {
				continue
			}
			bx, by := b.Position()
			if math.Hypot(p.X-bx, p.Y-by) < 0.4 {
				p.Alive = false
				b.Alive = false
				b.DisintegrateTime = 36
				break
			}
		}
		if p.Alive {
			alive = append(alive, p)
		}
	}
	g.projectiles = alive
}

func (g *demoGame) Draw(screen *ebiten.Image) {
	botViews := make([]render.BotView, len(g.bots))
	for i, b := range g.bots {
		botViews[i] = b
	}
	shotViews := make([]render.ProjectileView, len(g.projectiles))
	for i, p := range g.projectiles {
		shotViews[i] = p
	}

	bob := 0
	if g.player.Moving {
		bob = int(4 * math.Sin(float64(g.frame)*0.25))
	}
	g.renderer.RenderFrame(screen, g.player, botViews, shotViews, g.level, bob)
	g.renderer.RenderMinimap(screen, g.player, botViews, g.visited, &g.portal)
}

func (g *demoGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Display.ScreenWidth, g.cfg.Display.ScreenHeight
}

func main() {
	cfg := config.MustLoad("config.yaml")

	ebiten.SetWindowSize(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)

	if err := ebiten.RunGame(newDemoGame(cfg)); err != nil {
		log.Fatal(err)
	}
}
