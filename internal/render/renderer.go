// Package render implements the shared first-person raycasting renderer:
// per-column DDA ray marching, a z-buffered wall and sprite compositing
// pipeline into an off-screen view buffer, and the background and minimap
// overlays around it.
package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	xdraw "golang.org/x/image/draw"

	"gridfire/internal/config"
	"gridfire/internal/entity"
	"gridfire/internal/rendercache"
	"gridfire/internal/world"
)

// BotView is the read-only slice of a bot the renderer needs. Gameplay code
// owns the bot; the renderer can only observe it.
type BotView interface {
	Position() (x, y float64)
	KindID() string
	Renderable() bool
	WalkPhase() int
	ShootPhase() int
	DeathPhase() int
	IsFrozen() bool
}

// ProjectileView is the read-only slice of a projectile the renderer needs.
type ProjectileView interface {
	Position() (x, y float64)
	Height() float64
	IsAlive() bool
	SizeScale() float64
	ColorRGB() [3]int
	Weapon() string
}

// stripKey identifies one pre-scaled vertical texture strip.
type stripKey struct {
	Code   int // wall-type code selects the texture
	X      int // source column in the texture
	Height int // target pixel height
}

// Renderer draws complete frames for one map/config session. All mutable
// state (view buffer, z-buffer, caches) is owned exclusively by the renderer
// and touched only inside its own frame call.
type Renderer struct {
	cfg   *config.Config
	world *world.Map
	level int

	scale        int
	viewW, viewH int
	view         *ebiten.Image
	zbuffer      []float64
	caster       *columnCaster

	white    *ebiten.Image
	textures *textureBank
	strips   *rendercache.Cache[stripKey, *ebiten.Image]
	bitmaps  *rendercache.Cache[botSignature, *image.RGBA]
	scaled   *rendercache.Cache[scaledKey, *ebiten.Image]

	background *backgroundRenderer
	minimap    *minimapRenderer
}

// New creates a renderer for the given configuration and map.
func New(cfg *config.Config, m *world.Map) *Renderer {
	r := &Renderer{
		cfg:     cfg,
		world:   m,
		level:   0,
		white:   ebiten.NewImage(1, 1),
		strips:  rendercache.New[stripKey, *ebiten.Image](rendercache.DefaultMaxSize, rendercache.DefaultTargetSize),
		bitmaps: rendercache.New[botSignature, *image.RGBA](256, 192),
		scaled:  rendercache.New[scaledKey, *ebiten.Image](rendercache.DefaultMaxSize, rendercache.DefaultTargetSize),
	}
	r.white.Fill(color.White)
	r.textures = newTextureBank(cfg, r.level)
	r.background = newBackgroundRenderer(cfg)
	r.minimap = newMinimapRenderer()
	r.SetRenderScale(cfg.Display.RenderScale)
	return r
}

// SetRenderScale switches the off-screen resolution to screen/n. The view
// buffer and z-buffer are rebuilt; content caches survive because strips and
// bitmaps are keyed by target size, not by render scale.
func (r *Renderer) SetRenderScale(n int) {
	if n < 1 {
		n = 1
	}
	r.scale = n
	r.viewW = r.cfg.NumColumns(n)
	r.viewH = r.cfg.Display.ScreenHeight / n
	if r.viewH < 1 {
		r.viewH = 1
	}
	r.view = ebiten.NewImage(r.viewW, r.viewH)
	r.zbuffer = make([]float64, r.viewW)
	r.caster = newColumnCaster(r.viewW)
}

// RenderScale returns the current downsample factor.
func (r *Renderer) RenderScale() int { return r.scale }

// NumColumns returns the current off-screen column count.
func (r *Renderer) NumColumns() int { return r.viewW }

// CastSingleRay exposes the non-batched DDA for gameplay queries (hitscan
// weapons, line of sight). It shares the algorithm with the per-frame batch
// and returns the same numbers for the same inputs.
func (r *Renderer) CastSingleRay(x, y, angle float64) Hit {
	return CastRay(r.world, x, y, angle, r.cfg.Camera.MaxDepth)
}

// switchLevel rebuilds the palette-dependent state when the caller asks for
// a different level index.
func (r *Renderer) switchLevel(level int) {
	if level == r.level {
		return
	}
	r.level = level
	r.textures = newTextureBank(r.cfg, level)
	r.strips.Purge()
	r.background.setTheme(levelThemeIndex(r.cfg, level))
}

// levelThemeIndex maps a level index onto the configured theme table.
func levelThemeIndex(cfg *config.Config, level int) int {
	if level < 0 {
		return 0
	}
	return level % len(cfg.Levels)
}

// RenderFrame draws one complete frame: ray march, z-buffer, walls and
// sprites into the view buffer, background and the upscaled view buffer onto
// the screen. The minimap overlay is a separate call so games can place it
// above their own HUD.
func (r *Renderer) RenderFrame(screen *ebiten.Image, player entity.Player, bots []BotView, projectiles []ProjectileView, level, verticalOffset int) {
	r.switchLevel(level)

	fov := r.cfg.Camera.FieldOfView
	if player.Zoomed {
		fov *= r.cfg.Camera.ZoomFactor
	}

	pitch := player.Pitch / r.scale
	vert := verticalOffset / r.scale

	hits := r.caster.cast(r.world, player.X, player.Y, player.Angle, fov, r.cfg.Camera.MaxDepth)

	r.view.Clear()
	r.drawWalls(hits, pitch, vert)
	r.drawBots(player, bots, fov, pitch, vert)
	r.drawProjectiles(player, projectiles, fov, pitch, vert)

	r.background.draw(screen, player.Angle, player.Pitch, verticalOffset)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(r.scale), float64(r.scale))
	if r.scale > 1 {
		opts.Filter = ebiten.FilterLinear
	} else {
		opts.Filter = ebiten.FilterNearest
	}
	screen.DrawImage(r.view, opts)
}

// RenderMinimap draws the top-down overlay. A nil visited set disables
// fog-of-war.
func (r *Renderer) RenderMinimap(screen *ebiten.Image, player entity.Player, bots []BotView, visited map[[2]int]bool, portal *[2]int) {
	r.minimap.draw(screen, r.cfg, r.world, r.level, player, bots, visited, portal)
}

// scaleRGBA resizes src to w x h with nearest-neighbor sampling. Returns nil
// for degenerate targets so callers can skip the draw.
func scaleRGBA(src image.Image, w, h int) *image.RGBA {
	if src == nil || w <= 0 || h <= 0 {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
