package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"gridfire/internal/config"
	"gridfire/internal/entity"
	"gridfire/internal/world"
)

const (
	// minimapCellPix is the drawn size of one map cell.
	minimapCellPix = 4
	// minimapMargin offsets the overlay from the screen corner.
	minimapMargin = 8
)

// minimapRenderer draws the top-down overlay: the wall layout tinted with the
// level palette, a fog-of-war mask over unvisited cells, and markers for the
// player, the exit portal, and enemies standing on visited cells. Only the
// static wall layout is cached; the fog mask is rebuilt from the supplied
// visited set on every call, so the caller may mutate or replace the set
// freely between frames.
type minimapRenderer struct {
	white *ebiten.Image

	// base is the wall layout, rebuilt when the map generation or level
	// changes.
	base     *ebiten.Image
	baseGen  uint64
	baseLvl  int
	baseInit bool
}

func newMinimapRenderer() *minimapRenderer {
	m := &minimapRenderer{white: ebiten.NewImage(1, 1)}
	m.white.Fill(color.White)
	return m
}

func (m *minimapRenderer) draw(screen *ebiten.Image, cfg *config.Config, w *world.Map, level int, player entity.Player, bots []BotView, visited map[[2]int]bool, portal *[2]int) {
	if !m.baseInit || m.baseGen != w.Generation() || m.baseLvl != level {
		m.base = buildMinimapBase(cfg, w, level)
		m.baseGen = w.Generation()
		m.baseLvl = level
		m.baseInit = true
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(minimapMargin, minimapMargin)
	screen.DrawImage(m.base, opts)

	if visited != nil {
		fo := &ebiten.DrawImageOptions{}
		fo.GeoM.Translate(minimapMargin, minimapMargin)
		screen.DrawImage(buildMinimapFog(w, visited), fo)
	}

	seen := func(cx, cy int) bool {
		return visited == nil || visited[[2]int{cx, cy}]
	}

	if portal != nil && seen(portal[0], portal[1]) {
		m.marker(screen, float64(portal[0])+0.5, float64(portal[1])+0.5, 3, color.RGBA{80, 220, 255, 255})
	}

	for _, b := range bots {
		if b == nil || !b.Renderable() {
			continue
		}
		if cfg.EnemyVisual(b.KindID()).Item {
			continue
		}
		bx, by := b.Position()
		if !seen(int(bx), int(by)) {
			continue
		}
		m.marker(screen, bx, by, 2, color.RGBA{255, 70, 70, 255})
	}

	m.marker(screen, player.X, player.Y, 2, color.RGBA{255, 255, 90, 255})
}

// marker draws a small square at a map position, in map units.
func (m *minimapRenderer) marker(screen *ebiten.Image, x, y float64, size int, c color.RGBA) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(size), float64(size))
	opts.GeoM.Translate(
		minimapMargin+x*minimapCellPix-float64(size)/2,
		minimapMargin+y*minimapCellPix-float64(size)/2)
	opts.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
	screen.DrawImage(m.white, opts)
}

// buildMinimapBase rasterizes the wall layout with the level palette.
func buildMinimapBase(cfg *config.Config, w *world.Map, level int) *ebiten.Image {
	img := ebiten.NewImage(w.Width()*minimapCellPix, w.Height()*minimapCellPix)
	img.Fill(color.RGBA{20, 20, 28, 200})

	cell := ebiten.NewImage(minimapCellPix, minimapCellPix)
	cell.Fill(color.White)

	for cy := 0; cy < w.Height(); cy++ {
		for cx := 0; cx < w.Width(); cx++ {
			code := w.WallTypeAt(cx, cy)
			if code == 0 {
				continue
			}
			c := cfg.WallColor(level, code)
			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Translate(float64(cx*minimapCellPix), float64(cy*minimapCellPix))
			opts.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
			img.DrawImage(cell, opts)
		}
	}
	return img
}

// fogHoles lists the in-bounds visited cells to punch out of the fog mask.
func fogHoles(w *world.Map, visited map[[2]int]bool) [][2]int {
	holes := make([][2]int, 0, len(visited))
	for cell, ok := range visited {
		if !ok {
			continue
		}
		if cell[0] < 0 || cell[1] < 0 || cell[0] >= w.Width() || cell[1] >= w.Height() {
			continue
		}
		holes = append(holes, cell)
	}
	return holes
}

// buildMinimapFog builds the opaque overlay with transparent holes over
// visited cells. Rebuilt per call: the visited set belongs to the caller and
// may have changed arbitrarily since the last frame.
func buildMinimapFog(w *world.Map, visited map[[2]int]bool) *ebiten.Image {
	img := ebiten.NewImage(w.Width()*minimapCellPix, w.Height()*minimapCellPix)
	img.Fill(color.RGBA{0, 0, 0, 235})

	hole := ebiten.NewImage(minimapCellPix, minimapCellPix)
	hole.Fill(color.White)

	for _, cell := range fogHoles(w, visited) {
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(float64(cell[0]*minimapCellPix), float64(cell[1]*minimapCellPix))
		opts.Blend = ebiten.BlendClear
		img.DrawImage(hole, opts)
	}
	return img
}
