package render

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"gridfire/internal/config"
)

const (
	// starCount is the number of fixed background stars.
	starCount = 160
	// starSeed keeps the starfield identical between runs and levels.
	starSeed = 42
	// starParallax scales how fast stars slide as the player turns. One full
	// turn scrolls the field exactly once around.
	starParallax = 1.0
	// moonRadius is the moon disc radius in screen pixels.
	moonRadius = 26
)

// starMaxY bounds star placement to the sky half of the screen. The star row
// and the horizon shift together with pitch, so anything at or below 0.5
// could never rise above the horizon.
const starMaxY = 0.5

type star struct {
	x, y       float64 // x in [0, 1) around the full turn, y in [0, starMaxY)
	size       int
	brightness uint8
}

// backgroundRenderer paints everything behind the walls: a vertical sky and
// floor gradient that slides with pitch, and a starfield plus moon that slide
// with heading. It draws at full screen resolution, independent of the
// render scale.
type backgroundRenderer struct {
	cfg      *config.Config
	themeIdx int

	screenW, screenH int

	// gradient is screenW x 2*screenH: sky rows in [0, H), floor in [H, 2H).
	// The horizon sits at row H and is translated under the current pitch.
	gradient *ebiten.Image
	moon     *ebiten.Image
	stars    []star
	white    *ebiten.Image
}

func newBackgroundRenderer(cfg *config.Config) *backgroundRenderer {
	b := &backgroundRenderer{
		cfg:      cfg,
		themeIdx: -1,
		screenW:  cfg.Display.ScreenWidth,
		screenH:  cfg.Display.ScreenHeight,
		white:    ebiten.NewImage(1, 1),
	}
	b.white.Fill(color.White)
	b.stars = generateStars(starCount)
	b.moon = buildMoon()
	b.setTheme(0)
	return b
}

// setTheme rebuilds the gradient for a theme index. No-op when unchanged.
func (b *backgroundRenderer) setTheme(idx int) {
	if idx == b.themeIdx {
		return
	}
	b.themeIdx = idx
	b.gradient = buildGradient(b.cfg.Level(idx).Theme, b.screenW, b.screenH)
}

// generateStars places the fixed starfield. The seed is constant so the sky
// looks the same every session.
func generateStars(n int) []star {
	rng := rand.New(rand.NewSource(starSeed))
	stars := make([]star, n)
	for i := range stars {
		stars[i] = star{
			x:          rng.Float64(),
			y:          rng.Float64() * starMaxY,
			size:       1 + rng.Intn(2),
			brightness: uint8(120 + rng.Intn(136)),
		}
	}
	return stars
}

// buildGradient renders the stacked sky and floor gradients.
func buildGradient(theme config.ThemeConfig, w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, 2*h)
	row := ebiten.NewImage(w, 1)
	row.Fill(color.White)

	for y := 0; y < 2*h; y++ {
		var c color.RGBA
		if y < h {
			c = lerpRGB(theme.SkyTop, theme.SkyBottom, float64(y)/float64(h))
		} else {
			c = lerpRGB(theme.FloorTop, theme.FloorBottom, float64(y-h)/float64(h))
		}
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(0, float64(y))
		opts.ColorScale.Scale(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
		img.DrawImage(row, opts)
	}
	return img
}

func lerpRGB(a, b [3]int, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a[0]) + (float64(b[0])-float64(a[0]))*t),
		G: uint8(float64(a[1]) + (float64(b[1])-float64(a[1]))*t),
		B: uint8(float64(a[2]) + (float64(b[2])-float64(a[2]))*t),
		A: 255,
	}
}

func buildMoon() *ebiten.Image {
	size := moonRadius * 2
	img := ebiten.NewImage(size, size)
	disc := ebiten.NewImage(1, 1)
	disc.Fill(color.White)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := x - moonRadius
			dy := y - moonRadius
			if dx*dx+dy*dy > moonRadius*moonRadius {
				continue
			}
			// Crater shadow on the lower left.
			v := float32(0.92)
			if (dx+8)*(dx+8)+(dy+6)*(dy+6) < 49 {
				v = 0.75
			}
			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Translate(float64(x), float64(y))
			opts.ColorScale.Scale(v, v, float32(0.86)*v, 1)
			img.DrawImage(disc, opts)
		}
	}
	return img
}

// draw paints the gradient, stars, and moon onto the screen. The horizon
// lands at screenH/2 + pitch + vertOffset; stars and the moon scroll with
// heading and are clipped below the horizon.
func (b *backgroundRenderer) draw(screen *ebiten.Image, heading float64, pitch, vertOffset int) {
	horizon := b.screenH/2 + pitch + vertOffset

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(0, float64(horizon-b.screenH))
	screen.DrawImage(b.gradient, opts)

	// Fill any gap the translated gradient leaves at the extremes of pitch.
	// The gradient spans [horizon-screenH, horizon+screenH) on screen.
	if horizon-b.screenH > 0 {
		b.fillBand(screen, 0, horizon-b.screenH, b.cfg.Level(b.themeIdx).Theme.SkyTop)
	}
	if horizon < 0 {
		b.fillBand(screen, horizon+b.screenH, b.screenH, b.cfg.Level(b.themeIdx).Theme.FloorBottom)
	}

	// Heading wraps once per full turn.
	scroll := heading / (2 * math.Pi) * float64(b.screenW) * starParallax

	for _, s := range b.stars {
		sx := int(math.Mod(s.x*float64(b.screenW)-scroll, float64(b.screenW)))
		if sx < 0 {
			sx += b.screenW
		}
		sy := int(s.y*float64(b.screenH)) + pitch + vertOffset
		visible := horizonClip(sy, s.size, horizon)
		if sy < 0 || visible <= 0 {
			continue
		}
		so := &ebiten.DrawImageOptions{}
		so.GeoM.Scale(float64(s.size), float64(visible))
		so.GeoM.Translate(float64(sx), float64(sy))
		v := float32(s.brightness) / 255
		so.ColorScale.Scale(v, v, v, 1)
		screen.DrawImage(b.white, so)
	}

	mx := int(math.Mod(0.7*float64(b.screenW)-scroll, float64(b.screenW)))
	if mx < 0 {
		mx += b.screenW
	}
	my := b.screenH/8 + pitch + vertOffset
	visible := horizonClip(my, moonRadius*2, horizon)
	if my+moonRadius*2 > 0 && visible > 0 {
		sub, ok := b.moon.SubImage(image.Rect(0, 0, moonRadius*2, visible)).(*ebiten.Image)
		if ok {
			mo := &ebiten.DrawImageOptions{}
			mo.GeoM.Translate(float64(mx-moonRadius), float64(my))
			screen.DrawImage(sub, mo)
		}
	}
}

// horizonClip returns how many rows of a sprite starting at top stay above
// the horizon.
func horizonClip(top, height, horizon int) int {
	if top >= horizon {
		return 0
	}
	if top+height <= horizon {
		return height
	}
	return horizon - top
}

func (b *backgroundRenderer) fillBand(screen *ebiten.Image, y0, y1 int, rgb [3]int) {
	if y1 <= y0 {
		return
	}
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(b.screenW), float64(y1-y0))
	opts.GeoM.Translate(0, float64(y0))
	opts.ColorScale.Scale(float32(rgb[0])/255, float32(rgb[1])/255, float32(rgb[2])/255, 1)
	screen.DrawImage(b.white, opts)
}
