package render

import (
	"image"
	"image/color"

	"gridfire/internal/config"
)

// texSize is the side length of every generated wall texture in pixels.
const texSize = 64

// textureBank holds the procedurally generated square wall textures for one
// level palette, pre-sliced into 1-pixel-wide vertical strips so the wall
// compositor can fetch a column without a per-frame crop.
type textureBank struct {
	textures map[int]*wallTexture
}

type wallTexture struct {
	img    *image.RGBA
	strips []*image.RGBA // strips[x] is the 1 x texSize column at x
}

// newTextureBank generates one texture per wall code in the level's palette.
func newTextureBank(cfg *config.Config, level int) *textureBank {
	tb := &textureBank{textures: make(map[int]*wallTexture)}
	for code := range cfg.Level(level).WallColors {
		tb.textures[code] = buildWallTexture(code, cfg.WallColor(level, code))
	}
	return tb
}

// strip returns the vertical texture strip at source column x for a wall
// code, or nil when the code has no texture (callers fall back to a flat
// fill).
func (tb *textureBank) strip(code, x int) *image.RGBA {
	tex, ok := tb.textures[code]
	if !ok {
		return nil
	}
	if x < 0 {
		x = 0
	}
	if x >= len(tex.strips) {
		x = len(tex.strips) - 1
	}
	return tex.strips[x]
}

// buildWallTexture renders the procedural pattern for a wall code and slices
// it. Patterns are deterministic so identical palettes always produce
// identical pixels.
func buildWallTexture(code int, base color.RGBA) *wallTexture {
	img := image.NewRGBA(image.Rect(0, 0, texSize, texSize))
	paint := texturePatterns[code%len(texturePatterns)]
	for y := 0; y < texSize; y++ {
		for x := 0; x < texSize; x++ {
			f := paint(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: scaleChannel(base.R, f),
				G: scaleChannel(base.G, f),
				B: scaleChannel(base.B, f),
				A: 255,
			})
		}
	}

	strips := make([]*image.RGBA, texSize)
	for x := 0; x < texSize; x++ {
		strip := image.NewRGBA(image.Rect(0, 0, 1, texSize))
		for y := 0; y < texSize; y++ {
			strip.SetRGBA(0, y, img.RGBAAt(x, y))
		}
		strips[x] = strip
	}
	return &wallTexture{img: img, strips: strips}
}

// scaleChannel multiplies a color channel by a factor, saturating at 255.
func scaleChannel(c uint8, f float64) uint8 {
	v := float64(c) * f
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v)
}

// texturePatterns maps (x, y) to a brightness factor. Index is wall code
// modulo the table length.
var texturePatterns = []func(x, y int) float64{
	patternBrick,
	patternSlab,
	patternFoliage,
	patternRune,
}

// patternBrick: mortar lines every 8 rows, with each course offset half a
// brick.
func patternBrick(x, y int) float64 {
	if y%8 == 0 {
		return 0.55
	}
	course := y / 8
	off := (course % 2) * 8
	if (x+off)%16 == 0 {
		return 0.55
	}
	return 1.0
}

// patternSlab: broad horizontal bands with a subtle vertical seam.
func patternSlab(x, y int) float64 {
	f := 0.85 + 0.15*float64((y/16)%2)
	if x%32 == 0 {
		f *= 0.7
	}
	return f
}

// patternFoliage: pseudo-random dark spots, hash-based so it needs no RNG.
func patternFoliage(x, y int) float64 {
	if (x*7+y*13)%11 < 3 {
		return 0.6
	}
	if (x*3+y*5)%7 == 0 {
		return 0.8
	}
	return 1.0
}

// patternRune: diagonal grooves with a bright inlay every fourth groove.
func patternRune(x, y int) float64 {
	d := (x + y) % 16
	switch {
	case d == 0:
		return 1.25
	case d < 3:
		return 0.65
	default:
		return 0.95
	}
}
