package render

import (
	"image"
	"image/color"
	"math"

	"gridfire/internal/config"
	"gridfire/internal/entity"
	"gridfire/internal/mathutil"
)

const (
	// spriteBaseSize is the logical silhouette size of a base bitmap.
	spriteBaseSize = 64
	// spritePad surrounds the silhouette so glow effects can bleed outside it.
	spritePad = 8
	// spriteBitmapSize is the full padded bitmap side length.
	spriteBitmapSize = spriteBaseSize + 2*spritePad

	// shadeLevels quantizes the pre-applied distance brightness.
	shadeLevels = 8
	// deathBuckets quantizes the disintegration progress.
	deathBuckets = 5
)

// botSignature keys the sprite bitmap cache. It is a pure function of the
// visual-state fields that affect pixels: two bots with equal signatures are
// pixel-identical regardless of where they stand.
type botSignature struct {
	Kind        string
	Style       entity.VisualStyle
	WalkBucket  int
	ShootBucket int
	DeathBucket int
	SizeQ       int
	ShadeQ      int
	Frozen      bool
}

// scaledKey keys the scaled sprite cache: a base signature plus the bucketed
// target size.
type scaledKey struct {
	Sig  botSignature
	W, H int
}

// spriteWidthBucket is the pixel grid target widths snap to before scaling.
const spriteWidthBucket = 8

// bucketWidth snaps a raw target width to the nearest bucket so billboards
// of similar size share one scaled bitmap.
func bucketWidth(w int) int {
	b := ((w + spriteWidthBucket/2) / spriteWidthBucket) * spriteWidthBucket
	if b < spriteWidthBucket {
		b = spriteWidthBucket
	}
	return b
}

// buildBotSignature derives the cache signature for a bot at a distance.
// shadeFloor is the configured minimum brightness shared with the walls.
func buildBotSignature(b BotView, visual config.EnemyVisualConfig, dist, shadeFloor float64) botSignature {
	return botSignature{
		Kind:        b.KindID(),
		Style:       entity.ParseVisualStyle(visual.Style),
		WalkBucket:  (b.WalkPhase() / 8) % 4,
		ShootBucket: (b.ShootPhase() / 6) % 2,
		DeathBucket: mathutil.IntMin(b.DeathPhase()/6, deathBuckets),
		SizeQ:       int(visual.Scale * 16),
		ShadeQ:      int(wallShade(dist, shadeFloor)*shadeLevels + 0.5),
		Frozen:      b.IsFrozen(),
	}
}

// frostTint is mixed into frozen sprites.
var frostTint = color.RGBA{150, 200, 255, 255}

// renderBotBitmap paints the padded base bitmap for a signature: silhouette
// by style, then the pre-applied brightness, status tint, and death
// disintegration. The result is immutable and shared via the cache.
func renderBotBitmap(sig botSignature, visual config.EnemyVisualConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, spriteBitmapSize, spriteBitmapSize))
	base := color.RGBA{uint8(visual.Color[0]), uint8(visual.Color[1]), uint8(visual.Color[2]), 255}

	stylePainters[sig.Style](img, base, sig)

	shade := float64(sig.ShadeQ) / shadeLevels
	if shade > 1 {
		shade = 1
	}
	applyShade(img, shade)
	if sig.Frozen {
		applyTint(img, frostTint, 0.45)
	}
	if sig.DeathBucket > 0 {
		applyDisintegration(img, sig.DeathBucket)
	}
	return img
}

// stylePainters is the closed dispatch table over visual styles, filled once
// at startup. A new style is a new enum variant plus one entry here.
var stylePainters [entity.NumVisualStyles]func(*image.RGBA, color.RGBA, botSignature)

func init() {
	stylePainters[entity.StyleOrb] = paintOrb
	stylePainters[entity.StyleBrute] = paintBrute
	stylePainters[entity.StyleWisp] = paintWisp
	stylePainters[entity.StyleSpiker] = paintSpiker
}

func paintOrb(img *image.RGBA, base color.RGBA, sig botSignature) {
	c := spriteBitmapSize / 2
	// Slight pulse with the walk cycle.
	radius := spriteBaseSize/2 - 2 + sig.WalkBucket
	glow := color.RGBA{base.R, base.G, base.B, 70}
	fillCircle(img, c, c, radius+spritePad/2, glow)
	fillCircle(img, c, c, radius, base)
	highlight := color.RGBA{lighten(base.R), lighten(base.G), lighten(base.B), 255}
	fillCircle(img, c-radius/3, c-radius/3, radius/4, highlight)
}

func paintBrute(img *image.RGBA, base color.RGBA, sig botSignature) {
	c := spriteBitmapSize / 2
	bodyW := spriteBaseSize * 3 / 5
	bodyH := spriteBaseSize * 2 / 3
	bodyTop := spritePad + spriteBaseSize - bodyH
	fillRect(img, c-bodyW/2, bodyTop, bodyW, bodyH, base)

	headR := spriteBaseSize / 6
	fillCircle(img, c, bodyTop-headR/2, headR, base)

	// Arms swing with the walk cycle; a shoot flash brightens the leading arm.
	armLen := spriteBaseSize / 3
	swing := (sig.WalkBucket - 1) * 3
	armColor := base
	if sig.ShootBucket == 1 {
		armColor = color.RGBA{lighten(base.R), lighten(base.G), lighten(base.B), 255}
	}
	fillRect(img, c-bodyW/2-5, bodyTop+10+swing, 5, armLen, armColor)
	fillRect(img, c+bodyW/2, bodyTop+10-swing, 5, armLen, base)
}

func paintWisp(img *image.RGBA, base color.RGBA, sig botSignature) {
	c := spriteBitmapSize / 2
	drift := sig.WalkBucket - 1
	for i := 3; i >= 1; i-- {
		alpha := uint8(60 + 50*(3-i))
		radius := spriteBaseSize/2 - i*8
		fillCircle(img, c+drift*i, c-drift*i, radius, color.RGBA{base.R, base.G, base.B, alpha})
	}
}

func paintSpiker(img *image.RGBA, base color.RGBA, sig botSignature) {
	c := spriteBitmapSize / 2
	radius := spriteBaseSize / 3
	// Spikes extend while shooting.
	reach := radius + 8 + sig.ShootBucket*6
	dark := color.RGBA{base.R / 2, base.G / 2, base.B / 2, 255}
	for i := 0; i < 8; i++ {
		angle := float64(i) * math.Pi / 4
		dx, dy := math.Cos(angle), math.Sin(angle)
		for t := 0; t <= reach; t++ {
			x := c + int(dx*float64(t))
			y := c + int(dy*float64(t))
			fillRect(img, x-1, y-1, 3, 3, dark)
		}
	}
	fillCircle(img, c, c, radius, base)
}

func lighten(c uint8) uint8 {
	v := int(c) + 80
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// fillCircle draws a filled circle, clipped to the image bounds.
func fillCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	if radius <= 0 {
		return
	}
	b := img.Bounds()
	for y := cy - radius; y <= cy+radius; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := cx - radius; x <= cx+radius; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// fillRect draws a filled rectangle, clipped to the image bounds.
func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	b := img.Bounds()
	x0 := mathutil.IntMax(x, b.Min.X)
	y0 := mathutil.IntMax(y, b.Min.Y)
	x1 := mathutil.IntMin(x+w, b.Max.X)
	y1 := mathutil.IntMin(y+h, b.Max.Y)
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			img.SetRGBA(xx, yy, c)
		}
	}
}

// applyShade multiplies the RGB channels of every pixel by f.
func applyShade(img *image.RGBA, f float64) {
	p := img.Pix
	for i := 0; i < len(p); i += 4 {
		p[i] = uint8(float64(p[i]) * f)
		p[i+1] = uint8(float64(p[i+1]) * f)
		p[i+2] = uint8(float64(p[i+2]) * f)
	}
}

// applyTint mixes the tint color into every non-transparent pixel.
func applyTint(img *image.RGBA, tint color.RGBA, amt float64) {
	p := img.Pix
	for i := 0; i < len(p); i += 4 {
		if p[i+3] == 0 {
			continue
		}
		p[i] = uint8(float64(p[i])*(1-amt) + float64(tint.R)*amt)
		p[i+1] = uint8(float64(p[i+1])*(1-amt) + float64(tint.G)*amt)
		p[i+2] = uint8(float64(p[i+2])*(1-amt) + float64(tint.B)*amt)
	}
}

// applyDisintegration dissolves the bitmap as the death effect progresses:
// hashed pixels drop out and overall alpha fades with the bucket.
func applyDisintegration(img *image.RGBA, bucket int) {
	if bucket > deathBuckets {
		bucket = deathBuckets
	}
	fade := float64(deathBuckets+1-bucket) / float64(deathBuckets+1)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			if img.Pix[i+3] == 0 {
				continue
			}
			if (x*31+y*17)%(deathBuckets+2) < bucket {
				img.Pix[i] = 0
				img.Pix[i+1] = 0
				img.Pix[i+2] = 0
				img.Pix[i+3] = 0
				continue
			}
			img.Pix[i] = uint8(float64(img.Pix[i]) * fade)
			img.Pix[i+1] = uint8(float64(img.Pix[i+1]) * fade)
			img.Pix[i+2] = uint8(float64(img.Pix[i+2]) * fade)
			img.Pix[i+3] = uint8(float64(img.Pix[i+3]) * fade)
		}
	}
}
