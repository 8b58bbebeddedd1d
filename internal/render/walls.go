package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"gridfire/internal/mathutil"
)

const (
	// shadeFalloff is the distance in cells at which attenuation bottoms out.
	shadeFalloff = 50.0
	// maxWallHeightFactor caps projected wall height at a multiple of the
	// view height, so point-blank walls don't explode into absurd strips.
	maxWallHeightFactor = 4
)

// wallShade returns the distance attenuation factor for a wall column,
// never darker than the configured brightness floor.
func wallShade(dist, floor float64) float64 {
	s := 1 - dist/shadeFalloff
	if s < floor {
		return floor
	}
	return s
}

// fogFactor returns the 0..1 fog blend weight for a distance: zero up to
// maxDepth*fogStart, saturating to one at maxDepth.
func fogFactor(dist, maxDepth, fogStart float64) float64 {
	denom := maxDepth * (1 - fogStart)
	if denom <= 0 {
		return 1
	}
	return mathutil.Clamp01((dist - maxDepth*fogStart) / denom)
}

// wallColumnMetrics converts a corrected distance into strip height and top
// position inside the view buffer.
func wallColumnMetrics(viewH int, dist float64, pitch, vertOffset int) (height, top int) {
	if dist < 0.01 {
		dist = 0.01
	}
	height = int(float64(viewH) / dist)
	if height > viewH*maxWallHeightFactor {
		height = viewH * maxWallHeightFactor
	}
	if height < 1 {
		height = 1
	}
	top = (viewH-height)/2 + pitch + vertOffset
	return height, top
}

// drawWalls writes the z-buffer and paints one vertical strip per column
// into the view buffer. Columns with no hit within max depth stay untouched
// so the background shows through.
func (r *Renderer) drawWalls(hits []Hit, pitch, vertOffset int) {
	maxDepth := r.cfg.Camera.MaxDepth
	fogStart := r.cfg.Camera.FogStart

	for col, hit := range hits {
		dist := correctedDistance(hit.Distance, r.caster.deltas[col])
		r.zbuffer[col] = dist

		if hit.WallType == 0 {
			continue
		}
		r.drawWallColumn(col, dist, hit, maxDepth, fogStart, pitch, vertOffset)
	}
}

// drawWallColumn paints a single textured (or flat-fallback) strip with
// shading and fog. A failed strip fetch degrades to the flat fill; nothing
// here can abort the frame.
func (r *Renderer) drawWallColumn(col int, dist float64, hit Hit, maxDepth, fogStart float64, pitch, vertOffset int) {
	height, top := wallColumnMetrics(r.viewH, dist, pitch, vertOffset)
	shade := wallShade(dist, r.cfg.Graphics.BrightnessMin)
	fog := fogFactor(dist, maxDepth, fogStart)

	drew := false
	if r.cfg.Graphics.Textured {
		texX := int(hit.TexCoord * texSize)
		texX = mathutil.IntClamp(texX, 0, texSize-1)
		key := stripKey{Code: hit.WallType, X: texX, Height: height}

		img, ok := r.strips.GetOrCreate(key, func() (*ebiten.Image, bool) {
			src := r.textures.strip(hit.WallType, texX)
			scaled := scaleRGBA(src, 1, height)
			if scaled == nil {
				return nil, false
			}
			return ebiten.NewImageFromImage(scaled), true
		})
		if ok {
			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Translate(float64(col), float64(top))
			opts.ColorScale.Scale(float32(shade), float32(shade), float32(shade), 1)
			r.view.DrawImage(img, opts)
			drew = true
		}
	}

	if !drew {
		base := r.cfg.WallColor(r.level, hit.WallType)
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(1, float64(height))
		opts.GeoM.Translate(float64(col), float64(top))
		opts.ColorScale.Scale(
			float32(base.R)/255*float32(shade),
			float32(base.G)/255*float32(shade),
			float32(base.B)/255*float32(shade),
			1)
		r.view.DrawImage(r.white, opts)
	}

	if fog > 0 {
		fc := r.cfg.FogRGBA()
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Scale(1, float64(height))
		opts.GeoM.Translate(float64(col), float64(top))
		opts.ColorScale.Scale(
			float32(fc.R)/255*float32(fog),
			float32(fc.G)/255*float32(fog),
			float32(fc.B)/255*float32(fog),
			float32(fog))
		r.view.DrawImage(r.white, opts)
	}
}
