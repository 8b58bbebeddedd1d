package render

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"gridfire/internal/entity"
)

// spriteFOVMargin widens the angular cull slightly so billboards whose
// center is just off-screen still draw their on-screen edge.
const spriteFOVMargin = 0.1

// Strip-vs-whole scaling thresholds: scale the whole cached bitmap when most
// of it is visible or it is small anyway; otherwise scale only the
// texture-space slices of the visible runs.
const (
	spriteWholeScaleMinVisibleFrac = 0.5
	spriteWholeScaleMaxWidth       = 64
)

// billboard is a projected, screen-space entity quad.
type billboard struct {
	centerX int
	width   int
	height  int
	left    int
	top     int
	dist    float64 // Euclidean distance to the entity
}

// normalizeAngle wraps an angle difference into (-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// projectBillboard converts an entity's world position into a screen-space
// quad. Entities behind the player, beyond max depth (squared-distance cull
// before the sqrt), or outside the FOV margin are rejected.
func projectBillboard(viewW, viewH int, px, py, heading, fov, maxDepth, ex, ey, scale float64, pitch, vertOffset int) (billboard, bool) {
	dx := ex - px
	dy := ey - py

	if dx*math.Cos(heading)+dy*math.Sin(heading) < 0 {
		return billboard{}, false
	}
	distSq := dx*dx + dy*dy
	if distSq > maxDepth*maxDepth || distSq < 1e-12 {
		return billboard{}, false
	}
	dist := math.Sqrt(distSq)

	angleDiff := normalizeAngle(math.Atan2(dy, dx) - heading)
	halfFOV := fov / 2
	if math.Abs(angleDiff) > halfFOV+spriteFOVMargin {
		return billboard{}, false
	}

	size := int(float64(viewH) / dist * scale)
	if size < 2 {
		return billboard{}, false
	}

	centerX := viewW/2 + int(angleDiff/halfFOV*float64(viewW)/2)
	top := (viewH-size)/2 + pitch + vertOffset

	return billboard{
		centerX: centerX,
		width:   size,
		height:  size,
		left:    centerX - size/2,
		top:     top,
		dist:    dist,
	}, true
}

// visibleRuns returns the maximal contiguous [start, end) column spans in
// [left, right) where an entity at dist passes the z-buffer test. Columns
// where a wall is nearer are skipped.
func visibleRuns(zbuf []float64, left, right int, dist float64) [][2]int {
	if left < 0 {
		left = 0
	}
	if right > len(zbuf) {
		right = len(zbuf)
	}
	var runs [][2]int
	start := -1
	for x := left; x < right; x++ {
		if dist < zbuf[x] {
			if start < 0 {
				start = x
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, [2]int{start, x})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, right})
	}
	return runs
}

// runLengthTotal sums the column counts of a run set.
func runLengthTotal(runs [][2]int) int {
	total := 0
	for _, r := range runs {
		total += r[1] - r[0]
	}
	return total
}

type botRender struct {
	sig  botSignature
	bb   billboard
	runs [][2]int
}

// drawBots projects every renderable bot, sorts them far to near, and blits
// each one's visible runs into the view buffer.
func (r *Renderer) drawBots(player entity.Player, bots []BotView, fov float64, pitch, vertOffset int) {
	maxDepth := r.cfg.Camera.MaxDepth

	var visible []botRender
	for _, b := range bots {
		if b == nil || !b.Renderable() {
			continue
		}
		visual := r.cfg.EnemyVisual(b.KindID())
		ex, ey := b.Position()
		bb, ok := projectBillboard(r.viewW, r.viewH, player.X, player.Y, player.Angle, fov, maxDepth, ex, ey, visual.Scale, pitch, vertOffset)
		if !ok {
			continue
		}

		// Snap to the width bucket before computing runs so the cached
		// bitmap and the drawn quad agree column for column.
		w := bucketWidth(bb.width)
		bb.width = w
		bb.height = w
		bb.left = bb.centerX - w/2
		bb.top = (r.viewH-w)/2 + pitch + vertOffset

		runs := visibleRuns(r.zbuffer, bb.left, bb.left+bb.width, bb.dist)
		if len(runs) == 0 {
			continue
		}
		visible = append(visible, botRender{
			sig:  buildBotSignature(b, visual, bb.dist, r.cfg.Graphics.BrightnessMin),
			bb:   bb,
			runs: runs,
		})
	}

	// Farthest first, so nearer sprites overwrite where they overlap.
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].bb.dist > visible[j].bb.dist
	})

	for _, br := range visible {
		r.drawBotRuns(br)
	}
}

// drawBotRuns blits one bot's visible runs, choosing between scaling the
// whole cached bitmap or only the slices the runs need.
func (r *Renderer) drawBotRuns(br botRender) {
	w, h := br.bb.width, br.bb.height
	totalVisible := runLengthTotal(br.runs)

	wholeScale := float64(totalVisible) >= float64(w)*spriteWholeScaleMinVisibleFrac ||
		w <= spriteWholeScaleMaxWidth

	if wholeScale {
		img, ok := r.scaledBitmap(br.sig, w, h)
		if !ok {
			return
		}
		for _, run := range br.runs {
			sx0 := run[0] - br.bb.left
			sx1 := run[1] - br.bb.left
			sub, subOK := img.SubImage(image.Rect(sx0, 0, sx1, h)).(*ebiten.Image)
			if !subOK {
				continue
			}
			opts := &ebiten.DrawImageOptions{}
			opts.GeoM.Translate(float64(run[0]), float64(br.bb.top))
			r.view.DrawImage(sub, opts)
		}
		return
	}

	// Mostly occluded and large: scale only the texture-space slices of the
	// visible runs instead of the whole bitmap.
	base, ok := r.baseBitmap(br.sig)
	if !ok {
		return
	}
	baseW := base.Bounds().Dx()
	for _, run := range br.runs {
		runW := run[1] - run[0]
		sx0, sx1 := stripSliceBounds(run[0], run[1], br.bb.left, w, baseW)
		slice := base.SubImage(image.Rect(sx0, 0, sx1, base.Bounds().Dy()))
		scaled := scaleRGBA(slice, runW, h)
		if scaled == nil {
			continue
		}
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(float64(run[0]), float64(br.bb.top))
		r.view.DrawImage(ebiten.NewImageFromImage(scaled), opts)
	}
}

// stripSliceBounds maps a visible run back to the source-bitmap column range
// it samples. The end column rounds up so the slice always covers the run;
// a full run over [left, left+targetW) yields the whole source width, which
// keeps the strip path pixel-equivalent to scaling the whole bitmap.
func stripSliceBounds(runStart, runEnd, left, targetW, baseW int) (sx0, sx1 int) {
	sx0 = (runStart - left) * baseW / targetW
	sx1 = ((runEnd-left)*baseW + targetW - 1) / targetW
	if sx1 <= sx0 {
		sx1 = sx0 + 1
	}
	return sx0, sx1
}

// baseBitmap returns the cached padded base bitmap for a signature.
func (r *Renderer) baseBitmap(sig botSignature) (*image.RGBA, bool) {
	return r.bitmaps.GetOrCreate(sig, func() (*image.RGBA, bool) {
		visual := r.cfg.EnemyVisual(sig.Kind)
		img := renderBotBitmap(sig, visual)
		return img, img != nil
	})
}

// scaledBitmap returns the cached bitmap scaled to a bucketed target size.
func (r *Renderer) scaledBitmap(sig botSignature, w, h int) (*ebiten.Image, bool) {
	return r.scaled.GetOrCreate(scaledKey{Sig: sig, W: w, H: h}, func() (*ebiten.Image, bool) {
		base, ok := r.baseBitmap(sig)
		if !ok {
			return nil, false
		}
		scaled := scaleRGBA(base, w, h)
		if scaled == nil {
			return nil, false
		}
		return ebiten.NewImageFromImage(scaled), true
	})
}

// drawProjectiles draws each live projectile as a small disc with a
// weapon-specific accent, rasterized fresh each frame. A projectile whose
// center column is occluded is skipped whole.
func (r *Renderer) drawProjectiles(player entity.Player, projectiles []ProjectileView, fov float64, pitch, vertOffset int) {
	maxDepth := r.cfg.Camera.MaxDepth

	type shot struct {
		p  ProjectileView
		bb billboard
	}
	var visible []shot
	for _, p := range projectiles {
		if p == nil || !p.IsAlive() {
			continue
		}
		ex, ey := p.Position()
		bb, ok := projectBillboard(r.viewW, r.viewH, player.X, player.Y, player.Angle, fov, maxDepth, ex, ey, p.SizeScale(), pitch, vertOffset)
		if !ok {
			continue
		}
		if bb.centerX >= 0 && bb.centerX < len(r.zbuffer) && bb.dist >= r.zbuffer[bb.centerX] {
			continue
		}
		visible = append(visible, shot{p: p, bb: bb})
	}

	sort.Slice(visible, func(i, j int) bool {
		return visible[i].bb.dist > visible[j].bb.dist
	})

	for _, s := range visible {
		// Height above the floor becomes an upward pixel shift.
		zShift := int(s.p.Height() / s.bb.dist * float64(r.viewH))
		img := renderProjectileDisc(s.bb.width, s.p.ColorRGB(), s.p.Weapon())
		if img == nil {
			continue
		}
		opts := &ebiten.DrawImageOptions{}
		opts.GeoM.Translate(float64(s.bb.left), float64(s.bb.top-zShift))
		r.view.DrawImage(ebiten.NewImageFromImage(img), opts)
	}
}

// renderProjectileDisc rasterizes the filled circle plus accent for a
// weapon kind. Returns nil for degenerate sizes.
func renderProjectileDisc(size int, rgb [3]int, weapon string) *image.RGBA {
	if size < 2 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	base := color.RGBA{uint8(rgb[0]), uint8(rgb[1]), uint8(rgb[2]), 255}
	c := size / 2
	fillCircle(img, c, c, size/2, base)

	switch weapon {
	case "plasma":
		// Bright ring just inside the rim.
		inner := color.RGBA{lighten(base.R), lighten(base.G), lighten(base.B), 255}
		fillCircle(img, c, c, size/2-size/8, inner)
		fillCircle(img, c, c, size/4, base)
	case "bolt":
		fillCircle(img, c, c, size/4, color.RGBA{255, 255, 255, 255})
	default:
		dark := color.RGBA{base.R / 2, base.G / 2, base.B / 2, 255}
		fillCircle(img, c, c, size/5, dark)
	}
	return img
}
