package render

import (
	"math"

	"gridfire/internal/world"
)

// epsRayDir replaces near-zero ray direction components before the
// reciprocal division so delta distances stay finite. Small enough that the
// resulting distance error is below floating tolerance.
const epsRayDir = 1e-12

// stepBudgetFactor bounds DDA traversal at ~1.5x the max view depth in grid
// steps; a ray that survives that long hits a synthetic boundary wall.
const stepBudgetFactor = 1.5

// Hit is the result of marching one ray through the grid.
type Hit struct {
	Distance float64 // distance along the ray in cells, capped at max depth
	WallType int     // 0 = no wall within max depth (sky shows through)
	TexCoord float64 // fractional horizontal texture coordinate in [0, 1)
	Side     int     // 0 = vertical (x) boundary, 1 = horizontal (y) boundary
	CellX    int     // grid cell that stopped the ray
	CellY    int
}

// CastRay marches a single ray from (px, py) at the given angle until it
// meets an occupied cell or runs past maxDepth. Gameplay code uses this for
// hitscan and line-of-sight queries; the batched per-frame path must agree
// with it column for column.
func CastRay(m *world.Map, px, py, angle, maxDepth float64) Hit {
	dirX := math.Cos(angle)
	dirY := math.Sin(angle)
	if math.Abs(dirX) < epsRayDir {
		dirX = epsRayDir
	}
	if math.Abs(dirY) < epsRayDir {
		dirY = epsRayDir
	}

	cellX := int(math.Floor(px))
	cellY := int(math.Floor(py))

	deltaX := math.Abs(1 / dirX)
	deltaY := math.Abs(1 / dirY)

	var stepX, stepY int
	var sideX, sideY float64
	if dirX < 0 {
		stepX = -1
		sideX = (px - float64(cellX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(cellX) + 1 - px) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (py - float64(cellY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(cellY) + 1 - py) * deltaY
	}

	budget := int(stepBudgetFactor*maxDepth) + 1
	side := 0
	for step := 0; step < budget; step++ {
		if sideX < sideY {
			sideX += deltaX
			cellX += stepX
			side = 0
		} else {
			sideY += deltaY
			cellY += stepY
			side = 1
		}

		wallType := m.WallTypeAt(cellX, cellY)
		if wallType <= 0 {
			continue
		}

		var dist float64
		if side == 0 {
			dist = sideX - deltaX
		} else {
			dist = sideY - deltaY
		}
		if dist > maxDepth {
			return Hit{Distance: maxDepth, Side: side, CellX: cellX, CellY: cellY}
		}

		var wallX float64
		if side == 0 {
			wallX = py + dist*dirY
		} else {
			wallX = px + dist*dirX
		}
		wallX -= math.Floor(wallX)

		return Hit{
			Distance: dist,
			WallType: wallType,
			TexCoord: wallX,
			Side:     side,
			CellX:    cellX,
			CellY:    cellY,
		}
	}

	// Step budget exhausted without a hit: synthetic boundary wall at the
	// far plane.
	return Hit{Distance: maxDepth, WallType: world.BoundaryWall, Side: side, CellX: cellX, CellY: cellY}
}

// columnCaster evaluates one ray per screen column as a batch: per-column
// state lives in flat arrays and a shared stepping loop advances every
// unfinished column until all are done or the step budget runs out. The
// results are identical to calling CastRay per column; the batching exists
// for throughput, not semantics.
type columnCaster struct {
	n      int
	angles []float64 // per-column absolute ray angle
	deltas []float64 // per-column offset from the heading, for fisheye correction

	dirX, dirY     []float64
	deltaX, deltaY []float64
	sideX, sideY   []float64
	cellX, cellY   []int
	stepX, stepY   []int
	side           []int
	done           []bool
	hits           []Hit
}

func newColumnCaster(n int) *columnCaster {
	if n < 1 {
		n = 1
	}
	return &columnCaster{
		n:      n,
		angles: make([]float64, n),
		deltas: make([]float64, n),
		dirX:   make([]float64, n),
		dirY:   make([]float64, n),
		deltaX: make([]float64, n),
		deltaY: make([]float64, n),
		sideX:  make([]float64, n),
		sideY:  make([]float64, n),
		cellX:  make([]int, n),
		cellY:  make([]int, n),
		stepX:  make([]int, n),
		stepY:  make([]int, n),
		side:   make([]int, n),
		done:   make([]bool, n),
		hits:   make([]Hit, n),
	}
}

// columnAngle returns the absolute ray angle for column i of n, spanning
// [-fov/2, +fov/2) around the heading.
func columnAngle(heading, fov float64, i, n int) float64 {
	return heading - fov/2 + (float64(i)/float64(n))*fov
}

// cast marches every column's ray and returns one Hit per column. The
// returned slice is reused across frames.
func (cc *columnCaster) cast(m *world.Map, px, py, heading, fov, maxDepth float64) []Hit {
	n := cc.n
	startCellX := int(math.Floor(px))
	startCellY := int(math.Floor(py))

	for i := 0; i < n; i++ {
		angle := columnAngle(heading, fov, i, n)
		cc.angles[i] = angle
		cc.deltas[i] = angle - heading

		dirX := math.Cos(angle)
		dirY := math.Sin(angle)
		if math.Abs(dirX) < epsRayDir {
			dirX = epsRayDir
		}
		if math.Abs(dirY) < epsRayDir {
			dirY = epsRayDir
		}
		cc.dirX[i] = dirX
		cc.dirY[i] = dirY
		cc.deltaX[i] = math.Abs(1 / dirX)
		cc.deltaY[i] = math.Abs(1 / dirY)

		cc.cellX[i] = startCellX
		cc.cellY[i] = startCellY
		if dirX < 0 {
			cc.stepX[i] = -1
			cc.sideX[i] = (px - float64(startCellX)) * cc.deltaX[i]
		} else {
			cc.stepX[i] = 1
			cc.sideX[i] = (float64(startCellX) + 1 - px) * cc.deltaX[i]
		}
		if dirY < 0 {
			cc.stepY[i] = -1
			cc.sideY[i] = (py - float64(startCellY)) * cc.deltaY[i]
		} else {
			cc.stepY[i] = 1
			cc.sideY[i] = (float64(startCellY) + 1 - py) * cc.deltaY[i]
		}
		cc.side[i] = 0
		cc.done[i] = false
		cc.hits[i] = Hit{}
	}

	budget := int(stepBudgetFactor*maxDepth) + 1
	remaining := n
	for step := 0; step < budget && remaining > 0; step++ {
		for i := 0; i < n; i++ {
			if cc.done[i] {
				continue
			}

			if cc.sideX[i] < cc.sideY[i] {
				cc.sideX[i] += cc.deltaX[i]
				cc.cellX[i] += cc.stepX[i]
				cc.side[i] = 0
			} else {
				cc.sideY[i] += cc.deltaY[i]
				cc.cellY[i] += cc.stepY[i]
				cc.side[i] = 1
			}

			wallType := m.WallTypeAt(cc.cellX[i], cc.cellY[i])
			if wallType <= 0 {
				continue
			}

			var dist float64
			if cc.side[i] == 0 {
				dist = cc.sideX[i] - cc.deltaX[i]
			} else {
				dist = cc.sideY[i] - cc.deltaY[i]
			}

			if dist > maxDepth {
				cc.hits[i] = Hit{Distance: maxDepth, Side: cc.side[i], CellX: cc.cellX[i], CellY: cc.cellY[i]}
			} else {
				var wallX float64
				if cc.side[i] == 0 {
					wallX = py + dist*cc.dirY[i]
				} else {
					wallX = px + dist*cc.dirX[i]
				}
				wallX -= math.Floor(wallX)
				cc.hits[i] = Hit{
					Distance: dist,
					WallType: wallType,
					TexCoord: wallX,
					Side:     cc.side[i],
					CellX:    cc.cellX[i],
					CellY:    cc.cellY[i],
				}
			}
			cc.done[i] = true
			remaining--
		}
	}

	for i := 0; i < n; i++ {
		if !cc.done[i] {
			cc.hits[i] = Hit{Distance: maxDepth, WallType: world.BoundaryWall, Side: cc.side[i], CellX: cc.cellX[i], CellY: cc.cellY[i]}
		}
	}
	return cc.hits
}

// correctedDistance removes the fisheye distortion: the raw DDA distance is
// measured along the ray, so walls would bow outward at the screen edges.
// Multiplying by cos(delta) projects it onto the camera's forward axis.
func correctedDistance(rayDist, delta float64) float64 {
	return rayDist * math.Cos(delta)
}
