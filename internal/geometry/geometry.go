// Package geometry provides the world-space math the judgement and
// rendering layers share: quadrant-aware line/screen intersections, point
// projection along a rotated judge line, and oriented-bounding-box overlap
// via the separating axis theorem.
package geometry

import "math"

// World dimensions and derived note-motion units (spec §3).
const (
	WorldWidth  = 1920.0
	WorldHeight = 1080.0
	UnitWidth   = WorldWidth / 18.0
	UnitHeight  = WorldHeight * 0.6
)

// WorldRect is the screen rectangle used as one operand of the hold-note
// OBB culling test.
var WorldRect = Rect{
	CX:     WorldWidth / 2,
	CY:     WorldHeight / 2,
	Width:  WorldWidth,
	Height: WorldHeight,
	Rotate: 0,
}

// Point is a world-space coordinate pair.
type Point struct {
	X, Y float64
}

// Rect is an oriented rectangle: center, extents, and rotation in radians.
type Rect struct {
	CX, CY        float64
	Width, Height float64
	Rotate        float64
}

type quadrant int

const (
	quadrantI quadrant = iota
	quadrantII
	quadrantIII
	quadrantIV
)

// getQuadrant dispatches a degree value (expected in [0,360)) into the
// quadrant whose tangent/cotangent formulation avoids a blow-up near 90/270.
func getQuadrant(degree float64) quadrant {
	switch {
	case degree >= 315 && degree <= 360, degree >= 0 && degree <= 45:
		return quadrantI
	case degree > 45 && degree <= 135:
		return quadrantII
	case degree > 135 && degree <= 225:
		return quadrantIII
	default:
		return quadrantIV
	}
}

// FixDegree normalizes any finite degree value into [0, 360).
func FixDegree(degree float64) float64 {
	for degree < 0 {
		degree += 360
	}
	for degree >= 360 {
		degree -= 360
	}
	return degree
}

// GetCrossPointWithScreen intersects the infinite line through (lineX,
// lineY) at angle validDegree with the 1920x1080 screen rectangle.
func GetCrossPointWithScreen(lineX, lineY, validDegree float64) Point {
	q := getQuadrant(validDegree)
	rad := validDegree * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	var tanCot float64
	switch q {
	case quadrantI, quadrantIII:
		tanCot = sin / cos
	default:
		tanCot = cos / sin
	}
	switch q {
	case quadrantI:
		return Point{X: WorldWidth, Y: lineY + (WorldWidth-lineX)*tanCot}
	case quadrantII:
		return Point{X: lineX + tanCot*(WorldHeight-lineY), Y: WorldHeight}
	case quadrantIII:
		return Point{X: 0, Y: lineY - lineX*tanCot}
	default:
		return Point{X: lineX - lineY*tanCot, Y: 0}
	}
}

// GetPosOutOfLine projects a point distance units along direction anyDegree
// from (lineX, lineY).
func GetPosOutOfLine(lineX, lineY, anyDegree, distance float64) Point {
	rad := anyDegree * math.Pi / 180
	return Point{
		X: lineX + math.Cos(rad)*distance,
		Y: lineY + math.Sin(rad)*distance,
	}
}

// IsPointInJudgeRange reports whether (pointX, pointY) lies within a band
// of half-width judgeWidth centred on the line through (lineX, lineY) at
// validDegree.
func IsPointInJudgeRange(lineX, lineY, validDegree, pointX, pointY, judgeWidth float64) bool {
	q := getQuadrant(validDegree)
	rad := validDegree * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	var p1, p2 float64
	switch q {
	case quadrantI, quadrantIII:
		cotOrTan := sin / cos
		ld1 := judgeWidth / cos
		d := pointY - lineY
		ld2 := d * cotOrTan
		p1 = lineX - (ld2 + ld1)
		p2 = lineX - (ld2 - ld1)
	default:
		cotOrTan := cos / sin
		ld1 := judgeWidth / sin
		d := pointY - lineY
		ld2 := d * cotOrTan
		p1 = lineY + (ld2 + ld1)
		p2 = lineY + (ld2 - ld1)
	}
	switch q {
	case quadrantI:
		return pointX >= p1 && pointX <= p2
	case quadrantIII:
		return pointX >= p2 && pointX <= p1
	case quadrantII:
		return pointY >= p2 && pointY <= p1
	default:
		return pointY >= p1 && pointY <= p2
	}
}

// GetPosPointVerticalInLine returns the foot of the perpendicular from
// (pointX, pointY) onto the line through (lineX, lineY) at degree.
func GetPosPointVerticalInLine(lineX, lineY, degree, pointX, pointY float64) Point {
	q := getQuadrant(degree)
	rad := degree * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	switch q {
	case quadrantI, quadrantIII:
		tan := sin / cos
		tmp := pointY - lineY - (pointX-lineX)*tan
		return Point{X: pointX + tmp*cos*sin, Y: pointY - tmp*cos*cos}
	default:
		cot := cos / sin
		tmp := pointX - lineX - (pointY-lineY)*cot
		return Point{X: pointX - tmp*sin*sin, Y: pointY + tmp*sin*cos}
	}
}

func dot(x1, y1, x2, y2 float64) float64 { return x1*x2 + y1*y2 }

func projectionInterval(r Rect, axisX, axisY float64) (float64, float64) {
	centerProj := r.CX*axisX + r.CY*axisY
	ux, uy := math.Cos(r.Rotate), math.Sin(r.Rotate)
	vx, vy := -uy, ux
	halfW, halfH := r.Width/2, r.Height/2
	radius := halfW*math.Abs(dot(axisX, axisY, ux, uy)) + halfH*math.Abs(dot(axisX, axisY, vx, vy))
	return centerProj - radius, centerProj + radius
}

func intervalsOverlap(min1, max1, min2, max2 float64) bool {
	return !(max1 < min2 || max2 < min1)
}

// CheckRectanglesOverlap is a separating-axis-theorem test over both
// rectangles' local axes.
func CheckRectanglesOverlap(r1, r2 Rect) bool {
	u1x, u1y := math.Cos(r1.Rotate), math.Sin(r1.Rotate)
	v1x, v1y := -u1y, u1x
	u2x, u2y := math.Cos(r2.Rotate), math.Sin(r2.Rotate)
	v2x, v2y := -u2y, u2x
	axes := [4][2]float64{{u1x, u1y}, {v1x, v1y}, {u2x, u2y}, {v2x, v2y}}
	for _, axis := range axes {
		if axis[0] == 0 && axis[1] == 0 {
			continue
		}
		min1, max1 := projectionInterval(r1, axis[0], axis[1])
		min2, max2 := projectionInterval(r2, axis[0], axis[1])
		if !intervalsOverlap(min1, max1, min2, max2) {
			return false
		}
	}
	return true
}
