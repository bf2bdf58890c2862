package render

import (
	"math"

	"github.com/phasetida/phasetida-core/internal/geometry"
	"github.com/phasetida/phasetida-core/internal/simulate"
)

// epsilonEqual matches the Rust source's boundary test, f64::EPSILON.
const epsilon = 2.220446049250313e-16

func epsilonEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

// appendLine writes a judgement line's on-screen segment, culling it when
// invisible (alpha<=0) or when both screen-edge intersections land on the
// same off-screen edge.
func appendLine(buf []byte, line *simulate.LineState) []byte {
	if line.Alpha <= 0.0 {
		return buf
	}
	p1 := geometry.GetCrossPointWithScreen(line.X, line.Y, geometry.FixDegree(line.Rotate))
	p2 := geometry.GetCrossPointWithScreen(line.X, line.Y, geometry.FixDegree(line.Rotate+180.0))

	sameVerticalEdge := (epsilonEqual(p1.X, 0) && epsilonEqual(p2.X, geometry.WorldWidth)) ||
		(epsilonEqual(p2.X, 0) && epsilonEqual(p1.X, geometry.WorldWidth))
	offScreenVertically := (p1.Y <= 0 && p2.Y <= 0) || (p1.Y >= geometry.WorldHeight && p2.Y >= geometry.WorldHeight)

	sameHorizontalEdge := (epsilonEqual(p1.Y, 0) && epsilonEqual(p2.Y, geometry.WorldHeight)) ||
		(epsilonEqual(p2.Y, 0) && epsilonEqual(p1.Y, geometry.WorldHeight))
	offScreenHorizontally := (p1.X <= 0 && p2.X <= 0) || (p1.X >= geometry.WorldWidth && p2.X >= geometry.WorldWidth)

	if (sameVerticalEdge && offScreenVertically) || (sameHorizontalEdge && offScreenHorizontally) {
		return buf
	}

	rec := lineRecord{
		X1:    float32(p1.X),
		Y1:    float32(p1.Y),
		X2:    float32(p2.X),
		Y2:    float32(p2.Y),
		Alpha: float32(line.Alpha),
	}
	return rec.appendTo(buf)
}

func checkInBound(x, y float64) bool {
	return x >= -200.0 && x <= 2120.0 && y >= -200.0 && y <= 1280.0
}
