package otoutline

import "math"

// MulFix multiplies a by a 16.16 fixed point factor b, rounding half away
// from zero.
func MulFix(a, b int64) int64 {
	sign := int64(1)
	if a < 0 {
		a, sign = -a, -sign
	}
	if b < 0 {
		b, sign = -b, -sign
	}
	return sign * ((a*b + 0x8000) >> 16)
}

// DivFix divides a by b, returning a 16.16 fixed point quotient. Division by
// zero yields the maximum 32-bit value.
func DivFix(a, b int64) int64 {
	return MulDiv(a, 0x10000, b)
}

// MulDiv computes a·b/c with rounding. Division by zero yields the maximum
// 32-bit value.
func MulDiv(a, b, c int64) int64 {
	sign := int64(1)
	if a < 0 {
		a, sign = -a, -sign
	}
	if b < 0 {
		b, sign = -b, -sign
	}
	if c < 0 {
		c, sign = -c, -sign
	}
	if c == 0 {
		return sign * math.MaxInt32
	}
	return sign * ((a*b + c/2) / c)
}

// Italicize returns a copy of an outline slanted by a horizontal shear
// factor in 16.16 fixed point. Points above the baseline move right.
func Italicize(o Outline, shear int64) Outline {
	out := o.Clone()
	for i, p := range out.Points {
		// Y points down: the shear applies to -y
		out.Points[i].X = int32(int64(p.X) + MulFix(-int64(p.Y), shear))
	}
	return out
}

// Embolden returns a copy of an outline with strokes widened by strength
// (26.6), both horizontally and vertically. Points are moved along the
// bisector of their adjacent edges, the outline grows by strength in total
// and moves up and right by half of it. Outlines without orientation are
// returned unchanged.
func Embolden(o Outline, strength int64) Outline {
	out := o.Clone()
	xs, ys := strength/2, strength/2
	if xs == 0 && ys == 0 {
		return out
	}
	orientation := o.Orientation()
	if orientation == OrientationNone {
		tracer().Debugf("cannot embolden outline without orientation")
		return out
	}
	pts := out.Points
	for i := range pts { // work with Y pointing up
		pts[i].Y = -pts[i].Y
	}
	for _, c := range o.Contours() {
		emboldenContour(pts, c[0], c[1]-1, xs, ys, orientation == OrientationTrueType)
	}
	for i := range pts {
		pts[i].Y = -pts[i].Y
	}
	return out
}

type unitVector struct {
	x, y int64 // 16.16
}

// normLen normalizes a vector to unit length and returns its former length.
func normLen(dx, dy int64) (unitVector, int64) {
	l := math.Hypot(float64(dx), float64(dy))
	if l == 0 {
		return unitVector{}, 0
	}
	return unitVector{
		x: int64(math.Round(float64(dx) / l * 0x10000)),
		y: int64(math.Round(float64(dy) / l * 0x10000)),
	}, int64(math.Round(l))
}

// emboldenContour shifts the points first…last of a contour. Counter j
// cycles through the points, i advances only when points are moved, anchor k
// marks the first moved point.
func emboldenContour(pts []Vector, first, last int, xs, ys int64, truetype bool) {
	var in, out, anchor unitVector
	var lIn, lOut, lAnchor int64
	next := func(n int) int {
		if n < last {
			return n + 1
		}
		return first
	}
	for i, j, k := last, first, -1; j != i && i != k; j = next(j) {
		if j != k {
			out, lOut = normLen(int64(pts[j].X-pts[i].X), int64(pts[j].Y-pts[i].Y))
			if lOut == 0 {
				continue
			}
		} else {
			out, lOut = anchor, lAnchor
		}
		if lIn != 0 {
			if k < 0 {
				k, anchor, lAnchor = i, in, lIn
			}
			var sx, sy int64
			// shift only if the turn is less than about 160 degrees
			if d := MulFix(in.x, out.x) + MulFix(in.y, out.y); d > -0xf000 {
				d += 0x10000
				sx, sy = in.y+out.y, in.x+out.x
				q := MulFix(out.x, in.y) - MulFix(out.y, in.x)
				if truetype {
					sx, q = -sx, -q
				} else {
					sy = -sy
				}
				l := min(lIn, lOut)
				if MulFix(xs, q) <= MulFix(l, d) {
					sx = MulDiv(sx, xs, d)
				} else {
					sx = MulDiv(sx, l, q)
				}
				if MulFix(ys, q) <= MulFix(l, d) {
					sy = MulDiv(sy, ys, d)
				} else {
					sy = MulDiv(sy, l, q)
				}
			}
			for ; i != j; i = next(i) {
				pts[i].X += int32(xs + sx)
				pts[i].Y += int32(ys + sy)
			}
		} else {
			i = j
		}
		in, lIn = out, lOut
	}
}
