package otoutline

import (
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Segment descriptors. The low bits count the points a segment consumes.
const (
	SegmentLine      byte = 1
	SegmentQuad      byte = 2
	SegmentCubic     byte = 3
	SegmentCountMask byte = 3
	ContourEnd       byte = 4
)

// OutlineMax is the maximum magnitude of an outline coordinate.
const OutlineMax = 1<<28 - 1

// ErrOverflow is returned if a coordinate exceeds OutlineMax.
var ErrOverflow = errors.New("outline coordinate out of bounds")

// Vector is a point in 26.6 fixed point, Y pointing down.
type Vector struct {
	X, Y int32
}

// Outline is a glyph outline in portable representation.
type Outline struct {
	Points   []Vector
	Segments []byte
}

// Empty reports whether an outline has no points.
func (o Outline) Empty() bool {
	return len(o.Points) == 0
}

// Clone returns a deep copy of an outline.
func (o Outline) Clone() Outline {
	return Outline{
		Points:   append([]Vector(nil), o.Points...),
		Segments: append([]byte(nil), o.Segments...),
	}
}

// Contours returns the point ranges [start, end) of the contours of an
// outline.
func (o Outline) Contours() [][2]int {
	var contours [][2]int
	start, n := 0, 0
	for _, seg := range o.Segments {
		n += int(seg & SegmentCountMask)
		if seg&ContourEnd != 0 {
			contours = append(contours, [2]int{start, n})
			start = n
		}
	}
	return contours
}

func inBounds(x, y int64) bool {
	return x >= -OutlineMax && x <= OutlineMax && y >= -OutlineMax && y <= OutlineMax
}

func vec(p fixed.Point26_6) Vector {
	return Vector{X: int32(p.X), Y: int32(p.Y)}
}

// FromSegments converts segments as produced by sfnt.Font.LoadGlyph.
// Contours not ending at their start point are closed by a line; contours
// without drawing segments are dropped.
func FromSegments(segs sfnt.Segments) (Outline, error) {
	var o Outline
	var start, cur Vector
	first := -1 // first segment of the current contour
	closeContour := func() {
		if first >= 0 && first < len(o.Segments) {
			if cur != start {
				o.Points = append(o.Points, cur)
				o.Segments = append(o.Segments, SegmentLine)
			}
			o.Segments[len(o.Segments)-1] |= ContourEnd
		}
		first = -1
	}
	for i, seg := range segs {
		for _, p := range seg.Args[:argCount(seg.Op)] {
			if !inBounds(int64(p.X), int64(p.Y)) {
				return Outline{}, fmt.Errorf("segment %d: %w", i, ErrOverflow)
			}
		}
		if seg.Op == sfnt.SegmentOpMoveTo {
			closeContour()
			start, cur = vec(seg.Args[0]), vec(seg.Args[0])
			first = len(o.Segments)
			continue
		}
		if first < 0 {
			return Outline{}, fmt.Errorf("segment %d: drawing without a current point", i)
		}
		switch seg.Op {
		case sfnt.SegmentOpLineTo:
			o.Points = append(o.Points, cur)
			o.Segments = append(o.Segments, SegmentLine)
			cur = vec(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			o.Points = append(o.Points, cur, vec(seg.Args[0]))
			o.Segments = append(o.Segments, SegmentQuad)
			cur = vec(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			o.Points = append(o.Points, cur, vec(seg.Args[0]), vec(seg.Args[1]))
			o.Segments = append(o.Segments, SegmentCubic)
			cur = vec(seg.Args[2])
		}
	}
	closeContour()
	return o, nil
}

func argCount(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	}
	return 1
}

// AddRect appends a closed rectangular contour with corners (x0, y0) and
// (x1, y1), starting at (x0, y0) and running horizontally first.
func (o *Outline) AddRect(x0, y0, x1, y1 int32) {
	o.Points = append(o.Points,
		Vector{X: x0, Y: y0}, Vector{X: x1, Y: y0},
		Vector{X: x1, Y: y1}, Vector{X: x0, Y: y1})
	o.Segments = append(o.Segments,
		SegmentLine, SegmentLine, SegmentLine, SegmentLine|ContourEnd)
}

// Rotate90 rotates an outline by 90 degrees and moves it by offs, mapping
// (x, y) to (offs.X + y, offs.Y − x). If a resulting coordinate exceeds
// OutlineMax, the outline is left unchanged and ErrOverflow is returned.
func (o *Outline) Rotate90(offs Vector) error {
	rotated := make([]Vector, len(o.Points))
	for i, p := range o.Points {
		x := int64(offs.X) + int64(p.Y)
		y := int64(offs.Y) - int64(p.X)
		if !inBounds(x, y) {
			return ErrOverflow
		}
		rotated[i] = Vector{X: int32(x), Y: int32(y)}
	}
	copy(o.Points, rotated)
	return nil
}

// Orientation is the winding direction of the outer contours of an outline.
type Orientation int8

const (
	OrientationNone       Orientation = iota // degenerate outline
	OrientationTrueType                      // clockwise, filled to the right
	OrientationPostScript                    // counter-clockwise, filled to the left
)

// Orientation determines the winding of an outline from the polygon spanned
// by all its points. Outlines without points count as TrueType oriented,
// outlines collapsed to a line have no orientation.
func (o Outline) Orientation() Orientation {
	if len(o.Points) == 0 {
		return OrientationTrueType
	}
	minX, minY, maxX, maxY := o.Points[0].X, o.Points[0].Y, o.Points[0].X, o.Points[0].Y
	for _, p := range o.Points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if minX == maxX || minY == maxY {
		return OrientationNone
	}
	var area int64
	for _, c := range o.Contours() {
		prev := o.Points[c[1]-1]
		for _, cur := range o.Points[c[0]:c[1]] {
			area += int64(cur.Y-prev.Y) * int64(cur.X+prev.X)
			prev = cur
		}
	}
	// Y points down, which flips the sign of the area
	switch {
	case area > 0:
		return OrientationTrueType
	case area < 0:
		return OrientationPostScript
	}
	return OrientationNone
}
