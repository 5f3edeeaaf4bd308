// Package sat implements the Separating Axis Theorem (SAT) test between two oriented boxes.
//
// Two convex shapes are disjoint if and only if there exists an axis onto which their
// projections do not overlap. For two boxes in 3D, it is enough to check:
//   - the 3 edge directions of the first box
//   - the 3 edge directions of the second box
//   - the 9 cross products between an edge of the first and an edge of the second
//
// Boxes are represented by their 8 transformed corners rather than a center, half
// extents and a rotation, so any affine world matrix can be applied without
// decomposing it. The edge directions are read back from the corners, which is exact
// for rotations and uniform scales and sheared for non-uniform scales.
package sat

import (
	"math"

	"github.com/akmonengine/overlap/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// AxisEpsilon is the squared length under which a candidate axis is discarded.
// Such axes come from parallel edges (null cross products) or flat boxes.
const AxisEpsilon = 1e-6

// MaxAxes is the number of candidate axes for a pair of boxes: 3 + 3 + 3*3
const MaxAxes = 15

// OrientedBox is a box given by its 8 world-space corners, in the order of actor.AABB.Corners
type OrientedBox [8]mgl64.Vec3

// NewOrientedBox transforms the corners of a local box directly by world.
// Unlike actor.AABB.Transform, the result is not re-aligned on the world axes.
func NewOrientedBox(local actor.AABB, world mgl64.Mat4) OrientedBox {
	return OrientedBox(local.TransformCorners(world))
}

// LocalAxes returns the box edges leaving corner 0, along local X, Y and Z.
// The vectors are not normalized: their length is the edge length.
func (o *OrientedBox) LocalAxes() [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		o[1].Sub(o[0]),
		o[2].Sub(o[0]),
		o[4].Sub(o[0]),
	}
}

// Project returns the interval covered by the box once projected onto axis
func (o *OrientedBox) Project(axis mgl64.Vec3) (float64, float64) {
	minP := math.Inf(1)
	maxP := math.Inf(-1)
	for _, corner := range o {
		p := corner.Dot(axis)
		minP = math.Min(minP, p)
		maxP = math.Max(maxP, p)
	}

	return minP, maxP
}

// Axes is the set of usable separating axes for a pair of boxes
type Axes struct {
	Vectors [MaxAxes]mgl64.Vec3
	Count   int
}

// add normalizes axis and keeps it, unless it is too short to carry a direction
func (a *Axes) add(axis mgl64.Vec3) {
	if axis.LenSqr() <= AxisEpsilon {
		return
	}
	a.Vectors[a.Count] = axis.Normalize()
	a.Count++
}

// Slice returns the kept axes
func (a *Axes) Slice() []mgl64.Vec3 {
	return a.Vectors[:a.Count]
}

// CandidateAxes builds the normalized separating axis candidates of two boxes:
// the local axes of a, the local axes of b, then a_i x b_j for i, j in 0..2.
// Axes whose squared length is at most AxisEpsilon are dropped, so the result
// holds between 0 and 15 axes.
func CandidateAxes(a, b *OrientedBox) Axes {
	var axes Axes

	axesA := a.LocalAxes()
	axesB := b.LocalAxes()

	for _, axis := range axesA {
		axes.add(axis)
	}
	for _, axis := range axesB {
		axes.add(axis)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axes.add(axesA[i].Cross(axesB[j]))
		}
	}

	return axes
}

// Separates checks whether the projections of a and b onto axis are disjoint
func Separates(a, b *OrientedBox, axis mgl64.Vec3) bool {
	minA, maxA := a.Project(axis)
	minB, maxB := b.Project(axis)

	return maxA < minB || maxB < minA
}

// Intersects runs the SAT test and reports whether no candidate axis separates the boxes.
//
// When degenerate geometry leaves fewer axes, the test runs on whatever remains,
// which can only err towards reporting an intersection. Touching boxes intersect.
func Intersects(a, b *OrientedBox) bool {
	axes := CandidateAxes(a, b)
	for _, axis := range axes.Slice() {
		if Separates(a, b, axis) {
			return false
		}
	}

	return true
}
