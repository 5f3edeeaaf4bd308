package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// emptyAABB is the accumulator seed: any point extends it on every axis
func emptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// extend grows the box so that it contains point
func (a AABB) extend(point mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		a.Min[i] = math.Min(a.Min[i], point[i])
		a.Max[i] = math.Max(a.Max[i], point[i])
	}

	return a
}

// AABBFromPoints returns the smallest box containing every point.
// An empty slice yields the zero box at the origin.
func AABBFromPoints(points []mgl64.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := emptyAABB()
	for _, p := range points {
		box = box.extend(p)
	}

	return box
}

// Center returns the middle point of the box
func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Overlaps checks if two AABBs overlap.
// Boxes that only touch on a face, an edge or a corner overlap.
func (a AABB) Overlaps(other AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Max[i] < other.Min[i] || other.Max[i] < a.Min[i] {
			return false
		}
	}

	return true
}

// Corners expands the box into its 8 corners.
//
// Bit 0 of the index selects Max over Min on X, bit 1 on Y, bit 2 on Z:
//
//	0: (min.x, min.y, min.z)    4: (min.x, min.y, max.z)
//	1: (max.x, min.y, min.z)    5: (max.x, min.y, max.z)
//	2: (min.x, max.y, min.z)    6: (min.x, max.y, max.z)
//	3: (max.x, max.y, min.z)    7: (max.x, max.y, max.z)
//
// Corners 1, 2 and 4 are therefore joined to corner 0 by the box edges along
// X, Y and Z. The oriented box test relies on this order.
func (a AABB) Corners() [8]mgl64.Vec3 {
	var corners [8]mgl64.Vec3
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corners[i][axis] = a.Max[axis]
			} else {
				corners[i][axis] = a.Min[axis]
			}
		}
	}

	return corners
}

// TransformCorners expands the box and applies m to every corner, keeping the
// canonical order of Corners.
func (a AABB) TransformCorners(m mgl64.Mat4) [8]mgl64.Vec3 {
	corners := a.Corners()
	for i := range corners {
		corners[i] = TransformPoint(m, corners[i])
	}

	return corners
}

// Transform returns the axis-aligned envelope of the box once transformed by m.
// The result is re-aligned on the world axes, so any rotation loosens it.
func (a AABB) Transform(m mgl64.Mat4) AABB {
	corners := a.TransformCorners(m)

	box := emptyAABB()
	for _, c := range corners {
		box = box.extend(c)
	}

	return box
}
