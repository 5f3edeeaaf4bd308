// Package overlap detects whether two rigid bodies overlap, through a hierarchy of
// bounding volume tests of increasing cost: spheres, then axis-aligned boxes, then
// oriented boxes (SAT).
//
// Every stage compares each sub-mesh of the first body with each sub-mesh of the
// second, and answers whether any of those pairs overlaps. The stages are independent:
// the pair accepted by one stage does not have to be the pair accepted by the next one.
package overlap

import (
	"github.com/akmonengine/overlap/actor"
	"github.com/akmonengine/overlap/sat"
)

// Stage identifies one level of the hierarchy
type Stage uint8

const (
	STAGE_SPHERE Stage = iota
	STAGE_AABB
	STAGE_OBB
)

func (s Stage) String() string {
	switch s {
	case STAGE_SPHERE:
		return "sphere"
	case STAGE_AABB:
		return "aabb"
	case STAGE_OBB:
		return "obb"
	}
	return "unknown"
}

// AnySphereOverlap reports whether a bounding sphere of a overlaps a bounding sphere of b
func AnySphereOverlap(a, b *actor.RigidBody) bool {
	worldA, worldB := a.World(), b.World()

	for _, va := range a.Volumes() {
		sphereA := va.Sphere().Transform(worldA)
		for _, vb := range b.Volumes() {
			if sphereA.Overlaps(vb.Sphere().Transform(worldB)) {
				return true
			}
		}
	}

	return false
}

// AnyAABBOverlap reports whether a world-aligned box of a overlaps one of b.
// Each local box is transformed then re-aligned on the world axes.
func AnyAABBOverlap(a, b *actor.RigidBody) bool {
	worldA, worldB := a.World(), b.World()

	for _, va := range a.Volumes() {
		boxA := va.Box().Transform(worldA)
		for _, vb := range b.Volumes() {
			if boxA.Overlaps(vb.Box().Transform(worldB)) {
				return true
			}
		}
	}

	return false
}

// AnyOBBOverlap reports whether an oriented box of a intersects one of b, using SAT
func AnyOBBOverlap(a, b *actor.RigidBody) bool {
	worldA, worldB := a.World(), b.World()

	for _, va := range a.Volumes() {
		obbA := sat.NewOrientedBox(va.Box(), worldA)
		for _, vb := range b.Volumes() {
			obbB := sat.NewOrientedBox(vb.Box(), worldB)
			if sat.Intersects(&obbA, &obbB) {
				return true
			}
		}
	}

	return false
}

// Intersects runs the sphere, AABB and OBB stages in this order and stops at the first
// stage reporting no overlap.
func Intersects(a, b *actor.RigidBody) bool {
	if !AnySphereOverlap(a, b) {
		return false
	}
	if !AnyAABBOverlap(a, b) {
		return false
	}
	if !AnyOBBOverlap(a, b) {
		return false
	}

	return true
}

// Report holds the answer of every stage, each computed independently
type Report struct {
	Sphere bool
	AABB   bool
	OBB    bool
}

// Intersects combines the stages the same way as the package-level Intersects
func (r Report) Intersects() bool {
	return r.Sphere && r.AABB && r.OBB
}

// FirstRejection returns the first stage that reported no overlap
func (r Report) FirstRejection() (Stage, bool) {
	switch {
	case !r.Sphere:
		return STAGE_SPHERE, true
	case !r.AABB:
		return STAGE_AABB, true
	case !r.OBB:
		return STAGE_OBB, true
	}
	return 0, false
}

// Classify runs all three stages without short-circuit, for diagnostics
func Classify(a, b *actor.RigidBody) Report {
	return Report{
		Sphere: AnySphereOverlap(a, b),
		AABB:   AnyAABBOverlap(a, b),
		OBB:    AnyOBBOverlap(a, b),
	}
}
