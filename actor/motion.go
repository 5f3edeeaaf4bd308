package actor

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// RotationKind selects how a body spins on itself at each step
type RotationKind int

const (
	// RotationNone keeps the orientation unchanged
	RotationNone RotationKind = iota

	// RotationPrograde spins counter-clockwise about the world Y axis
	RotationPrograde

	// RotationRetrograde spins clockwise about the world Y axis
	RotationRetrograde

	// RotationLocal spins about the body's own Z axis, keeping any initial tilt
	RotationLocal
)

var rotationKindNames = map[RotationKind]string{
	RotationNone:       "none",
	RotationPrograde:   "prograde",
	RotationRetrograde: "retrograde",
	RotationLocal:      "local",
}

func (k RotationKind) String() string {
	if name, ok := rotationKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseRotationKind is the inverse of RotationKind.String
func ParseRotationKind(name string) (RotationKind, bool) {
	for kind, n := range rotationKindNames {
		if n == name {
			return kind, true
		}
	}
	return RotationNone, false
}

type spinFunc func(rotation mgl64.Quat, degrees float64) mgl64.Quat

var worldUp = mgl64.Vec3{0, 1, 0}

// spins maps every rotation kind to its update rule
var spins = map[RotationKind]spinFunc{
	RotationNone: func(rotation mgl64.Quat, _ float64) mgl64.Quat {
		return rotation
	},
	RotationPrograde: func(rotation mgl64.Quat, degrees float64) mgl64.Quat {
		return mgl64.QuatRotate(mgl64.DegToRad(degrees), worldUp).Mul(rotation).Normalize()
	},
	RotationRetrograde: func(rotation mgl64.Quat, degrees float64) mgl64.Quat {
		return mgl64.QuatRotate(-mgl64.DegToRad(degrees), worldUp).Mul(rotation).Normalize()
	},
	RotationLocal: func(rotation mgl64.Quat, degrees float64) mgl64.Quat {
		return rotation.Mul(mgl64.QuatRotate(mgl64.DegToRad(degrees), mgl64.Vec3{0, 0, 1})).Normalize()
	},
}

// Motion describes the kinematics of a body: a spin and an orbit, both in degrees per step.
// Without a Parent the body orbits the world origin about the Y axis. With a Parent
// it orbits the parent's position, at Offset from it.
type Motion struct {
	Kind        RotationKind
	RotateSpeed float64
	OrbitSpeed  float64

	Parent *RigidBody
	Offset mgl64.Vec3

	angle float64
}

// Step advances the body's motion by one step and recomputes its world matrix.
// A body with a Parent reads the parent's transform, so parents must be stepped first.
func (rb *RigidBody) Step() {
	m := &rb.Motion
	t := rb.transform

	spin, ok := spins[m.Kind]
	if !ok {
		spin = spins[RotationNone]
	}
	t.Rotation = spin(t.Rotation, m.RotateSpeed)

	if m.Parent != nil {
		m.angle += m.OrbitSpeed
		t.Position = m.orbitPosition()
	} else if m.OrbitSpeed != 0 {
		orbit := mgl64.QuatRotate(mgl64.DegToRad(m.OrbitSpeed), worldUp)
		t.Position = orbit.Rotate(t.Position)
	}

	rb.SetTransform(t)
}

// orbitPosition is the position at the current orbit angle around the parent
func (m *Motion) orbitPosition() mgl64.Vec3 {
	orbit := mgl64.QuatRotate(mgl64.DegToRad(m.angle), worldUp)
	return orbit.Rotate(m.Offset).Add(m.Parent.transform.Position)
}

// Place moves a body orbiting a parent to its current orbit position without
// advancing the motion. Bodies without a parent are left untouched.
func (rb *RigidBody) Place() {
	if rb.Motion.Parent == nil {
		return
	}

	t := rb.transform
	t.Position = rb.Motion.orbitPosition()
	rb.SetTransform(t)
}

// ParentOrder returns the bodies orbiting a parent, every parent before its children.
// Bodies at the same depth keep their relative order.
func ParentOrder(bodies []*RigidBody) []*RigidBody {
	var attached []*RigidBody
	depths := make(map[*RigidBody]int)
	for _, body := range bodies {
		if body.Motion.Parent == nil {
			continue
		}
		attached = append(attached, body)
		depths[body] = parentDepth(body)
	}

	slices.SortStableFunc(attached, func(a, b *RigidBody) int {
		return cmp.Compare(depths[a], depths[b])
	})

	return attached
}

// parentDepth counts the parents above body. A parent loop ends the count.
func parentDepth(body *RigidBody) int {
	depth := 0
	visited := map[*RigidBody]bool{body: true}
	for p := body.Motion.Parent; p != nil && !visited[p]; p = p.Motion.Parent {
		visited[p] = true
		depth++
	}

	return depth
}
