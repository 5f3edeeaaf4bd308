package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform represents the placement of a body in 3D space.
// The world matrix applies Scale first, then Rotation, then Position.
// A zero Scale yields a singular matrix, which the collision stages do not support.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    1,
	}
}

// Matrix composes the affine world matrix T * R * S.
// Matrix multiplication is not commutative: swapping the factors changes the result
// as soon as the scale or the translation is not neutral.
func (t Transform) Matrix() mgl64.Mat4 {
	s := mgl64.Scale3D(t.Scale, t.Scale, t.Scale)
	r := t.Rotation.Normalize().Mat4()
	tr := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())

	return tr.Mul4(r).Mul4(s)
}

// TransformPoint applies an affine matrix to a point (w = 1)
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// MaxAxisScale returns the length of the longest basis vector of the matrix.
// For a uniform scale this is exactly the scale factor.
func MaxAxisScale(m mgl64.Mat4) float64 {
	maxSqr := 0.0
	for i := 0; i < 3; i++ {
		maxSqr = max(maxSqr, m.Col(i).Vec3().LenSqr())
	}

	return math.Sqrt(maxSqr)
}
