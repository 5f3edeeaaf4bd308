package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Sphere is a bounding sphere
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// SphereFromPoints encloses points in a sphere centered on their bounding box.
// The radius is the distance to the farthest point, so the sphere is not minimal
// but always contains every point.
func SphereFromPoints(points []mgl64.Vec3) Sphere {
	if len(points) == 0 {
		return Sphere{}
	}

	center := AABBFromPoints(points).Center()
	maxSqr := 0.0
	for _, p := range points {
		maxSqr = max(maxSqr, p.Sub(center).LenSqr())
	}

	return Sphere{Center: center, Radius: math.Sqrt(maxSqr)}
}

// Transform moves the center by m and scales the radius by the largest axis
// scale of m. Non-uniform scales produce a conservative sphere.
func (s Sphere) Transform(m mgl64.Mat4) Sphere {
	return Sphere{
		Center: TransformPoint(m, s.Center),
		Radius: s.Radius * MaxAxisScale(m),
	}
}

// Overlaps checks if two spheres overlap, touching spheres included
func (s Sphere) Overlaps(other Sphere) bool {
	return s.Center.Sub(other.Center).Len() <= s.Radius+other.Radius
}
