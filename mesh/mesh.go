// Package mesh provides procedural mesh sources: solids described as signed distance
// fields with github.com/deadsy/sdfx, tessellated with marching cubes into the
// per-sub-mesh vertex sets consumed by actor.BuildVolumes.
package mesh

import (
	"github.com/akmonengine/overlap/actor"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// DefaultCells is the marching cubes resolution along the longest side of a part
const DefaultCells = 32

// Part is one sub-mesh of a model
type Part struct {
	Name  string
	Solid sdf.SDF3

	// Sphere is the exact local bounding sphere, when the primitive has one
	Sphere *actor.Sphere
}

// Model is a MeshSource made of procedural parts, one sub-mesh per part
type Model struct {
	Parts []Part
	Cells int
}

// Box creates a box part of the given full size, centered on center
func Box(name string, size, center mgl64.Vec3) (Part, error) {
	s, err := sdf.Box3D(v3.Vec{X: size.X(), Y: size.Y(), Z: size.Z()}, 0)
	if err != nil {
		return Part{}, errors.Wrapf(err, "box part %q", name)
	}

	return Part{Name: name, Solid: translate(s, center)}, nil
}

// Sphere creates a sphere part. Its bounding sphere is exact.
func Sphere(name string, radius float64, center mgl64.Vec3) (Part, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return Part{}, errors.Wrapf(err, "sphere part %q", name)
	}

	return Part{
		Name:   name,
		Solid:  translate(s, center),
		Sphere: &actor.Sphere{Center: center, Radius: radius},
	}, nil
}

// Cylinder creates a cylinder part along the Z axis
func Cylinder(name string, height, radius float64, center mgl64.Vec3) (Part, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return Part{}, errors.Wrapf(err, "cylinder part %q", name)
	}

	return Part{Name: name, Solid: translate(s, center)}, nil
}

func translate(s sdf.SDF3, offset mgl64.Vec3) sdf.SDF3 {
	if offset == (mgl64.Vec3{}) {
		return s
	}
	m := sdf.Translate3d(v3.Vec{X: offset.X(), Y: offset.Y(), Z: offset.Z()})

	return sdf.Transform3D(s, m)
}

// SubMeshes tessellates every part
func (m Model) SubMeshes() ([]actor.SubMesh, error) {
	cells := m.Cells
	if cells <= 0 {
		cells = DefaultCells
	}

	subMeshes := make([]actor.SubMesh, 0, len(m.Parts))
	for i, part := range m.Parts {
		if part.Solid == nil {
			return nil, errors.Errorf("part %d (%q) has no solid", i, part.Name)
		}

		subMeshes = append(subMeshes, actor.SubMesh{
			Vertices: Vertices(part.Solid, cells),
			Sphere:   part.Sphere,
		})
	}

	return subMeshes, nil
}

// Vertices returns the vertices of the triangles approximating the surface of s
func Vertices(s sdf.SDF3, cells int) []mgl64.Vec3 {
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	vertices := make([]mgl64.Vec3, 0, len(triangles)*3)
	for _, tri := range triangles {
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, mgl64.Vec3{v.X, v.Y, v.Z})
		}
	}

	return vertices
}
