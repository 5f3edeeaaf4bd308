package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// SubMesh is the build input for one segment of a model: its local-space vertices
// and, when the mesh provides one, a precomputed bounding sphere.
type SubMesh struct {
	Vertices []mgl64.Vec3
	Sphere   *Sphere
}

// MeshSource provides the sub-meshes of a model. It is queried once per build.
type MeshSource interface {
	SubMeshes() ([]SubMesh, error)
}

// BuildVolume computes the local volumes of a vertex set.
// An empty set yields a zero box and a zero sphere at the origin.
func BuildVolume(vertices []mgl64.Vec3) SubMeshVolume {
	return SubMeshVolume{
		sphere: SphereFromPoints(vertices),
		box:    AABBFromPoints(vertices),
	}
}

// BuildVolumeWithSphere computes the local box of a vertex set and keeps the
// given sphere. A nil sphere is derived from the vertices.
func BuildVolumeWithSphere(vertices []mgl64.Vec3, sphere *Sphere) SubMeshVolume {
	volume := BuildVolume(vertices)
	if sphere != nil {
		volume.sphere = *sphere
	}

	return volume
}

// NewSubMeshVolume assembles a volume from known bounds, for callers that already
// store boxes and spheres instead of vertices. Min and Max are reordered per axis
// if needed.
func NewSubMeshVolume(box AABB, sphere Sphere) SubMeshVolume {
	return SubMeshVolume{
		sphere: sphere,
		box:    AABBFromPoints([]mgl64.Vec3{box.Min, box.Max}),
	}
}

// BuildVolumes builds one volume per sub-mesh, in the order of the source.
func BuildVolumes(src MeshSource) ([]SubMeshVolume, error) {
	if src == nil {
		return nil, errors.New("nil mesh source")
	}

	subMeshes, err := src.SubMeshes()
	if err != nil {
		return nil, errors.Wrap(err, "reading sub-meshes")
	}

	volumes := make([]SubMeshVolume, 0, len(subMeshes))
	for _, subMesh := range subMeshes {
		volumes = append(volumes, BuildVolumeWithSphere(subMesh.Vertices, subMesh.Sphere))
	}

	return volumes, nil
}

// StaticMesh is a MeshSource over sub-meshes already in memory
type StaticMesh []SubMesh

func (m StaticMesh) SubMeshes() ([]SubMesh, error) {
	return m, nil
}
