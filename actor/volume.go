package actor

// SubMeshVolume holds the local bounding volumes of one sub-mesh.
// It is built once by BuildVolume and cannot be modified afterwards.
type SubMeshVolume struct {
	sphere Sphere
	box    AABB
}

// Sphere returns the local bounding sphere
func (v SubMeshVolume) Sphere() Sphere {
	return v.sphere
}

// Box returns the local axis-aligned bounding box
func (v SubMeshVolume) Box() AABB {
	return v.box
}
