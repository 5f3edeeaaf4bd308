package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// RigidBody is a collidable model: a transform and the local volumes of its sub-meshes
type RigidBody struct {
	Label string

	// Motion drives the body when it is stepped by a scene
	Motion Motion

	transform Transform
	world     mgl64.Mat4
	volumes   []SubMeshVolume
}

// NewRigidBody creates a rigid body and computes its world matrix
func NewRigidBody(transform Transform, volumes []SubMeshVolume) *RigidBody {
	rb := &RigidBody{
		volumes: append([]SubMeshVolume(nil), volumes...),
	}
	rb.SetTransform(transform)

	return rb
}

// NewRigidBodyFromMesh builds the volumes from src and creates the body
func NewRigidBodyFromMesh(transform Transform, src MeshSource) (*RigidBody, error) {
	volumes, err := BuildVolumes(src)
	if err != nil {
		return nil, errors.Wrap(err, "building bounding volumes")
	}

	return NewRigidBody(transform, volumes), nil
}

// Transform returns the current transform
func (rb *RigidBody) Transform() Transform {
	return rb.transform
}

// SetTransform replaces the transform and recomputes the world matrix
func (rb *RigidBody) SetTransform(transform Transform) {
	rb.transform = transform
	rb.UpdateWorldMatrix()
}

// UpdateWorldMatrix recomputes the world matrix from the transform
func (rb *RigidBody) UpdateWorldMatrix() {
	rb.world = rb.transform.Matrix()
}

// World returns the world matrix used by the collision stages
func (rb *RigidBody) World() mgl64.Mat4 {
	return rb.world
}

// Volumes returns the local volumes, one per sub-mesh
func (rb *RigidBody) Volumes() []SubMeshVolume {
	return rb.volumes
}

// Rebuild replaces the volumes after the underlying mesh changed.
// On error the previous volumes are kept.
func (rb *RigidBody) Rebuild(src MeshSource) error {
	volumes, err := BuildVolumes(src)
	if err != nil {
		return errors.Wrapf(err, "rebuilding volumes of %q", rb.Label)
	}
	rb.volumes = volumes

	return nil
}
