// Package config loads scene descriptions from YAML files and builds them into
// overlap.Scene values.
package config

import (
	"os"

	"github.com/akmonengine/overlap"
	"github.com/akmonengine/overlap/actor"
	"github.com/akmonengine/overlap/mesh"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames  = 360
	DefaultWorkers = overlap.DEFAULT_WORKERS
	DefaultScale   = 1.0
)

// Part types
const (
	PartBox      = "box"
	PartSphere   = "sphere"
	PartCylinder = "cylinder"
)

// Vec3 is written as a 3 element sequence in YAML
type Vec3 [3]float64

func (v Vec3) mgl() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

// Scene is the file representation of a scene
type Scene struct {
	Workers int `yaml:"workers"`
	Frames  int `yaml:"frames"`
	// Cells is the marching cubes resolution used for every part
	Cells  int    `yaml:"cells"`
	Bodies []Body `yaml:"bodies"`
	// Watch lists the pairs of body names tested at every step
	Watch [][2]string `yaml:"watch"`
	// WatchAll watches every pair of bodies, in addition to Watch
	WatchAll bool `yaml:"watchAll"`
}

type Body struct {
	Name     string `yaml:"name"`
	Position Vec3   `yaml:"position"`
	// Rotation holds Euler angles in degrees, applied in X, Y, Z order
	Rotation Vec3    `yaml:"rotation"`
	Scale    float64 `yaml:"scale"`
	Motion   Motion  `yaml:"motion"`
	Parts    []Part  `yaml:"parts"`
}

type Motion struct {
	Kind        string  `yaml:"kind"`
	RotateSpeed float64 `yaml:"rotateSpeed"`
	OrbitSpeed  float64 `yaml:"orbitSpeed"`
	Parent      string  `yaml:"parent"`
	Offset      Vec3    `yaml:"offset"`
}

type Part struct {
	Type   string  `yaml:"type"`
	Name   string  `yaml:"name"`
	Center Vec3    `yaml:"center"`
	Size   Vec3    `yaml:"size"`
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

// Load reads and parses a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scene file")
	}

	scene, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	return scene, nil
}

// Parse decodes a scene, applies the defaults and validates it
func Parse(data []byte) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	scene.applyDefaults()

	if err := scene.Validate(); err != nil {
		return nil, err
	}

	return &scene, nil
}

func (s *Scene) applyDefaults() {
	if s.Workers <= 0 {
		s.Workers = DefaultWorkers
	}
	if s.Frames <= 0 {
		s.Frames = DefaultFrames
	}
	if s.Cells <= 0 {
		s.Cells = mesh.DefaultCells
	}
	for i := range s.Bodies {
		if s.Bodies[i].Scale == 0 {
			s.Bodies[i].Scale = DefaultScale
		}
		if s.Bodies[i].Motion.Kind == "" {
			s.Bodies[i].Motion.Kind = actor.RotationNone.String()
		}
	}
}

// Validate reports every problem of the scene at once
func (s *Scene) Validate() error {
	var err error

	names := make(map[string]bool, len(s.Bodies))
	for i, body := range s.Bodies {
		if body.Name == "" {
			err = multierr.Append(err, errors.Errorf("body %d: missing name", i))
		} else if names[body.Name] {
			err = multierr.Append(err, errors.Errorf("body %q: duplicate name", body.Name))
		}
		names[body.Name] = true
	}

	for _, body := range s.Bodies {
		err = multierr.Append(err, body.validate(names))
	}

	err = multierr.Append(err, s.validateParents())

	for i, pair := range s.Watch {
		for _, name := range pair {
			if !names[name] {
				err = multierr.Append(err, errors.Errorf("watch %d: unknown body %q", i, name))
			}
		}
		if pair[0] == pair[1] {
			err = multierr.Append(err, errors.Errorf("watch %d: body %q paired with itself", i, pair[0]))
		}
	}

	return err
}

// validateParents reports bodies whose chain of parents comes back to them
func (s *Scene) validateParents() error {
	parents := make(map[string]string, len(s.Bodies))
	for _, body := range s.Bodies {
		parents[body.Name] = body.Motion.Parent
	}

	var err error
	for _, body := range s.Bodies {
		if body.Motion.Parent == "" || body.Motion.Parent == body.Name {
			continue
		}

		name := body.Motion.Parent
		for range len(s.Bodies) {
			if name == "" || name == body.Name {
				break
			}
			name = parents[name]
		}
		if name == body.Name {
			err = multierr.Append(err, errors.Errorf("body %q: parent loop through %q", body.Name, body.Motion.Parent))
		}
	}

	return err
}

func (b Body) validate(names map[string]bool) error {
	var err error

	if b.Scale <= 0 {
		err = multierr.Append(err, errors.Errorf("body %q: scale must be positive, got %g", b.Name, b.Scale))
	}
	if len(b.Parts) == 0 {
		err = multierr.Append(err, errors.Errorf("body %q: no parts", b.Name))
	}
	if _, ok := actor.ParseRotationKind(b.Motion.Kind); !ok {
		err = multierr.Append(err, errors.Errorf("body %q: unknown motion kind %q", b.Name, b.Motion.Kind))
	}
	if parent := b.Motion.Parent; parent != "" {
		if parent == b.Name {
			err = multierr.Append(err, errors.Errorf("body %q: orbits itself", b.Name))
		} else if !names[parent] {
			err = multierr.Append(err, errors.Errorf("body %q: unknown parent %q", b.Name, parent))
		}
	}

	for i, part := range b.Parts {
		if perr := part.validate(); perr != nil {
			err = multierr.Append(err, errors.Wrapf(perr, "body %q part %d", b.Name, i))
		}
	}

	return err
}

func (p Part) validate() error {
	switch p.Type {
	case PartBox:
		for axis := 0; axis < 3; axis++ {
			if p.Size[axis] <= 0 {
				return errors.Errorf("box size must be positive on every axis, got %v", p.Size)
			}
		}
	case PartSphere:
		if p.Radius <= 0 {
			return errors.Errorf("sphere radius must be positive, got %g", p.Radius)
		}
	case PartCylinder:
		if p.Radius <= 0 || p.Height <= 0 {
			return errors.Errorf("cylinder radius and height must be positive, got %g and %g", p.Radius, p.Height)
		}
	default:
		return errors.Errorf("unknown part type %q", p.Type)
	}

	return nil
}

func (p Part) build() (mesh.Part, error) {
	switch p.Type {
	case PartBox:
		return mesh.Box(p.Name, p.Size.mgl(), p.Center.mgl())
	case PartSphere:
		return mesh.Sphere(p.Name, p.Radius, p.Center.mgl())
	case PartCylinder:
		return mesh.Cylinder(p.Name, p.Height, p.Radius, p.Center.mgl())
	}

	return mesh.Part{}, errors.Errorf("unknown part type %q", p.Type)
}

// Transform converts the file placement of a body into an actor.Transform
func (b Body) Transform() actor.Transform {
	r := b.Rotation.mgl()

	return actor.Transform{
		Position: b.Position.mgl(),
		Rotation: mgl64.AnglesToQuat(
			mgl64.DegToRad(r.X()),
			mgl64.DegToRad(r.Y()),
			mgl64.DegToRad(r.Z()),
			mgl64.XYZ,
		),
		Scale: b.Scale,
	}
}

// Build tessellates every body and assembles the scene
func (s *Scene) Build(logger *zap.Logger) (*overlap.Scene, error) {
	scene := overlap.NewScene(logger)
	scene.Workers = s.Workers

	bodies := make(map[string]*actor.RigidBody, len(s.Bodies))
	for _, b := range s.Bodies {
		model := mesh.Model{Cells: s.Cells}
		for i, p := range b.Parts {
			part, err := p.build()
			if err != nil {
				return nil, errors.Wrapf(err, "body %q part %d", b.Name, i)
			}
			model.Parts = append(model.Parts, part)
		}

		body, err := actor.NewRigidBodyFromMesh(b.Transform(), model)
		if err != nil {
			return nil, errors.Wrapf(err, "body %q", b.Name)
		}
		body.Label = b.Name

		kind, _ := actor.ParseRotationKind(b.Motion.Kind)
		body.Motion = actor.Motion{
			Kind:        kind,
			RotateSpeed: b.Motion.RotateSpeed,
			OrbitSpeed:  b.Motion.OrbitSpeed,
			Offset:      b.Motion.Offset.mgl(),
		}

		bodies[b.Name] = body
		scene.AddBody(body)
		scene.Logger.Debug("body built",
			zap.String("body", b.Name),
			zap.Int("subMeshes", len(body.Volumes())),
		)
	}

	for _, b := range s.Bodies {
		if b.Motion.Parent != "" {
			bodies[b.Name].Motion.Parent = bodies[b.Motion.Parent]
		}
	}
	for _, body := range actor.ParentOrder(scene.Bodies) {
		body.Place()
	}

	for _, pair := range s.Watch {
		scene.Watch(bodies[pair[0]], bodies[pair[1]])
	}
	if s.WatchAll {
		for i := range scene.Bodies {
			for j := i + 1; j < len(scene.Bodies); j++ {
				scene.Watch(scene.Bodies[i], scene.Bodies[j])
			}
		}
	}

	return scene, nil
}
