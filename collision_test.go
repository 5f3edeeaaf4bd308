package overlap

import (
	"math/rand"
	"testing"

	"github.com/akmonengine/overlap/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Test helper functions
func createBox(position mgl64.Vec3, halfExtents mgl64.Vec3, yawDegrees float64) *actor.RigidBody {
	corners := actor.AABB{Min: halfExtents.Mul(-1), Max: halfExtents}.Corners()

	return actor.NewRigidBody(
		actor.Transform{
			Position: position,
			Rotation: mgl64.QuatRotate(mgl64.DegToRad(yawDegrees), mgl64.Vec3{0, 1, 0}),
			Scale:    1,
		},
		[]actor.SubMeshVolume{actor.BuildVolume(corners[:])},
	)
}

func createUnitCube(position mgl64.Vec3) *actor.RigidBody {
	return createBox(position, mgl64.Vec3{0.5, 0.5, 0.5}, 0)
}

func createSphere(position mgl64.Vec3, radius float64) *actor.RigidBody {
	r := mgl64.Vec3{radius, radius, radius}

	return actor.NewRigidBody(
		actor.Transform{Position: position, Rotation: mgl64.QuatIdent(), Scale: 1},
		[]actor.SubMeshVolume{
			actor.NewSubMeshVolume(actor.AABB{Min: r.Mul(-1), Max: r}, actor.Sphere{Radius: radius}),
		},
	)
}

// =============================================================================
// Concrete scenarios
// =============================================================================

func TestScenarioA_TouchingSpheres(t *testing.T) {
	a := createSphere(mgl64.Vec3{0, 0, 0}, 0.5)
	b := createSphere(mgl64.Vec3{1, 0, 0}, 0.5)

	if !AnySphereOverlap(a, b) {
		t.Error("spheres at distance 1.0 with radii 0.5 should overlap (boundary inclusive)")
	}
	if !AnySphereOverlap(b, a) {
		t.Error("sphere stage should be symmetric")
	}
}

func TestScenarioB_DistantSpheres(t *testing.T) {
	a := createSphere(mgl64.Vec3{0, 0, 0}, 0.5)
	b := createSphere(mgl64.Vec3{3, 0, 0}, 0.5)

	if AnySphereOverlap(a, b) {
		t.Error("spheres 3.0 apart should not overlap")
	}
	if Intersects(a, b) {
		t.Error("hierarchy should reject the pair at the sphere stage")
	}
}

func TestScenarioC_AlignedCubes(t *testing.T) {
	a := createUnitCube(mgl64.Vec3{0, 0, 0})
	b := createUnitCube(mgl64.Vec3{0.9, 0, 0})

	if !AnyAABBOverlap(a, b) {
		t.Error("AABB stage should detect the 0.1 overlap on X")
	}
	if !AnyOBBOverlap(a, b) {
		t.Error("OBB stage should find no separating axis for aligned overlapping cubes")
	}
	if !Intersects(a, b) {
		t.Error("hierarchy should report an intersection")
	}
}

func TestScenarioD_RotatedCubeOnDiagonal(t *testing.T) {
	a := createUnitCube(mgl64.Vec3{0, 0, 0})
	b := createBox(mgl64.Vec3{1, 0, 1}, mgl64.Vec3{0.5, 0.5, 0.5}, 45)

	report := Classify(a, b)
	if !report.Sphere {
		t.Error("sphere stage should pass")
	}
	if !report.AABB {
		t.Error("AABB stage should report the loose envelopes overlapping")
	}
	if report.OBB {
		t.Error("OBB stage should separate the rotated cube")
	}
	if Intersects(a, b) {
		t.Error("hierarchy should report no intersection")
	}

	stage, rejected := report.FirstRejection()
	if !rejected || stage != STAGE_OBB {
		t.Errorf("expected rejection at %v, got %v (rejected=%v)", STAGE_OBB, stage, rejected)
	}
}

// =============================================================================
// Properties
// =============================================================================

func TestSeparation_AlongEachAxis(t *testing.T) {
	halfA := mgl64.Vec3{0.5, 0.5, 0.5}
	halfB := mgl64.Vec3{1, 0.25, 0.75}

	tests := []struct {
		name   string
		offset mgl64.Vec3
	}{
		{"X positive", mgl64.Vec3{1.6, 0, 0}},
		{"X negative", mgl64.Vec3{-1.6, 0, 0}},
		{"Y positive", mgl64.Vec3{0, 0.8, 0}},
		{"Y negative", mgl64.Vec3{0, -0.8, 0}},
		{"Z positive", mgl64.Vec3{0, 0, 1.3}},
		{"Z negative", mgl64.Vec3{0, 0, -1.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := createBox(mgl64.Vec3{0, 0, 0}, halfA, 0)
			b := createBox(tt.offset, halfB, 0)

			if AnyAABBOverlap(a, b) {
				t.Error("AABB stage should separate the boxes")
			}
			if AnyOBBOverlap(a, b) {
				t.Error("OBB stage should separate the boxes")
			}
			if Intersects(a, b) {
				t.Error("hierarchy should report no intersection")
			}
		})
	}
}

func TestRotationalDetection_AABBFalsePositive(t *testing.T) {
	// Slide the rotated cube along the diagonal: somewhere the envelopes overlap
	// while the true boxes do not.
	a := createUnitCube(mgl64.Vec3{0, 0, 0})

	found := false
	for d := 0.5; d <= 1.5; d += 0.05 {
		b := createBox(mgl64.Vec3{d, 0, d}, mgl64.Vec3{0.5, 0.5, 0.5}, 45)
		if AnyAABBOverlap(a, b) && !AnyOBBOverlap(a, b) {
			found = true
			break
		}
	}

	if !found {
		t.Error("expected a configuration where AABB overlaps and OBB separates")
	}
}

func TestHierarchy_Monotonicity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		a := createBox(
			mgl64.Vec3{rng.Float64()*4 - 2, rng.Float64()*4 - 2, rng.Float64()*4 - 2},
			mgl64.Vec3{0.1 + rng.Float64(), 0.1 + rng.Float64(), 0.1 + rng.Float64()},
			rng.Float64()*360,
		)
		b := createBox(
			mgl64.Vec3{rng.Float64()*4 - 2, rng.Float64()*4 - 2, rng.Float64()*4 - 2},
			mgl64.Vec3{0.1 + rng.Float64(), 0.1 + rng.Float64(), 0.1 + rng.Float64()},
			rng.Float64()*360,
		)

		report := Classify(a, b)
		got := Intersects(a, b)

		if got != report.Intersects() {
			t.Fatalf("case %d: Intersects=%v but stages=%+v", i, got, report)
		}
		if got && (!report.Sphere || !report.AABB || !report.OBB) {
			t.Fatalf("case %d: Intersects=true with a rejecting stage %+v", i, report)
		}
		if report.OBB && !report.AABB {
			t.Fatalf("case %d: OBB overlap outside of the AABB envelope %+v", i, report)
		}
	}
}

func TestIntersects_Idempotent(t *testing.T) {
	a := createUnitCube(mgl64.Vec3{0, 0, 0})
	b := createBox(mgl64.Vec3{1, 0.2, 1}, mgl64.Vec3{0.5, 0.5, 0.5}, 45)
	c := createBox(mgl64.Vec3{0.7, 0, 0.1}, mgl64.Vec3{0.5, 0.5, 0.5}, 30)

	worldA := a.World()
	volumesA := append([]actor.SubMeshVolume(nil), a.Volumes()...)

	for _, other := range []*actor.RigidBody{b, c} {
		first := Classify(a, other)
		for i := 0; i < 5; i++ {
			if got := Classify(a, other); got != first {
				t.Fatalf("run %d: got %+v, first run gave %+v", i, got, first)
			}
			if got := Intersects(a, other); got != first.Intersects() {
				t.Fatalf("run %d: Intersects changed to %v", i, got)
			}
		}
	}

	if a.World() != worldA {
		t.Error("queries should not modify the world matrix")
	}
	for i, v := range a.Volumes() {
		if v != volumesA[i] {
			t.Errorf("volume %d modified by the queries", i)
		}
	}
}

func TestStages_Scaled(t *testing.T) {
	a := createUnitCube(mgl64.Vec3{0, 0, 0})

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected bool
	}{
		{"Scaled cube reaching the unit cube", mgl64.Vec3{1.4, 0, 0}, true},
		{"Scaled cube beyond the unit cube", mgl64.Vec3{1.6, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := createUnitCube(tt.position)
			transform := b.Transform()
			transform.Scale = 2
			b.SetTransform(transform)

			if !AnySphereOverlap(a, b) {
				t.Error("scaled spheres should overlap")
			}
			if got := AnyAABBOverlap(a, b); got != tt.expected {
				t.Errorf("AnyAABBOverlap = %v, expected %v", got, tt.expected)
			}
			if got := AnyOBBOverlap(a, b); got != tt.expected {
				t.Errorf("AnyOBBOverlap = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// =============================================================================
// Sub-meshes
// =============================================================================

func TestStages_IndependentWitnessPairs(t *testing.T) {
	// Sub-mesh 0 carries the box, sub-mesh 1 a far tiny box with a huge sphere:
	// the sphere stage is satisfied by sub-mesh 1, the box stages by sub-mesh 0.
	unit := actor.AABB{Min: mgl64.Vec3{-0.5, -0.5, -0.5}, Max: mgl64.Vec3{0.5, 0.5, 0.5}}
	far := actor.AABB{Min: mgl64.Vec3{9.9, -0.1, -0.1}, Max: mgl64.Vec3{10.1, 0.1, 0.1}}

	a := actor.NewRigidBody(actor.NewTransform(), []actor.SubMeshVolume{
		actor.NewSubMeshVolume(unit, actor.Sphere{Center: mgl64.Vec3{10, 0, 0}, Radius: 0.1}),
		actor.NewSubMeshVolume(far, actor.Sphere{Center: mgl64.Vec3{10, 0, 0}, Radius: 20}),
	})
	b := createUnitCube(mgl64.Vec3{0.9, 0, 0})

	report := Classify(a, b)
	if !report.Sphere || !report.AABB || !report.OBB {
		t.Fatalf("every stage should find some overlapping pair, got %+v", report)
	}
	if !Intersects(a, b) {
		t.Error("hierarchy should accept the pair")
	}

	// Without the far sub-mesh, the misplaced sphere rejects the pair even though
	// the boxes intersect.
	single := actor.NewRigidBody(actor.NewTransform(), a.Volumes()[:1])
	if AnySphereOverlap(single, b) {
		t.Error("misplaced sphere should not overlap")
	}
	if !AnyOBBOverlap(single, b) {
		t.Error("boxes should still intersect")
	}
	if Intersects(single, b) {
		t.Error("hierarchy should stop at the sphere stage")
	}
}

func TestStages_NoVolumes(t *testing.T) {
	empty := actor.NewRigidBody(actor.NewTransform(), nil)
	cube := createUnitCube(mgl64.Vec3{0, 0, 0})

	if AnySphereOverlap(empty, cube) || AnyAABBOverlap(empty, cube) || AnyOBBOverlap(empty, cube) {
		t.Error("a body without sub-meshes overlaps nothing")
	}
	if Intersects(cube, empty) {
		t.Error("a body without sub-meshes overlaps nothing")
	}
}

func TestStages_EmptyVertexSet(t *testing.T) {
	point := actor.NewRigidBody(actor.NewTransform(), []actor.SubMeshVolume{actor.BuildVolume(nil)})

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected bool
	}{
		{"Degenerate volume inside a cube", mgl64.Vec3{0.2, 0, 0}, true},
		{"Degenerate volume outside a cube", mgl64.Vec3{3, 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cube := createUnitCube(tt.position)
			if got := Intersects(point, cube); got != tt.expected {
				t.Errorf("Intersects = %v, expected %v", got, tt.expected)
			}
		})
	}
}

// =============================================================================
// Report
// =============================================================================

func TestReport_FirstRejection(t *testing.T) {
	tests := []struct {
		name     string
		report   Report
		stage    Stage
		rejected bool
	}{
		{"All stages pass", Report{true, true, true}, 0, false},
		{"Sphere rejects", Report{false, true, true}, STAGE_SPHERE, true},
		{"AABB rejects", Report{true, false, true}, STAGE_AABB, true},
		{"OBB rejects", Report{true, true, false}, STAGE_OBB, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, rejected := tt.report.FirstRejection()
			if rejected != tt.rejected || stage != tt.stage {
				t.Errorf("FirstRejection() = (%v, %v), expected (%v, %v)", stage, rejected, tt.stage, tt.rejected)
			}
			if tt.report.Intersects() == tt.rejected {
				t.Errorf("Intersects() = %v with rejected = %v", tt.report.Intersects(), tt.rejected)
			}
		})
	}
}

func BenchmarkIntersects(b *testing.B) {
	a := createUnitCube(mgl64.Vec3{0, 0, 0})
	c := createBox(mgl64.Vec3{0.7, 0, 0.1}, mgl64.Vec3{0.5, 0.5, 0.5}, 30)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Intersects(a, c)
	}
}
