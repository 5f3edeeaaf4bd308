package main

import (
	"fmt"

	"github.com/akmonengine/overlap"
	"github.com/akmonengine/overlap/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

func unitCube() []actor.SubMeshVolume {
	corners := actor.AABB{
		Min: mgl64.Vec3{-0.5, -0.5, -0.5},
		Max: mgl64.Vec3{0.5, 0.5, 0.5},
	}.Corners()

	return []actor.SubMeshVolume{actor.BuildVolume(corners[:])}
}

func cube(label string, position mgl64.Vec3, yawDegrees float64) *actor.RigidBody {
	transform := actor.NewTransform()
	transform.Position = position
	transform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(yawDegrees), mgl64.Vec3{0, 1, 0})

	body := actor.NewRigidBody(transform, unitCube())
	body.Label = label

	return body
}

func printReport(name string, a, b *actor.RigidBody) {
	report := overlap.Classify(a, b)
	fmt.Printf("%s\n", name)
	fmt.Printf("   sphere: %v\n", report.Sphere)
	fmt.Printf("   aabb:   %v\n", report.AABB)
	fmt.Printf("   obb:    %v\n", report.OBB)
	fmt.Printf("   => intersects: %v\n", overlap.Intersects(a, b))
}

func main() {
	origin := cube("origin", mgl64.Vec3{0, 0, 0}, 0)

	// Axis-aligned cubes overlapping by 0.1 on X
	printReport("Aligned cubes", origin, cube("aligned", mgl64.Vec3{0.9, 0, 0}, 0))

	// The rotated cube's envelope reaches the origin cube, its faces do not
	printReport("Rotated cube on the diagonal", origin, cube("rotated", mgl64.Vec3{1, 0, 1}, 45))

	// A cube orbiting the origin crosses a gate half a turn later, with events
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	scene := overlap.NewScene(logger)
	gate := cube("gate", mgl64.Vec3{-3, 0, 0}, 0)
	mover := cube("mover", mgl64.Vec3{3, 0, 0}, 0)
	mover.Motion = actor.Motion{Kind: actor.RotationPrograde, RotateSpeed: 10, OrbitSpeed: 15}
	scene.AddBody(gate)
	scene.AddBody(mover)
	scene.Watch(gate, mover)

	scene.Events.Subscribe(overlap.OVERLAP_ENTER, func(event overlap.Event) {
		a, b := event.Bodies()
		fmt.Printf("🎯 %s entered %s at frame %d\n", a.Label, b.Label, scene.Frame())
	})
	scene.Events.Subscribe(overlap.OVERLAP_EXIT, func(event overlap.Event) {
		a, b := event.Bodies()
		fmt.Printf("🔚 %s left %s at frame %d\n", a.Label, b.Label, scene.Frame())
	})

	for range 24 {
		scene.Step()
	}
}
