package overlap

import (
	"github.com/akmonengine/overlap/actor"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// Scene steps a set of bodies and watches an explicit list of pairs for overlaps.
// There is no broad phase: only the watched pairs are ever tested.
type Scene struct {
	// List of all rigid bodies in the scene
	Bodies []*actor.RigidBody
	// Pairs tested at every step
	Pairs   []Pair
	Workers int

	Events Events
	Logger *zap.Logger

	frame int
}

// NewScene creates an empty scene. A nil logger disables logging.
func NewScene(logger *zap.Logger) *Scene {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scene{
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
		Logger:  logger,
	}
}

// AddBody adds a rigid body to the scene
func (s *Scene) AddBody(body *actor.RigidBody) {
	s.Bodies = append(s.Bodies, body)
}

// RemoveBody removes a rigid body, the pairs it belongs to and its tracked overlaps
func (s *Scene) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range s.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		s.Bodies = append(s.Bodies[:k], s.Bodies[k+1:]...)
	}

	n := 0
	for _, p := range s.Pairs {
		if p.BodyA != body && p.BodyB != body {
			s.Pairs[n] = p
			n++
		}
	}
	s.Pairs = s.Pairs[:n]

	s.Events.forget(body)
}

// Watch registers a pair to test at every step. Watching a body against itself or
// the same pair twice is ignored.
func (s *Scene) Watch(bodyA, bodyB *actor.RigidBody) {
	if bodyA == nil || bodyB == nil || bodyA == bodyB {
		return
	}

	key := makePairKey(bodyA, bodyB)
	for _, p := range s.Pairs {
		if makePairKey(p.BodyA, p.BodyB) == key {
			return
		}
	}
	s.Pairs = append(s.Pairs, Pair{BodyA: bodyA, BodyB: bodyB})
}

func (s *Scene) logger() *zap.Logger {
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	return s.Logger
}

// Frame returns the number of steps run so far
func (s *Scene) Frame() int {
	return s.frame
}

// Step advances every body's motion, then tests the watched pairs and dispatches
// the overlap events. It returns the dispatched events.
func (s *Scene) Step() []Event {
	s.Workers = max(DEFAULT_WORKERS, s.Workers)
	s.frame++

	s.move()

	results := s.Detect()
	s.Events.recordOverlaps(results)
	events := s.Events.flush()

	for _, event := range events {
		if event.Type() == OVERLAP_STAY {
			continue
		}
		a, b := event.Bodies()
		s.logger().Info("overlap",
			zap.Int("frame", s.frame),
			zap.Stringer("event", event.Type()),
			zap.String("bodyA", a.Label),
			zap.String("bodyB", b.Label),
		)
	}

	return events
}

// Detect tests every watched pair, without moving the bodies
func (s *Scene) Detect() []PairResult {
	results := make([]PairResult, 0, len(s.Pairs))
	for r := range QueryPairs(feedPairs(s.Pairs), s.Workers) {
		if rejected, ok := r.Report.FirstRejection(); ok {
			s.logger().Debug("pair rejected",
				zap.String("bodyA", r.BodyA.Label),
				zap.String("bodyB", r.BodyB.Label),
				zap.Stringer("stage", rejected),
			)
		}
		results = append(results, r)
	}

	return results
}

// move steps free bodies in parallel, then bodies orbiting a parent, parents first
func (s *Scene) move() {
	free := make([]*actor.RigidBody, 0, len(s.Bodies))
	for _, body := range s.Bodies {
		if body.Motion.Parent == nil {
			free = append(free, body)
		}
	}

	task(s.Workers, free, func(body *actor.RigidBody) {
		body.Step()
	})

	for _, body := range actor.ParentOrder(s.Bodies) {
		body.Step()
	}
}
