package overlap

import (
	"unsafe"

	"github.com/akmonengine/overlap/actor"
)

const (
	OVERLAP_ENTER EventType = iota
	OVERLAP_STAY
	OVERLAP_EXIT
)

type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.RigidBody) pairKey {
	ptrA := uintptr(unsafe.Pointer(bodyA))
	ptrB := uintptr(unsafe.Pointer(bodyB))

	if ptrB < ptrA {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case OVERLAP_ENTER:
		return "enter"
	case OVERLAP_STAY:
		return "stay"
	case OVERLAP_EXIT:
		return "exit"
	}
	return "unknown"
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
	Bodies() (*actor.RigidBody, *actor.RigidBody)
}

// OverlapEnterEvent is sent the first step a pair overlaps
type OverlapEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e OverlapEnterEvent) Type() EventType { return OVERLAP_ENTER }
func (e OverlapEnterEvent) Bodies() (*actor.RigidBody, *actor.RigidBody) {
	return e.BodyA, e.BodyB
}

// OverlapStayEvent is sent every following step the pair still overlaps
type OverlapStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e OverlapStayEvent) Type() EventType { return OVERLAP_STAY }
func (e OverlapStayEvent) Bodies() (*actor.RigidBody, *actor.RigidBody) {
	return e.BodyA, e.BodyB
}

// OverlapExitEvent is sent the first step a pair stops overlapping
type OverlapExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e OverlapExitEvent) Type() EventType { return OVERLAP_EXIT }
func (e OverlapExitEvent) Bodies() (*actor.RigidBody, *actor.RigidBody) {
	return e.BodyA, e.BodyB
}

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Overlap tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordOverlaps marks the overlapping pairs of the current step
func (e *Events) recordOverlaps(results []PairResult) {
	if e.currentActivePairs == nil {
		e.currentActivePairs = make(map[pairKey]bool)
		e.previousActivePairs = make(map[pairKey]bool)
	}

	for _, r := range results {
		if r.Overlapping() {
			e.currentActivePairs[makePairKey(r.BodyA, r.BodyB)] = true
		}
	}
}

// forget drops every tracked pair involving body
func (e *Events) forget(body *actor.RigidBody) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.currentActivePairs, pair)
		}
	}
}

// processOverlapEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processOverlapEvents() {
	for pair := range e.currentActivePairs {
		if e.previousActivePairs[pair] {
			e.buffer = append(e.buffer, OverlapStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, OverlapEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	for pair := range e.previousActivePairs {
		if !e.currentActivePairs[pair] {
			e.buffer = append(e.buffer, OverlapExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer.
// The flushed events are returned in the order they were dispatched.
func (e *Events) flush() []Event {
	e.processOverlapEvents()

	flushed := make([]Event, len(e.buffer))
	copy(flushed, e.buffer)

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]

	return flushed
}
