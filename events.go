package cairn

import (
	"github.com/akmonengine/cairn/actor"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	ON_SPAWN EventType = iota
	ON_PICKUP
	ON_RELEASE
	ON_RETURN
	ON_SETTLE
	ON_TIP_START
	ON_TIP_END
	ON_DEMOTE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Interaction events
type SpawnEvent struct {
	Body *actor.Body
}

func (e SpawnEvent) Type() EventType { return ON_SPAWN }

type PickupEvent struct {
	Body *actor.Body
}

func (e PickupEvent) Type() EventType { return ON_PICKUP }

type ReleaseEvent struct {
	Body *actor.Body
}

func (e ReleaseEvent) Type() EventType { return ON_RELEASE }

type ReturnEvent struct {
	Body *actor.Body
}

func (e ReturnEvent) Type() EventType { return ON_RETURN }

// Simulation events
type SettleEvent struct {
	Body *actor.Body
}

func (e SettleEvent) Type() EventType { return ON_SETTLE }

type TipStartEvent struct {
	Body      *actor.Body
	Pivot     mgl64.Vec2
	Direction int
}

func (e TipStartEvent) Type() EventType { return ON_TIP_START }

type TipEndEvent struct {
	Body *actor.Body
}

func (e TipEndEvent) Type() EventType { return ON_TIP_END }

type DemoteEvent struct {
	Body *actor.Body
}

func (e DemoteEvent) Type() EventType { return ON_DEMOTE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 64),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// Emit buffers an event until the end of the next step
func (e *Events) Emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
