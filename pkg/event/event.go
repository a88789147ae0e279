// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Battle event types
const (
	BattleStarted Type = "battle_started"
	BattleEnded   Type = "battle_ended"
	ShotFired     Type = "shot_fired"
	TankHit       Type = "tank_hit"
	TankDestroyed Type = "tank_destroyed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe; Cancel removes the handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// Copy so a Publish iterating the old slice is unaffected.
		next := make([]subscriber, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, eventType)
		} else {
			b.handlers[eventType] = next
		}
		return
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// ShotEvent is published when a tank fires
type ShotEvent struct {
	BaseEvent
	TankID uint64
	ShotID uint64
	Side   int
	X, Y   float64
}

// NewShotEvent creates a shot fired event
func NewShotEvent(source interface{}, tankID, shotID uint64, side int, x, y float64) *ShotEvent {
	return &ShotEvent{
		BaseEvent: BaseEvent{
			EventType: ShotFired,
			Source:    source,
		},
		TankID: tankID,
		ShotID: shotID,
		Side:   side,
		X:      x,
		Y:      y,
	}
}

// HitEvent is published when a shot strikes a tank
type HitEvent struct {
	BaseEvent
	ShotID   uint64
	TargetID uint64
	Side     int // side of the target
	Damage   int
	Health   int // target health after the hit
}

// NewHitEvent creates a hit event; eventType is TankHit or TankDestroyed
func NewHitEvent(eventType Type, source interface{}, shotID, targetID uint64, side, damage, health int) *HitEvent {
	return &HitEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShotID:   shotID,
		TargetID: targetID,
		Side:     side,
		Damage:   damage,
		Health:   health,
	}
}

// BattleEvent marks the start or end of a battle
type BattleEvent struct {
	BaseEvent
	BattleID string
	Winner   int // meaningful for BattleEnded only
	Tick     uint64
}

// NewBattleEvent creates a battle lifecycle event
func NewBattleEvent(eventType Type, source interface{}, battleID string, winner int, tick uint64) *BattleEvent {
	return &BattleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BattleID: battleID,
		Winner:   winner,
		Tick:     tick,
	}
}
