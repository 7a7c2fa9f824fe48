package combat

import (
	"time"

	"github.com/lox/stonefight/internal/card"
)

// EventType represents a fight event type with type safety
type EventType string

const (
	EventTypeFightStarted  EventType = "fight_started"
	EventTypeRoundStarted  EventType = "round_started"
	EventTypeCardSelected  EventType = "card_selected"
	EventTypeCardPlayed    EventType = "card_played"
	EventTypeRoundResolved EventType = "round_resolved"
	EventTypeFightEnded    EventType = "fight_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything published while a fight runs.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// FightStartedEvent is published when a session is created
type FightStartedEvent struct {
	SessionID string
	Player    Participant
	Opponent  Participant
	timestamp time.Time
}

func (e FightStartedEvent) EventType() EventType { return EventTypeFightStarted }
func (e FightStartedEvent) Timestamp() time.Time { return e.timestamp }

// RoundStartedEvent is published when a round begins and cards are offered
type RoundStartedEvent struct {
	SessionID string
	Round     RoundStart
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// CardSelectedEvent is published when the player keeps one of the offered cards
type CardSelectedEvent struct {
	SessionID string
	Round     int
	Card      card.Card
	Discarded []card.Card
	timestamp time.Time
}

func (e CardSelectedEvent) EventType() EventType { return EventTypeCardSelected }
func (e CardSelectedEvent) Timestamp() time.Time { return e.timestamp }

// CardPlayedEvent is published after a card's effect lands
type CardPlayedEvent struct {
	SessionID string
	Round     int
	Play      PlayResult
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// RoundResolvedEvent is published after damage and decay
type RoundResolvedEvent struct {
	SessionID  string
	Resolution Resolution
	timestamp  time.Time
}

func (e RoundResolvedEvent) EventType() EventType { return EventTypeRoundResolved }
func (e RoundResolvedEvent) Timestamp() time.Time { return e.timestamp }

// FightEndedEvent is published once a fight has been settled
type FightEndedEvent struct {
	SessionID  string
	Settlement Settlement
	timestamp  time.Time
}

func (e FightEndedEvent) EventType() EventType { return EventTypeFightEnded }
func (e FightEndedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to fight events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(event Event)

// OnEvent calls f.
func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory, synchronous event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Function
// subscribers cannot be compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(SubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(SubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event Event) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
