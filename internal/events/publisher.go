package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"productivity-tracker.com/productivity-tracker/internal/constants"
)

type EventType string

const (
	EventStarted   EventType = "started"
	EventTick      EventType = "tick"
	EventCompleted EventType = "completed"
	EventStopped   EventType = "stopped"
)

// Event describes one timer transition or countdown tick.
type Event struct {
	ID        string                `json:"id"`
	Type      EventType             `json:"type"`
	Kind      constants.SessionType `json:"kind"`
	SessionID uint                  `json:"session_id"`
	Minutes   int                   `json:"minutes"`
	Seconds   int                   `json:"seconds"`
	At        time.Time             `json:"at"`
}

func NewEvent(typ EventType, kind constants.SessionType, sessionID uint, remaining int, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Kind:      kind,
		SessionID: sessionID,
		Minutes:   remaining / 60,
		Seconds:   remaining % 60,
		At:        at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
