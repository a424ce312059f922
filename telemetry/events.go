// Package telemetry provides run statistics, event logging and CSV output.
package telemetry

import (
	"fmt"
	"log/slog"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventRecognized EventType = iota // motor device started firing on a target
	EventLost                        // motor device stopped firing
	EventCollision                   // two vehicles overlapped and reflected
	EventReconfigure                 // wiring, law or jitter changed
	EventReset                       // agent or arena reset
)

var eventNames = [...]string{"recognized", "lost", "collision", "reconfigure", "reset"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType `csv:"-"`
	Name    string    `csv:"type"`
	Tick    int32     `csv:"tick"`
	AgentID int       `csv:"agent"`
	OtherID int       `csv:"other"` // stimulus or second agent, -1 if none
	Detail  string    `csv:"detail"`
}

// NewEvent creates an event with its CSV name filled in.
func NewEvent(t EventType, tick int32, agentID, otherID int, detail string) Event {
	return Event{
		Type:    t,
		Name:    t.String(),
		Tick:    tick,
		AgentID: agentID,
		OtherID: otherID,
		Detail:  detail,
	}
}

// LogEvent logs the event using slog.
func (e Event) LogEvent() {
	slog.Info("event",
		"type", e.Name,
		"tick", e.Tick,
		"agent", e.AgentID,
		"other", e.OtherID,
		"detail", e.Detail,
	)
}
