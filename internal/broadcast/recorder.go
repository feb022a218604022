package broadcast

import (
	"sync"

	"github.com/9910597111/BlindSketch-Game/internal/model"
)

// Recorder is a Gateway implementation for tests: it records every delivery
// instead of sending anything.
type Recorder struct {
	mu sync.Mutex

	sent       []SentEvent
	broadcasts []BroadcastEvent
}

// SentEvent is a recorded SendTo delivery
type SentEvent struct {
	PlayerID model.PlayerID
	Event    model.Event
}

// BroadcastEvent is a recorded Broadcast delivery
type BroadcastEvent struct {
	RoomID  model.RoomID
	Event   model.Event
	Exclude []model.PlayerID
}

// Ensure Recorder implements Gateway
var _ Gateway = (*Recorder)(nil)

// NewRecorder creates a new Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SendTo records a direct delivery
func (r *Recorder) SendTo(playerID model.PlayerID, event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, SentEvent{PlayerID: playerID, Event: event})
}

// Broadcast records a room-wide delivery
func (r *Recorder) Broadcast(roomID model.RoomID, event model.Event, exclude ...model.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcasts = append(r.broadcasts, BroadcastEvent{
		RoomID:  roomID,
		Event:   event,
		Exclude: append([]model.PlayerID(nil), exclude...),
	})
}

// Sent returns all recorded direct deliveries
func (r *Recorder) Sent() []SentEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentEvent(nil), r.sent...)
}

// SentTo returns direct deliveries for one player
func (r *Recorder) SentTo(playerID model.PlayerID) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []model.Event
	for _, s := range r.sent {
		if s.PlayerID == playerID {
			events = append(events, s.Event)
		}
	}
	return events
}

// Broadcasts returns all recorded room-wide deliveries
func (r *Recorder) Broadcasts() []BroadcastEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]BroadcastEvent(nil), r.broadcasts...)
}

// BroadcastsOfType returns room-wide deliveries matching an event type
func (r *Recorder) BroadcastsOfType(t model.EventType) []BroadcastEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []BroadcastEvent
	for _, b := range r.broadcasts {
		if b.Event.Type == t {
			events = append(events, b)
		}
	}
	return events
}

// Reset clears all recorded deliveries
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
	r.broadcasts = nil
}
