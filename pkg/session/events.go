package session

import (
	"sync"

	"github.com/c9s/chartdesk/pkg/annotation"
	"github.com/c9s/chartdesk/pkg/types"
)

type EventType string

const (
	EventCaptureRequested EventType = "captureRequested"
	EventCaptureDismissed EventType = "captureDismissed"
	EventRedraw           EventType = "redraw"
)

// Event is a presenter request of the annotation engine, delivered to the session's subscribers.
type Event struct {
	Type   EventType    `json:"type"`
	Anchor *types.Point `json:"anchor,omitempty"`
}

var _ annotation.Presenter = &EventHub{}

// EventHub fans the annotation presenter requests out to subscribers.
// Slow subscribers lose events instead of blocking the engine.
type EventHub struct {
	mu          sync.Mutex
	subscribers map[int]chan Event
	nextID      int
}

func NewEventHub() *EventHub {
	return &EventHub{subscribers: make(map[int]chan Event)}
}

// Subscribe registers a buffered subscriber. The returned function unsubscribes and closes the channel.
func (h *EventHub) Subscribe(buffer int) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++

	ch := make(chan Event, buffer)
	h.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *EventHub) NumSubscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *EventHub) RequestTextCapture(anchor types.Point) {
	h.publish(Event{Type: EventCaptureRequested, Anchor: &anchor})
}

func (h *EventHub) DismissTextCapture() {
	h.publish(Event{Type: EventCaptureDismissed})
}

func (h *EventHub) Redraw() {
	h.publish(Event{Type: EventRedraw})
}

func (h *EventHub) publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- e:
		default:
			log.Debugf("subscriber %d is full, dropping %s event", id, e.Type)
		}
	}
}
