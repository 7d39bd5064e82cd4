package timer

import (
	"sync"
	"time"

	"github.com/marwan404/StudyHub/internal/model"
)

type EventType string

const (
	EventDisplay       EventType = "display"
	EventPhaseComplete EventType = "phase_complete"
)

// Event is what subscribers of a Broadcaster receive.
type Event struct {
	Type    EventType   `json:"type"`
	Display Display     `json:"display"`
	Phase   model.Phase `json:"phase,omitempty"`
	At      time.Time   `json:"at"`
}

// Broadcaster fans controller output out to any number of subscribers.
// It is both a DisplaySink and a Notifier. Sends never block: a subscriber
// whose buffer is full misses that event.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[int]chan Event
	nextID      int
	last        Display
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subscribers: make(map[int]chan Event)}
}

// Subscribe registers a channel and returns it with its unsubscribe func.
// The most recent display snapshot is delivered first.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch
	if b.last.Remaining != "" {
		ch <- Event{Type: EventDisplay, Display: b.last, At: time.Now()}
	}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Broadcaster) Display(display Display) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = display
	b.emitLocked(Event{Type: EventDisplay, Display: display, At: time.Now()})
}

func (b *Broadcaster) PhaseComplete(phase model.Phase) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emitLocked(Event{Type: EventPhaseComplete, Display: b.last, Phase: phase, At: time.Now()})
}

func (b *Broadcaster) emitLocked(event Event) {
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
