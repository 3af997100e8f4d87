package engine

import "sync"

type EventKind string

const (
	EventUser         EventKind = "user"
	EventInventory    EventKind = "inventory"
	EventStats        EventKind = "stats"
	EventHabits       EventKind = "habits"
	EventQuests       EventKind = "quests"
	EventAchievements EventKind = "achievements"
)

// Event tells observers which records changed.
type Event struct {
	Kind   EventKind
	Detail string
}

// Notifier fans events out to registered observers. Handlers run
// synchronously on the goroutine that published the event.
type Notifier struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(Event)
}

func NewNotifier() *Notifier {
	return &Notifier{handlers: map[int]func(Event){}}
}

// Subscribe registers fn and returns a function that removes it.
func (n *Notifier) Subscribe(fn func(Event)) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.handlers[id] = fn
	return func() {
		n.mu.Lock()
		delete(n.handlers, id)
		n.mu.Unlock()
	}
}

func (n *Notifier) Publish(events ...Event) {
	n.mu.Lock()
	fns := make([]func(Event), 0, len(n.handlers))
	for i := 0; i < n.next; i++ {
		if fn, ok := n.handlers[i]; ok {
			fns = append(fns, fn)
		}
	}
	n.mu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}
