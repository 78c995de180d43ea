package navigation

import "sync"

// Event is a UI event delivered to navigation listeners
type Event string

const (
	EventClickOutside Event = "click_outside"
)

// Bus is a scoped event subscription registry. Listeners are removed through
// the function returned by Subscribe; nothing is registered globally.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[Event]map[int]func()
}

func NewBus() *Bus {
	return &Bus{listeners: make(map[Event]map[int]func())}
}

// Subscribe registers fn for ev and returns its unsubscribe function.
// Calling the unsubscribe function more than once is a no-op.
func (b *Bus) Subscribe(ev Event, fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.listeners[ev] == nil {
		b.listeners[ev] = make(map[int]func())
	}
	b.listeners[ev][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.listeners[ev], id)
		})
	}
}

// Publish calls every listener of ev. Listeners may unsubscribe while being called.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.listeners[ev]))
	for _, fn := range b.listeners[ev] {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Listeners returns the number of listeners subscribed to ev
func (b *Bus) Listeners(ev Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[ev])
}
