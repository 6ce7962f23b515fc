package controller

import "sync"

// Flights tracks the latest submit per key. Starting a new flight for a
// key invalidates every older ticket for it.
type Flights struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

// NewFlights returns an empty tracker.
func NewFlights() *Flights {
	return &Flights{latest: make(map[string]uint64)}
}

// Ticket identifies one flight.
type Ticket struct {
	f   *Flights
	key string
	n   uint64
}

// Begin starts a flight for key and supersedes any earlier one.
func (f *Flights) Begin(key string) Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.latest[key] = f.next
	return Ticket{f: f, key: key, n: f.next}
}

// Current reports whether no newer flight has begun for the ticket's key.
func (t Ticket) Current() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	return t.f.latest[t.key] == t.n
}

// Done forgets the key if t is still its latest flight.
func (t Ticket) Done() {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.f.latest[t.key] == t.n {
		delete(t.f.latest, t.key)
	}
}

// Len reports how many keys have a flight in progress.
func (f *Flights) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.latest)
}
