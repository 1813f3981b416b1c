package directory

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Directory is the singleton room listing. All mutations run on a single
// goroutine; rooms push their summaries here and listing subscribers are
// fanned the full listing after every change.
type Directory struct {
	tables      map[string]TableState
	subscribers map[*Subscription]bool

	exec  chan func()
	close chan bool
}

// Subscription is a listener on the listing feed
type Subscription struct {
	// C receives the full listing after every directory mutation
	C chan []TableState
}

// New returns a new directory
func New() *Directory {
	return &Directory{
		tables:      make(map[string]TableState),
		subscribers: make(map[*Subscription]bool),
		exec:        make(chan func(), 256),
		close:       make(chan bool),
	}
}

// Start starts the directory run loop
func (d *Directory) Start() {
	go d.runLoop()
}

// Stop terminates the run loop
func (d *Directory) Stop() {
	close(d.close)
}

func (d *Directory) runLoop() {
	logrus.Debug("creating directory run loop")
	for {
		select {
		case fn := <-d.exec:
			fn()
		case <-d.close:
			logrus.Debug("terminating directory run loop")
			return
		}
	}
}

// do runs fn on the run loop and waits for it to complete
func (d *Directory) do(fn func()) {
	done := make(chan struct{})
	d.exec <- func() {
		fn()
		close(done)
	}
	<-done
}

// Filter narrows a listing query
type Filter struct {
	GameType string
	Status   string
}

func (f Filter) matches(t TableState) bool {
	if f.GameType != "" && t.GameType != f.GameType {
		return false
	}

	if f.Status != "" && t.Status != f.Status {
		return false
	}

	return true
}

// List returns the stored summaries matching the filter, ordered by room id
func (d *Directory) List(filter Filter) []TableState {
	var list []TableState
	d.do(func() {
		list = d.listing(filter)
	})

	return list
}

// Get returns a single room's summary
func (d *Directory) Get(id string) (TableState, bool) {
	var state TableState
	var found bool
	d.do(func() {
		state, found = d.tables[id]
	})

	return state, found
}

// Update upserts a room summary. A room with zero occupants is evicted
// instead of stored.
func (d *Directory) Update(id string, state TableState) {
	d.do(func() {
		if state.Occupants() == 0 {
			delete(d.tables, id)
		} else {
			state.ID = id
			d.tables[id] = state
		}

		d.broadcast()
	})
}

// Remove deletes a room summary (room teardown)
func (d *Directory) Remove(id string) {
	d.do(func() {
		delete(d.tables, id)
		d.broadcast()
	})
}

// Clear removes all room summaries
func (d *Directory) Clear() {
	d.do(func() {
		d.tables = make(map[string]TableState)
		d.broadcast()
	})
}

// Subscribe registers a listener on the listing feed. The current listing is
// queued immediately.
func (d *Directory) Subscribe() *Subscription {
	sub := &Subscription{
		C: make(chan []TableState, 16),
	}

	d.do(func() {
		d.subscribers[sub] = true
		sub.send(d.listing(Filter{}))
	})

	return sub
}

// Unsubscribe removes the listener
func (d *Directory) Unsubscribe(sub *Subscription) {
	d.do(func() {
		if d.subscribers[sub] {
			delete(d.subscribers, sub)
			close(sub.C)
		}
	})
}

// NOTE: must only be called from the run loop
func (d *Directory) listing(filter Filter) []TableState {
	list := make([]TableState, 0, len(d.tables))
	for _, t := range d.tables {
		if filter.matches(t) {
			list = append(list, t)
		}
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})

	return list
}

// NOTE: must only be called from the run loop
func (d *Directory) broadcast() {
	listing := d.listing(Filter{})
	for sub := range d.subscribers {
		sub.send(listing)
	}
}

// send queues the listing without blocking the run loop; a slow subscriber
// misses intermediate listings, never future ones
func (s *Subscription) send(listing []TableState) {
	select {
	case s.C <- listing:
	default:
	}
}
