package view

import "sync"

// watcherBuffer is how many snapshots a slow watcher may lag before
// further snapshots are dropped for it.
const watcherBuffer = 16

// hub fans view transitions out to the watchers of one session.
type hub struct {
	mu       sync.Mutex
	watchers map[chan Snapshot]struct{}
	closed   bool
}

func newHub() *hub {
	return &hub{watchers: make(map[chan Snapshot]struct{})}
}

// subscribe registers a watcher. The returned cancel func is idempotent.
func (h *hub) subscribe() (<-chan Snapshot, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Snapshot, watcherBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.watchers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.watchers[ch]; ok {
				delete(h.watchers, ch)
				close(ch)
			}
		})
	}
}

// publish never blocks: a full watcher misses the snapshot.
func (h *hub) publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.watchers {
		select {
		case ch <- s:
		default:
		}
	}
}

// close ends every subscription.
func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for ch := range h.watchers {
		delete(h.watchers, ch)
		close(ch)
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers)
}
