package runner

import (
	"encoding/json"
	"sync"
	"time"
)

// Event is a generic SSE payload wrapper.
type Event struct {
	Event   string      `json:"event"`
	JobID   string      `json:"job_id"`
	Payload interface{} `json:"payload,omitempty"`
}

type subscriber chan []byte

// Hub fans job events out to SSE subscribers. Progress messages are buffered
// per job and flushed on a 100ms cadence so a page-by-page operation does not
// flood slow clients.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[subscriber]struct{} // jobID -> set of subscribers

	progMu   sync.Mutex
	progBuf  map[string][]string   // jobID -> pending progress messages
	progStop map[string]chan struct{}
}

func NewHub() *Hub { return &Hub{subs: map[string]map[subscriber]struct{}{}} }

func (h *Hub) Subscribe(jobID string) (subscriber, func()) {
	ch := make(subscriber, 16)
	h.mu.Lock()
	set := h.subs[jobID]
	if set == nil {
		set = map[subscriber]struct{}{}
		h.subs[jobID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()
	unsubscribe := func() {
		h.mu.Lock()
		if set, ok := h.subs[jobID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, jobID)
			}
		}
		close(ch)
		h.mu.Unlock()
	}
	return ch, unsubscribe
}

func (h *Hub) Publish(jobID string, ev Event) {
	b, _ := json.Marshal(ev)
	h.mu.RLock()
	for ch := range h.subs[jobID] {
		// non-blocking send
		select {
		case ch <- b:
		default:
		}
	}
	h.mu.RUnlock()
}

// ProgressAppender returns a function buffering progress messages for a job;
// a background loop flushes them as coalesced "progress" events.
func (h *Hub) ProgressAppender(jobID string) func(message string) {
	h.progMu.Lock()
	if h.progBuf == nil {
		h.progBuf = map[string][]string{}
	}
	if h.progStop == nil {
		h.progStop = map[string]chan struct{}{}
	}
	if _, ok := h.progStop[jobID]; !ok {
		stop := make(chan struct{})
		h.progStop[jobID] = stop
		go h.flushLoop(jobID, stop)
	}
	h.progMu.Unlock()
	return func(message string) {
		if message == "" {
			return
		}
		h.progMu.Lock()
		h.progBuf[jobID] = append(h.progBuf[jobID], message)
		h.progMu.Unlock()
	}
}

func (h *Hub) flushLoop(jobID string, stop <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.progMu.Lock()
			pending := h.progBuf[jobID]
			if len(pending) == 0 {
				h.progMu.Unlock()
				continue
			}
			h.progBuf[jobID] = nil
			h.progMu.Unlock()
			h.Publish(jobID, Event{Event: "progress", JobID: jobID, Payload: map[string]any{"messages": pending}})
		}
	}
}

// StopProgressAppender stops the coalescer for a job and flushes leftovers.
func (h *Hub) StopProgressAppender(jobID string) {
	h.progMu.Lock()
	if ch, ok := h.progStop[jobID]; ok {
		close(ch)
		delete(h.progStop, jobID)
	}
	pending := h.progBuf[jobID]
	delete(h.progBuf, jobID)
	h.progMu.Unlock()
	if len(pending) > 0 {
		h.Publish(jobID, Event{Event: "progress", JobID: jobID, Payload: map[string]any{"messages": pending}})
	}
}
