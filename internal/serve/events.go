package serve

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/osuushi/genart"
	"github.com/pkg/errors"
)

// Buffered events per subscriber. A subscriber that falls further behind
// misses events.
const subscriberBuffer = 64

type event struct {
	id   uint64
	name string
	data string
}

func (e event) writeTo(w io.Writer) error {
	_, err := fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", e.id, e.name, e.data)
	return errors.WithStack(err)
}

// hub fans server-sent events out to every connected page.
type hub struct {
	mu          sync.Mutex
	subscribers map[uint64]chan event
	nextSub     uint64
	nextEvent   atomic.Uint64
}

func newHub() *hub {
	return &hub{subscribers: make(map[uint64]chan event)}
}

func (h *hub) subscribe() (uint64, <-chan event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextSub
	h.nextSub++
	ch := make(chan event, subscriberBuffer)
	h.subscribers[id] = ch
	return id, ch
}

func (h *hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, id)
}

// broadcast sends data, encoded as JSON, to every subscriber.
func (h *hub) broadcast(name string, data any) error {
	if strings.ContainsAny(name, " \t\r\n") {
		return errors.Errorf("invalid event name %q", name)
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s event", name)
	}
	ev := event{id: h.nextEvent.Add(1), name: name, data: string(encoded)}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			genart.Logger().Warn("dropping event for slow subscriber", "subscriber", id, "event", name)
		}
	}
	return nil
}
