package core

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

func newTestHub() *Hub {
	logger := zerolog.Nop()
	return NewHub(&logger)
}

// fakeConn records everything the hub sends to it, re-decoded from JSON
// so assertions see exactly what a peer would.
type fakeConn struct {
	mu     sync.Mutex
	frames []map[string]any
	fail   bool // when set, Send reports a transport error
}

func (f *fakeConn) Send(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("connection closed")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	f.frames = append(f.frames, decoded)
	return nil
}

// sent returns the recorded frames of the given type, in delivery order.
func (f *fakeConn) sent(typ string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []map[string]any
	for _, frame := range f.frames {
		if frame["type"] == typ {
			out = append(out, frame)
		}
	}
	return out
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.frames)
}
