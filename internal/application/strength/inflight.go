package strength

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is the cancellation cause of a request replaced by a newer one.
var ErrSuperseded = errors.New("superseded by a newer request")

// Inflight tracks one in-flight request per key. Starting a new request for
// a key cancels the previous one, so a stale analysis can never overwrite a
// newer result on the caller's side.
type Inflight struct {
	mu    sync.Mutex
	seq   uint64
	calls map[string]*inflightCall
}

type inflightCall struct {
	id     uint64
	cancel context.CancelCauseFunc
}

func NewInflight() *Inflight {
	return &Inflight{calls: make(map[string]*inflightCall)}
}

// Begin registers a request under key. The returned release func must be
// called when the request finishes. An empty key is never tracked.
func (f *Inflight) Begin(ctx context.Context, key string) (context.Context, func()) {
	if key == "" {
		return ctx, func() {}
	}
	ctx, cancel := context.WithCancelCause(ctx)

	f.mu.Lock()
	f.seq++
	id := f.seq
	if prev, ok := f.calls[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	f.calls[key] = &inflightCall{id: id, cancel: cancel}
	f.mu.Unlock()

	return ctx, func() {
		f.mu.Lock()
		if cur, ok := f.calls[key]; ok && cur.id == id {
			delete(f.calls, key)
		}
		f.mu.Unlock()
		cancel(context.Canceled)
	}
}

// Len is the number of tracked keys.
func (f *Inflight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
