// Package asynchook wraps a jval.Hooks in a bounded worker queue so a slow
// or blocking sink (a remote log shipper, a metrics exporter) never adds
// latency to the value operations that fire hooks.
//
// usage:
//
//	var raw jval.Hooks = myHooks{} // any jval.Hooks implementation
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//	jval.SetHooks(hooks)
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/jval"
)

type Hooks struct {
	inner jval.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ jval.Hooks = (*Hooks)(nil)

func New(inner jval.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) PayloadLeaked(k jval.Kind, info string) {
	h.try(func() { h.inner.PayloadLeaked(k, info) })
}
func (h *Hooks) DecimalContextCreated()   { h.try(h.inner.DecimalContextCreated) }
func (h *Hooks) DecimalContextDestroyed() { h.try(h.inner.DecimalContextDestroyed) }
func (h *Hooks) InternRejected(reason string) {
	h.try(func() { h.inner.InternRejected(reason) })
}
func (h *Hooks) InternHit(key string) { h.try(func() { h.inner.InternHit(key) }) }
