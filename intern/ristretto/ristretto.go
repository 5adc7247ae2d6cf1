// Package ristretto adapts dgraph-io/ristretto as an intern.Backend for
// live-pointer reuse: unlike the byte-oriented bigcache backend, values
// stored here are opaque `any` (typically *Value-payload pointers), never
// serialized.
package ristretto

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/jval/intern"
)

type Ristretto struct {
	c *rc.Cache
}

var _ intern.Backend = (*Ristretto)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Ristretto, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("intern/ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{c: c}, nil
}

func (p *Ristretto) Get(_ context.Context, key string) (any, bool) {
	return p.c.Get(key)
}

func (p *Ristretto) Set(_ context.Context, key string, value any, cost int64) (bool, error) {
	return p.c.Set(key, value, cost), nil
}

func (p *Ristretto) Del(_ context.Context, key string) {
	p.c.Del(key)
}

func (p *Ristretto) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto's own hit/miss counters; not part of
// intern.Backend.
func (p *Ristretto) Metrics() *rc.Metrics { return p.c.Metrics }
