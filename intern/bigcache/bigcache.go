// Package bigcache adapts allegro/bigcache/v3 as an intern.Backend for
// byte-oriented memoization, used to cache formatted decimal literal text
// so repeated formatting of the same decimal value skips the
// scientific-notation renderer entirely.
//
// Unlike the ristretto backend, bigcache only stores []byte; Set rejects
// any value that is not a []byte or string.
package bigcache

import (
	"context"
	"fmt"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/jval/intern"
)

type BigCache struct {
	c *bc.BigCache
}

var _ intern.Backend = (*BigCache)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int
}

func New(cfg Config) (*BigCache, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &BigCache{c: c}, nil
}

func (p *BigCache) Get(_ context.Context, key string) (any, bool) {
	b, err := p.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (p *BigCache) Set(_ context.Context, key string, value any, _ int64) (bool, error) {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return false, fmt.Errorf("intern/bigcache: unsupported value type %T", value)
	}
	if err := p.c.Set(key, b); err != nil {
		return false, err
	}
	return true, nil
}

func (p *BigCache) Del(_ context.Context, key string) {
	p.c.Delete(key)
}

func (p *BigCache) Close(_ context.Context) error {
	return p.c.Close()
}
