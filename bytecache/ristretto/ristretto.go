// Package ristretto adapts dgraph-io/ristretto to the bytecache.Provider
// interface. Cost is the payload length, so MaxBytes bounds resident file
// bytes rather than entry count.
package ristretto

import (
	rc "github.com/dgraph-io/ristretto"

	"github.com/modfox/assetcache/bytecache"
)

type Config struct {
	// MaxBytes caps the total cached payload size. 0 => 64 MiB.
	MaxBytes int64
	// NumCounters sizes the admission sketch. 0 => 100k.
	NumCounters int64
	// BufferItems is ristretto's Get buffer size. 0 => 64.
	BufferItems int64
}

type Provider struct {
	c *rc.Cache
}

var _ bytecache.Provider = (*Provider)(nil)

func New(cfg Config) (*Provider, error) {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 64 << 20
	}
	if cfg.NumCounters <= 0 {
		cfg.NumCounters = 100_000
	}
	if cfg.BufferItems <= 0 {
		cfg.BufferItems = 64
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxBytes,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(key string) ([]byte, bool) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false
	}
	return b, true
}

func (p *Provider) Set(key string, value []byte) bool {
	return p.c.Set(key, value, int64(len(value)))
}

func (p *Provider) Del(key string) {
	p.c.Del(key)
}

func (p *Provider) Close() error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Wait blocks until buffered Sets have been applied. Useful in tests;
// ristretto admits writes asynchronously.
func (p *Provider) Wait() { p.c.Wait() }
