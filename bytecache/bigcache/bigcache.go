// Package bigcache adapts allegro/bigcache to the bytecache.Provider
// interface.
package bigcache

import (
	"context"
	"errors"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/modfox/assetcache/bytecache"
)

type Config struct {
	// LifeWindow is how long entries stay before expiry. 0 => 10m.
	LifeWindow time.Duration
	// CleanWindow is the expired-entry sweep interval. 0 => 1m.
	CleanWindow time.Duration
	// HardMaxCacheSizeMB caps memory. 0 = unlimited.
	HardMaxCacheSizeMB int
}

type Provider struct {
	c *bc.BigCache
}

var _ bytecache.Provider = (*Provider)(nil)

func New(cfg Config) (*Provider, error) {
	if cfg.LifeWindow <= 0 {
		cfg.LifeWindow = 10 * time.Minute
	}
	if cfg.CleanWindow <= 0 {
		cfg.CleanWindow = time.Minute
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.CleanWindow = cfg.CleanWindow
	conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB

	c, err := bc.New(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(key string) ([]byte, bool) {
	b, err := p.c.Get(key)
	if err != nil {
		return nil, false
	}
	return b, true
}

func (p *Provider) Set(key string, value []byte) bool {
	return p.c.Set(key, value) == nil
}

func (p *Provider) Del(key string) {
	if err := p.c.Delete(key); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		// best-effort; the entry ages out through LifeWindow anyway
		return
	}
}

func (p *Provider) Close() error {
	return p.c.Close()
}
