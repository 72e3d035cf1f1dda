package cursor

import (
	"sync"

	"github.com/OCAP2/cursortools/internal/surface"
)

// Board associates registries with surfaces. A registry is created on first use
// of a surface and lives until the surface is destroyed.
type Board struct {
	mu         sync.Mutex
	cfg        Config
	registries map[surface.Surface]*Registry
}

// NewBoard creates a board whose registries share cfg
func NewBoard(cfg Config) *Board {
	return &Board{
		cfg:        cfg,
		registries: make(map[surface.Surface]*Registry),
	}
}

// Registry returns the registry of s, creating it on first use. events is only
// consulted on creation.
func (b *Board) Registry(s surface.Surface, events surface.EventSource) *Registry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if reg, ok := b.registries[s]; ok {
		return reg
	}
	reg := NewRegistry(s, events, b.cfg)
	b.registries[s] = reg
	return reg
}

// Lookup returns the registry of s without creating one
func (b *Board) Lookup(s surface.Surface) (*Registry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	reg, ok := b.registries[s]
	return reg, ok
}

// Destroy tears down every marker and span on s and forgets its registry.
func (b *Board) Destroy(s surface.Surface) {
	b.mu.Lock()
	reg, ok := b.registries[s]
	delete(b.registries, s)
	b.mu.Unlock()

	if ok {
		reg.RemoveAll()
	}
}

// Len returns the number of surfaces with a registry
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.registries)
}
