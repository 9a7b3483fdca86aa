package service

import "sync"

// GenGuard hands out monotonically increasing generation numbers per slide.
// Every user edit bumps the slide's generation; an async write (bulk design
// pass, suggestion refresh) records the generation when it starts and applies
// its result only if the slide hasn't moved on — otherwise the write is a
// zombie and gets dropped.
type GenGuard struct {
	mu   sync.Mutex
	gens map[string]uint64
}

func NewGenGuard() *GenGuard {
	return &GenGuard{gens: make(map[string]uint64)}
}

// Bump advances the slide's generation and returns the new value.
func (g *GenGuard) Bump(slideID string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gens[slideID]++
	return g.gens[slideID]
}

// Current returns the slide's generation without advancing it.
func (g *GenGuard) Current(slideID string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[slideID]
}

// StillCurrent reports whether gen is the slide's latest generation.
func (g *GenGuard) StillCurrent(slideID string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gens[slideID] == gen
}
