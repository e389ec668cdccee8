package buffer

import "sync"

// Pool provides sync.Pool-based Multi reuse to reduce GC pressure
// in block processing loops.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Multi{}
			},
		},
	}
}

// Get returns a zeroed block with the requested shape.
// Callers must return it via Put when done.
func (p *Pool) Get(channels, frames int) *Multi {
	m := p.pool.Get().(*Multi)
	m.Resize(channels, frames)
	m.Zero()
	return m
}

// Put returns a block to the pool for reuse.
// The caller must not use the block after calling Put.
func (p *Pool) Put(m *Multi) {
	if m == nil {
		return
	}
	p.pool.Put(m)
}
