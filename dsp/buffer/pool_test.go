package buffer

import "testing"

func TestPoolGetReturnsZeroedShape(t *testing.T) {
	p := NewPool()

	m := p.Get(2, 32)
	if m.Channels() != 2 || m.Frames() != 32 {
		t.Fatalf("shape = %dx%d, want 2x32", m.Channels(), m.Frames())
	}
	m.Channel(1)[5] = 3
	p.Put(m)

	again := p.Get(2, 16)
	for c := range again.Data() {
		for i, v := range again.Channel(c) {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want 0", c, i, v)
			}
		}
	}
	p.Put(again)
	p.Put(nil)
}
