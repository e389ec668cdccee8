package buffer

import "testing"

func TestNewShape(t *testing.T) {
	m := New(2, 16)
	if m.Channels() != 2 || m.Frames() != 16 {
		t.Fatalf("shape = %dx%d, want 2x16", m.Channels(), m.Frames())
	}
	if empty := New(-1, -1); empty.Channels() != 0 || empty.Frames() != 0 {
		t.Fatalf("negative sizes produced %dx%d", empty.Channels(), empty.Frames())
	}
}

func TestFromChannelsTruncatesToShortest(t *testing.T) {
	left := []float64{1, 2, 3, 4}
	right := []float64{5, 6}
	m := FromChannels(left, right)
	if m.Frames() != 2 {
		t.Fatalf("frames = %d, want 2", m.Frames())
	}
	m.Channel(0)[0] = 9
	if left[0] != 9 {
		t.Fatal("FromChannels copied instead of wrapping")
	}
	if m.Channel(5) != nil || m.Channel(-1) != nil {
		t.Fatal("out-of-range Channel should be nil")
	}
}

func TestResizeZeroesExposedSamples(t *testing.T) {
	m := New(2, 8)
	for c := range m.Data() {
		for i := range m.Data()[c] {
			m.Data()[c][i] = 1
		}
	}

	m.Resize(1, 4)
	m.Resize(2, 8)

	for i, v := range m.Channel(0)[4:] {
		if v != 0 {
			t.Fatalf("channel 0 sample %d = %v, want 0", i+4, v)
		}
	}
	for i, v := range m.Channel(1) {
		if v != 0 {
			t.Fatalf("re-exposed channel 1 sample %d = %v, want 0", i, v)
		}
	}
	for i, v := range m.Channel(0)[:4] {
		if v != 1 {
			t.Fatalf("kept sample %d = %v, want 1", i, v)
		}
	}
}

func TestZeroChannelAndCopy(t *testing.T) {
	m := FromChannels([]float64{1, 1}, []float64{2, 2})
	cp := m.Copy()

	m.ZeroChannel(1)
	m.ZeroChannel(7)
	if m.Channel(1)[0] != 0 || m.Channel(0)[0] != 1 {
		t.Fatalf("ZeroChannel touched the wrong row: %v", m.Data())
	}
	if cp.Channel(1)[0] != 2 {
		t.Fatal("Copy aliases the source")
	}

	m.Zero()
	if m.Channel(0)[1] != 0 {
		t.Fatal("Zero left data behind")
	}
}
