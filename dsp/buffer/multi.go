package buffer

// Multi is a channel-major block: Data()[c][n] is sample n of channel c.
// Every channel has the same length.
type Multi struct {
	data [][]float64
}

// New returns a zero-filled block. Negative sizes are treated as 0.
func New(channels, frames int) *Multi {
	channels = max(channels, 0)
	frames = max(frames, 0)
	m := &Multi{data: make([][]float64, channels)}
	for c := range m.data {
		m.data[c] = make([]float64, frames)
	}
	return m
}

// FromChannels wraps existing rows without copying. Rows are truncated to the
// shortest one so the block stays rectangular.
func FromChannels(rows ...[]float64) *Multi {
	frames := -1
	for _, r := range rows {
		if frames < 0 || len(r) < frames {
			frames = len(r)
		}
	}
	frames = max(frames, 0)
	data := make([][]float64, len(rows))
	for c, r := range rows {
		data[c] = r[:frames]
	}
	return &Multi{data: data}
}

// Data returns the channel rows. Mutations are visible through the block.
func (m *Multi) Data() [][]float64 { return m.data }

// Channels returns the channel count.
func (m *Multi) Channels() int { return len(m.data) }

// Frames returns the per-channel length.
func (m *Multi) Frames() int {
	if len(m.data) == 0 {
		return 0
	}
	return len(m.data[0])
}

// Channel returns row c, or nil when c is out of range.
func (m *Multi) Channel(c int) []float64 {
	if c < 0 || c >= len(m.data) {
		return nil
	}
	return m.data[c]
}

// Resize sets the channel count and per-channel length, reusing capacity
// where possible. Newly exposed samples are zeroed.
func (m *Multi) Resize(channels, frames int) {
	channels = max(channels, 0)
	frames = max(frames, 0)
	prevChannels := len(m.data)

	if channels <= cap(m.data) {
		m.data = m.data[:channels]
	} else {
		grown := make([][]float64, channels)
		copy(grown, m.data)
		m.data = grown
	}

	for c := range m.data {
		row := m.data[c]
		oldLen := len(row)
		if c >= prevChannels {
			oldLen = 0
		}
		if frames <= cap(row) {
			row = row[:frames]
		} else {
			s := make([]float64, frames)
			copy(s, row)
			row = s
		}
		// Stale data may remain in reused backing arrays.
		for i := oldLen; i < frames; i++ {
			row[i] = 0
		}
		m.data[c] = row
	}
}

// Zero sets every sample to 0.
func (m *Multi) Zero() {
	for c := range m.data {
		m.ZeroChannel(c)
	}
}

// ZeroChannel sets every sample of channel c to 0. Out-of-range c is ignored.
func (m *Multi) ZeroChannel(c int) {
	if c < 0 || c >= len(m.data) {
		return
	}
	row := m.data[c]
	for i := range row {
		row[i] = 0
	}
}

// Copy returns a deep copy of the block.
func (m *Multi) Copy() *Multi {
	out := &Multi{data: make([][]float64, len(m.data))}
	for c, row := range m.data {
		out.data[c] = append([]float64(nil), row...)
	}
	return out
}
