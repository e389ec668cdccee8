package core

import (
	"math"
	"testing"
)

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		name  string
		phase float64
		want  float64
	}{
		{name: "zero", phase: 0, want: 0},
		{name: "inside", phase: 1.5, want: 1.5},
		{name: "exactly two pi", phase: TwoPi, want: 0},
		{name: "several turns", phase: 3*TwoPi + 0.25, want: 0.25},
		{name: "negative", phase: -0.5, want: TwoPi - 0.5},
		{name: "tiny negative", phase: -1e-300, want: 0},
		{name: "nan", phase: math.NaN(), want: 0},
		{name: "inf", phase: math.Inf(1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapPhase(tt.phase)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("WrapPhase(%v) = %v, want %v", tt.phase, got, tt.want)
			}
			if got < 0 || got >= TwoPi {
				t.Fatalf("WrapPhase(%v) = %v outside [0, 2π)", tt.phase, got)
			}
		})
	}
}

func TestPhaseIncrement(t *testing.T) {
	freq, sr := 1.0, 48000.0
	got := PhaseIncrement(freq, sr)
	want := TwoPi * freq / sr
	if got != want {
		t.Fatalf("PhaseIncrement(1, 48000) = %v, want %v", got, want)
	}
	if PhaseIncrement(1, 0) != 0 {
		t.Fatal("expected zero increment for invalid sample rate")
	}
}
