package generation

import (
	"math"
	"testing"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name         string
		chunkCount   int
		answerLength int
		want         float64
	}{
		{"full chunks, long answer", 5, 60, 1.0},
		{"few chunks, short answer", 2, 10, 0.2},
		{"more than five chunks caps base", 10, 100, 1.0},
		{"one chunk, long answer", 1, 80, 0.2},
		{"boundary: exactly 50 chars is short", 5, 50, 0.5},
		{"boundary: 51 chars is long", 5, 51, 1.0},
		{"zero chunks", 0, 100, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.chunkCount, tt.answerLength)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Confidence(%d, %d) = %f, want %f",
					tt.chunkCount, tt.answerLength, got, tt.want)
			}
		})
	}
}
