package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "Community Youth Development Fund",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "A much longer grant title that should still hash to a stable identifier",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("Youth Tutoring Grant")
	id2 := IDFromContent("Rural Health Grant")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestSimilarityFromDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float32
		want     float32
	}{
		{name: "identical vectors", distance: 0, want: 1},
		{name: "quarter distance", distance: 0.5, want: 0.75},
		{name: "orthogonal", distance: 1, want: 0.5},
		{name: "opposite", distance: 2, want: 0},
		{name: "out of range clamps to zero", distance: 2.5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimilarityFromDistance(tt.distance)
			if got != tt.want {
				t.Errorf("SimilarityFromDistance(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}
}

func TestSimilarityFromDistance_Monotone(t *testing.T) {
	// Similarity must be non-increasing in distance.
	distances := []float32{0, 0.1, 0.3, 0.5, 0.9, 1.3, 1.8, 2.0, 2.2}
	prev := float32(1.1)
	for _, d := range distances {
		s := SimilarityFromDistance(d)
		if s > prev {
			t.Errorf("similarity increased from %v to %v at distance %v", prev, s, d)
		}
		prev = s
	}
}
