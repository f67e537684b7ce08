package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingToSentimentScore(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		want   int
	}{
		{"minimum rating", 1.0, 20},
		{"mid rating", 3.0, 60},
		{"maximum rating", 5.0, 100},
		{"one decimal", 4.5, 90},
		{"rounds to nearest", 3.33, 67},
		{"clamps below range", -10, 20},
		{"clamps above range", 150, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RatingToSentimentScore(tt.rating))
		})
	}
}

func TestSentimentScoreToRating(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  float64
	}{
		{"perfect score", 100, 5.0},
		{"mid score", 60, 3.0},
		{"rounds to one decimal", 65, 3.3},
		{"zero clamps to minimum star", 0, 1.0},
		{"below minimum star", 10, 1.0},
		{"clamps negative model output", -20, 1.0},
		{"clamps oversized model output", 400, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SentimentScoreToRating(tt.score))
		})
	}
}

func TestRatingScaleRoundTrip(t *testing.T) {
	// Whole and half star ratings survive the conversion to the sentiment
	// scale and back
	for _, rating := range []float64{1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0, 4.5, 5.0} {
		assert.Equal(t, rating, SentimentScoreToRating(RatingToSentimentScore(rating)))
	}
}

func TestRoundRating(t *testing.T) {
	assert.Equal(t, 4.0, RoundRating(4.0))
	assert.Equal(t, 3.3, RoundRating(3.25))
	assert.Equal(t, 4.7, RoundRating(4.666666))
	assert.Equal(t, 0.0, RoundRating(0.04))
}
