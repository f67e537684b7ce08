package utils

import "math"

// RatingToSentimentScore maps a 1-5 star rating to the 0-100 sentiment scale
// used by the AI analysis. Out-of-range input is clamped, never rejected.
func RatingToSentimentScore(rating float64) int {
	if rating < 1.0 {
		rating = 1.0
	}
	if rating > 5.0 {
		rating = 5.0
	}
	return int(math.Round(rating * 20))
}

// SentimentScoreToRating maps a 0-100 sentiment score back onto the 1.0-5.0
// star scale, rounded to one decimal place. Clamping guards against
// out-of-range model output.
func SentimentScoreToRating(score int) float64 {
	rating := RoundRating(float64(score) / 20)
	if rating < 1.0 {
		rating = 1.0
	}
	if rating > 5.0 {
		rating = 5.0
	}
	return rating
}

// RoundRating rounds a rating to one decimal place
func RoundRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}
