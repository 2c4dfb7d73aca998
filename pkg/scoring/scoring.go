// Package scoring computes session score percentages.
package scoring

import (
	"errors"
	"math"
)

var (
	ErrNoQuestions  = errors.New("total must be positive")
	ErrInvalidCount = errors.New("correct must be between 0 and total")
)

// Percent returns round(100 * correct / total) as an integer in [0,100].
// Rounding is half-away-from-zero, so 1/3 -> 33 and 2/3 -> 67.
func Percent(correct, total int) (int, error) {
	if total <= 0 {
		return 0, ErrNoQuestions
	}
	if correct < 0 || correct > total {
		return 0, ErrInvalidCount
	}
	return int(math.Round(100 * float64(correct) / float64(total))), nil
}

// Increment converts a session score percentage into a lesson-progress
// increment in [0,10]: round(score / 10).
func Increment(scorePercentage int) int {
	return int(math.Round(float64(scorePercentage) / 10))
}
