package scoring

import (
	"errors"
	"testing"
)

func TestPercentBoundaries(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{0, 1, 0},
		{1, 1, 100},
		{1, 2, 50},
		{3, 4, 75},
		{1, 6, 17},
		{5, 6, 83},
		{0, 10, 0},
		{10, 10, 100},
	}
	for _, tc := range cases {
		got, err := Percent(tc.correct, tc.total)
		if err != nil {
			t.Errorf("Percent(%d, %d) returned error: %v", tc.correct, tc.total, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestPercentRange(t *testing.T) {
	for total := 1; total <= 20; total++ {
		for correct := 0; correct <= total; correct++ {
			got, err := Percent(correct, total)
			if err != nil {
				t.Fatalf("Percent(%d, %d) returned error: %v", correct, total, err)
			}
			if got < 0 || got > 100 {
				t.Fatalf("Percent(%d, %d) = %d out of range", correct, total, got)
			}
		}
	}
}

func TestPercentRejectsInvalidInput(t *testing.T) {
	if _, err := Percent(1, 0); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("expected ErrNoQuestions for zero total, got %v", err)
	}
	if _, err := Percent(-1, 3); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount for negative correct, got %v", err)
	}
	if _, err := Percent(4, 3); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("expected ErrInvalidCount for correct > total, got %v", err)
	}
}

func TestIncrement(t *testing.T) {
	cases := []struct{ score, want int }{
		{0, 0},
		{33, 3},
		{50, 5},
		{67, 7},
		{75, 8},
		{100, 10},
	}
	for _, tc := range cases {
		if got := Increment(tc.score); got != tc.want {
			t.Errorf("Increment(%d) = %d, want %d", tc.score, got, tc.want)
		}
	}
}
