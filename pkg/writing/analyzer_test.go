package writing

import (
	"errors"
	"reflect"
	"testing"
)

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := Analyze(text); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Analyze(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	text := "The students have been working on their project for several weeks. It looks very good."
	first, err := Analyze(text)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	second, err := Analyze(text)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("analysis not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestAnalyzeCountsWords(t *testing.T) {
	analysis, err := Analyze("One two three four five.")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if analysis.WordCount != 5 {
		t.Fatalf("expected 5 words, got %d", analysis.WordCount)
	}
}

func TestAnalyzeFlagsCommonMistakes(t *testing.T) {
	clean, err := Analyze("She does not like coffee.")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	sloppy, err := Analyze("She dont like coffee and should of said so.")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if sloppy.GrammarScore >= clean.GrammarScore {
		t.Fatalf("expected lower grammar score for sloppy text: clean=%d sloppy=%d",
			clean.GrammarScore, sloppy.GrammarScore)
	}
	found := false
	for _, s := range sloppy.Suggestions {
		if s.Type == "grammar" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a grammar suggestion for sloppy text")
	}
}

func TestAnalyzeFlagsShouting(t *testing.T) {
	analysis, err := Analyze("This is REALLY IMPORTANT news for everyone.")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if analysis.ToneScore >= 100 {
		t.Fatalf("expected tone deduction for all-caps words, got %d", analysis.ToneScore)
	}
}

func TestScoresStayInRange(t *testing.T) {
	texts := []string{
		"ok",
		"WOW!!! THIS IS AMAZING!!! REALLY GREAT!!! VERY COOL!!!",
		"dont cant wont im aint alot should of could of would of",
	}
	for _, text := range texts {
		analysis, err := Analyze(text)
		if err != nil {
			t.Fatalf("Analyze(%q) returned error: %v", text, err)
		}
		for name, score := range map[string]int{
			"grammar": analysis.GrammarScore,
			"clarity": analysis.ClarityScore,
			"tone":    analysis.ToneScore,
		} {
			if score < 40 || score > 100 {
				t.Errorf("%s score %d out of range for %q", name, score, text)
			}
		}
	}
}

func TestAverageScore(t *testing.T) {
	a := Analysis{GrammarScore: 85, ClarityScore: 78, ToneScore: 90}
	if got := AverageScore(a); got != 84 {
		t.Fatalf("AverageScore = %d, want 84", got)
	}
}
