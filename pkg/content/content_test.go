package content

import (
	"testing"
	"time"
)

func TestQuestionsForCategoryFallsBack(t *testing.T) {
	questions := QuestionsForCategory("astrophysics")
	grammar := QuestionsForCategory(CategoryGrammar)
	if len(questions) != len(grammar) {
		t.Fatalf("expected fallback to grammar set, got %d questions", len(questions))
	}
	if questions[0].Prompt != grammar[0].Prompt {
		t.Fatalf("fallback returned a different set")
	}
}

func TestQuestionsOptionsAreValid(t *testing.T) {
	for _, category := range []string{CategoryGrammar, CategoryVocabulary, CategoryWriting, CategoryIdioms} {
		for _, q := range QuestionsForCategory(category) {
			if len(q.Options) < 2 {
				t.Errorf("%s question %d has %d options", category, q.ID, len(q.Options))
			}
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				t.Errorf("%s question %d correct answer %d out of range", category, q.ID, q.CorrectAnswer)
			}
			if q.Explanation == "" {
				t.Errorf("%s question %d has no explanation", category, q.ID)
			}
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("vocabulary"); got != CategoryVocabulary {
		t.Errorf("expected vocabulary, got %q", got)
	}
	if got := NormalizeCategory("nonsense"); got != DefaultCategory {
		t.Errorf("expected default category, got %q", got)
	}
}

func TestFilterIdiomsBySearch(t *testing.T) {
	matches := FilterIdioms("secret", "all")
	if len(matches) != 1 || matches[0].Idiom != "Spill the beans" {
		t.Fatalf("expected the meaning search to match 'Spill the beans', got %+v", matches)
	}

	matches = FilterIdioms("ICE", "")
	if len(matches) != 1 || matches[0].Idiom != "Break the ice" {
		t.Fatalf("expected case-insensitive idiom search, got %+v", matches)
	}
}

func TestFilterIdiomsByCategory(t *testing.T) {
	matches := FilterIdioms("", "work")
	if len(matches) != 1 || matches[0].Idiom != "Burn the midnight oil" {
		t.Fatalf("expected category filter to match one idiom, got %+v", matches)
	}

	if got := len(FilterIdioms("", "all")); got != len(Idioms()) {
		t.Fatalf("expected 'all' to match the whole library, got %d", got)
	}
}

func TestIdiomByTextIsCaseInsensitive(t *testing.T) {
	entry, ok := IdiomByText("  break the ICE ")
	if !ok {
		t.Fatal("expected lookup to succeed")
	}
	if entry.Idiom != "Break the ice" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if _, ok := IdiomByText("no such idiom"); ok {
		t.Fatal("expected lookup to fail for unknown idiom")
	}
}

func TestPromptForDateRotates(t *testing.T) {
	day1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	p1 := PromptForDate(day1)
	p2 := PromptForDate(day2)
	if p1.ID == p2.ID {
		t.Fatalf("expected consecutive days to rotate prompts, both got %d", p1.ID)
	}

	// Same date always yields the same prompt.
	if again := PromptForDate(day1); again.ID != p1.ID {
		t.Fatalf("expected stable prompt for a date, got %d then %d", p1.ID, again.ID)
	}
}
