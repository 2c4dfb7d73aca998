// Package writing provides the simulated writing-feedback analysis. The
// scores are heuristic stand-ins computed from surface text features, so the
// same input always yields the same analysis.
package writing

import (
	"errors"
	"math"
	"strings"
	"unicode"
)

var ErrEmptyText = errors.New("text must not be empty")

type Suggestion struct {
	Type       string `json:"type"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Severity   string `json:"severity"`
}

type Analysis struct {
	WordCount    int          `json:"wordCount"`
	GrammarScore int          `json:"grammarScore"`
	ClarityScore int          `json:"clarityScore"`
	ToneScore    int          `json:"toneScore"`
	ReadingLevel string       `json:"readingLevel"`
	Suggestions  []Suggestion `json:"suggestions"`
}

var commonMistakes = []string{
	"alot", "dont", "cant", "wont", "im", "aint", "should of", "could of", "would of",
}

var fillerWords = []string{
	"really", "very", "just", "actually", "basically", "literally", "stuff", "things",
}

// Analyze computes the heuristic feedback for a piece of writing. Empty or
// whitespace-only text is rejected before any scoring.
func Analyze(text string) (Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return Analysis{}, ErrEmptyText
	}

	words := strings.Fields(text)
	sentences := splitSentences(text)

	analysis := Analysis{WordCount: len(words)}
	analysis.GrammarScore, analysis.Suggestions = grammarScore(text, words, analysis.Suggestions)
	analysis.ClarityScore, analysis.Suggestions = clarityScore(words, sentences, analysis.Suggestions)
	analysis.ToneScore, analysis.Suggestions = toneScore(text, words, analysis.Suggestions)
	analysis.ReadingLevel = readingLevel(words, sentences)
	return analysis, nil
}

// AverageScore is the single progress value derived from an analysis.
func AverageScore(a Analysis) int {
	return int(math.Round(float64(a.GrammarScore+a.ClarityScore+a.ToneScore) / 3))
}

func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func grammarScore(text string, words []string, suggestions []Suggestion) (int, []Suggestion) {
	score := 100
	lowered := strings.ToLower(text)

	mistakes := 0
	for _, mistake := range commonMistakes {
		if containsWord(lowered, mistake) {
			mistakes++
		}
	}
	if mistakes > 0 {
		score -= 8 * mistakes
		suggestions = append(suggestions, Suggestion{
			Type:       "grammar",
			Issue:      "Some words look misspelled or informal",
			Suggestion: "Check contractions like \"don't\" and phrases like \"should have\".",
			Severity:   "medium",
		})
	}

	trimmed := strings.TrimSpace(text)
	last := rune(trimmed[len(trimmed)-1])
	if last != '.' && last != '!' && last != '?' {
		score -= 5
		suggestions = append(suggestions, Suggestion{
			Type:       "grammar",
			Issue:      "The text does not end with punctuation",
			Suggestion: "Finish the final sentence with a period, question mark, or exclamation mark.",
			Severity:   "low",
		})
	}

	return clampScore(score), suggestions
}

func clarityScore(words []string, sentences []string, suggestions []Suggestion) (int, []Suggestion) {
	score := 100
	if len(sentences) > 0 {
		avg := float64(len(words)) / float64(len(sentences))
		switch {
		case avg > 25:
			score -= 20
			suggestions = append(suggestions, Suggestion{
				Type:       "style",
				Issue:      "Sentences run long",
				Suggestion: "Break long sentences into shorter ones to improve readability.",
				Severity:   "medium",
			})
		case avg < 5 && len(sentences) > 1:
			score -= 10
			suggestions = append(suggestions, Suggestion{
				Type:       "style",
				Issue:      "Many very short sentences",
				Suggestion: "Combine related ideas into one sentence for better flow.",
				Severity:   "low",
			})
		}
	}

	fillers := 0
	for _, word := range words {
		cleaned := strings.ToLower(strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }))
		for _, filler := range fillerWords {
			if cleaned == filler {
				fillers++
				break
			}
		}
	}
	if fillers > 2 {
		score -= 3 * (fillers - 2)
		suggestions = append(suggestions, Suggestion{
			Type:       "vocabulary",
			Issue:      "Filler words weaken the writing",
			Suggestion: "Replace words like \"really\" and \"very\" with more specific vocabulary.",
			Severity:   "medium",
		})
	}

	return clampScore(score), suggestions
}

func toneScore(text string, words []string, suggestions []Suggestion) (int, []Suggestion) {
	score := 100

	exclamations := strings.Count(text, "!")
	if exclamations > 2 {
		score -= 5 * (exclamations - 2)
		suggestions = append(suggestions, Suggestion{
			Type:       "tone",
			Issue:      "Frequent exclamation marks",
			Suggestion: "Reserve exclamation marks for genuine emphasis.",
			Severity:   "low",
		})
	}

	shouting := 0
	for _, word := range words {
		if len(word) > 3 && word == strings.ToUpper(word) && strings.IndexFunc(word, unicode.IsLetter) >= 0 {
			shouting++
		}
	}
	if shouting > 0 {
		score -= 10 * shouting
		suggestions = append(suggestions, Suggestion{
			Type:       "tone",
			Issue:      "All-caps words read as shouting",
			Suggestion: "Use italics or word choice for emphasis instead of capital letters.",
			Severity:   "medium",
		})
	}

	return clampScore(score), suggestions
}

func readingLevel(words []string, sentences []string) string {
	if len(sentences) == 0 {
		return "Grade 5-6"
	}
	avgSentence := float64(len(words)) / float64(len(sentences))
	var totalLetters int
	for _, word := range words {
		totalLetters += len(word)
	}
	avgWord := float64(totalLetters) / float64(len(words))

	complexity := avgSentence + 3*avgWord
	switch {
	case complexity < 20:
		return "Grade 5-6"
	case complexity < 27:
		return "Grade 7-8"
	case complexity < 34:
		return "Grade 8-9"
	default:
		return "Grade 10-12"
	}
}

func containsWord(text, word string) bool {
	index := 0
	for {
		i := strings.Index(text[index:], word)
		if i < 0 {
			return false
		}
		start := index + i
		end := start + len(word)
		beforeOK := start == 0 || !unicode.IsLetter(rune(text[start-1]))
		afterOK := end >= len(text) || !unicode.IsLetter(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		index = end
	}
}

func clampScore(score int) int {
	if score < 40 {
		return 40
	}
	if score > 100 {
		return 100
	}
	return score
}
