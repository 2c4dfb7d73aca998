// Package practice runs flashcard-style sessions over a user's saved idioms.
package practice

import (
	"errors"
	"strings"
	"time"

	"github.com/masterenglish/server/pkg/db"
)

// Phase names the state machine's states. Each card moves Presenting ->
// Revealed, then either back to Presenting for the next card or to
// Completed after the last one.
const (
	PhasePresenting = "presenting"
	PhaseRevealed   = "revealed"
	PhaseCompleted  = "completed"
)

var (
	ErrNothingToPractice = errors.New("no saved idioms to practice")
	ErrEmptyAnswer       = errors.New("answer is empty")
	ErrAlreadyRevealed   = errors.New("card already revealed")
	ErrNotRevealed       = errors.New("current card not answered yet")
	ErrSessionCompleted  = errors.New("session already completed")
	ErrNoActiveSession   = errors.New("no active practice session")
)

// Session is one in-flight practice run over a snapshot of the user's saved
// idioms. All mutation goes through the Manager, which serializes access.
type Session struct {
	userID string
	idioms []db.SavedIdiom

	index   int
	phase   string
	correct int
	results []bool

	startedAt      time.Time
	lastActivityAt time.Time
}

func (s *Session) Phase() string { return s.phase }
func (s *Session) Index() int    { return s.index }
func (s *Session) Total() int    { return len(s.idioms) }
func (s *Session) Score() int    { return s.correct }

// Current returns the card at the cursor.
func (s *Session) Current() db.SavedIdiom {
	return s.idioms[s.index]
}

// answer grades a typed meaning against the current card and reveals it.
func (s *Session) answer(text string) (bool, error) {
	switch s.phase {
	case PhaseCompleted:
		return false, ErrSessionCompleted
	case PhaseRevealed:
		return false, ErrAlreadyRevealed
	}
	if strings.TrimSpace(text) == "" {
		return false, ErrEmptyAnswer
	}
	isCorrect := MatchAnswer(text, s.Current().Meaning)
	if isCorrect {
		s.correct++
	}
	s.results = append(s.results, isCorrect)
	s.phase = PhaseRevealed
	return isCorrect, nil
}

// advance moves to the next card, or completes the session after the last
// one. Reports whether the session completed.
func (s *Session) advance() (bool, error) {
	switch s.phase {
	case PhaseCompleted:
		return false, ErrSessionCompleted
	case PhasePresenting:
		return false, ErrNotRevealed
	}
	if s.index < len(s.idioms)-1 {
		s.index++
		s.phase = PhasePresenting
		return false, nil
	}
	s.phase = PhaseCompleted
	return true, nil
}

// MatchAnswer compares a typed answer against the expected meaning. Leading
// and trailing whitespace and letter case are ignored; otherwise the texts
// must match exactly.
func MatchAnswer(answer, meaning string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(meaning))
}
