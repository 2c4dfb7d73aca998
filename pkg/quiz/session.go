// Package quiz drives a user through an ordered quiz question sequence.
package quiz

import (
	"errors"
	"time"

	"github.com/masterenglish/server/pkg/content"
)

// Phase names the state machine's states. A session moves Answering ->
// Answered per question, then either back to Answering for the next
// question or to Completed after the last one.
const (
	PhaseAnswering = "answering"
	PhaseAnswered  = "answered"
	PhaseCompleted = "completed"
)

var (
	ErrNoSelection      = errors.New("no answer selected")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrNotAnswered      = errors.New("current question not answered yet")
	ErrSessionCompleted = errors.New("session already completed")
	ErrInvalidOption    = errors.New("selected option out of range")
	ErrNoActiveSession  = errors.New("no active quiz session")
)

// Session is one in-flight quiz run. All mutation goes through the Manager,
// which serializes access.
type Session struct {
	userID    string
	category  string
	questions []content.Question

	index    int
	phase    string
	selected int
	correct  int
	results  []bool

	startedAt      time.Time
	lastActivityAt time.Time
}

func (s *Session) Category() string { return s.category }
func (s *Session) Phase() string    { return s.phase }
func (s *Session) Index() int       { return s.index }
func (s *Session) Total() int       { return len(s.questions) }
func (s *Session) Score() int       { return s.correct }
func (s *Session) Selected() int    { return s.selected }

// Current returns the question at the cursor.
func (s *Session) Current() content.Question {
	return s.questions[s.index]
}

// Results reports per-question correctness for the answered prefix.
func (s *Session) Results() []bool {
	out := make([]bool, len(s.results))
	copy(out, s.results)
	return out
}

// selectAnswer records a selection; the choice stays mutable until submit.
func (s *Session) selectAnswer(option int) error {
	switch s.phase {
	case PhaseCompleted:
		return ErrSessionCompleted
	case PhaseAnswered:
		return ErrAlreadyAnswered
	}
	if option < 0 || option >= len(s.Current().Options) {
		return ErrInvalidOption
	}
	s.selected = option
	return nil
}

// submit locks in the current selection and grades it.
func (s *Session) submit() (bool, error) {
	switch s.phase {
	case PhaseCompleted:
		return false, ErrSessionCompleted
	case PhaseAnswered:
		return false, ErrAlreadyAnswered
	}
	if s.selected < 0 {
		return false, ErrNoSelection
	}
	isCorrect := s.selected == s.Current().CorrectAnswer
	if isCorrect {
		s.correct++
	}
	s.results = append(s.results, isCorrect)
	s.phase = PhaseAnswered
	return isCorrect, nil
}

// advance moves to the next question, or completes the session after the
// last one. Reports whether the session completed.
func (s *Session) advance() (bool, error) {
	switch s.phase {
	case PhaseCompleted:
		return false, ErrSessionCompleted
	case PhaseAnswering:
		return false, ErrNotAnswered
	}
	if s.index < len(s.questions)-1 {
		s.index++
		s.selected = -1
		s.phase = PhaseAnswering
		return false, nil
	}
	s.phase = PhaseCompleted
	return true, nil
}
