package practice

import (
	"context"
	"sync"
	"time"

	"github.com/masterenglish/server/pkg/content"
	"github.com/masterenglish/server/pkg/logger"
	"github.com/masterenglish/server/pkg/progress"
	"github.com/masterenglish/server/pkg/scoring"
)

const (
	SessionInactivityTimeout = 1 * time.Hour
	SessionSweeperInterval   = 10 * time.Minute
)

// Manager holds the active practice session per user and mirrors every
// transition into the persisted session table.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
	tracker  *progress.Tracker
}

func NewManager(now func() time.Time, tracker *progress.Tracker) *Manager {
	if now == nil {
		now = time.Now
	}
	if tracker == nil {
		tracker = progress.DefaultTracker
	}
	return &Manager{
		sessions: make(map[string]*Session),
		now:      now,
		tracker:  tracker,
	}
}

var DefaultManager = NewManager(nil, nil)

func ResetDefaultManager(now func() time.Time, tracker *progress.Tracker) {
	DefaultManager = NewManager(now, tracker)
}

func StartPracticeSweeper(ctx context.Context) {
	DefaultManager.StartSweeper(ctx)
}

// Card is the presentation view of the current idiom. The meaning is only
// included once the card has been revealed.
type Card struct {
	Phase      string `json:"phase"`
	Index      int    `json:"index"`
	Total      int    `json:"total"`
	Score      int    `json:"score"`
	IdiomText  string `json:"idiomText"`
	Meaning    string `json:"meaning,omitempty"`
	Example    string `json:"example,omitempty"`
	Difficulty string `json:"difficulty"`
}

// AnswerResult reports the grading of one card.
type AnswerResult struct {
	Correct bool   `json:"correct"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
	Score   int    `json:"score"`
}

// Summary describes a completed session.
type Summary struct {
	IdiomsPracticed int `json:"idiomsPracticed"`
	Correct         int `json:"correct"`
	ScorePercentage int `json:"scorePercentage"`
}

// ContinueResult is either the next card or the completion summary.
type ContinueResult struct {
	Completed bool     `json:"completed"`
	Next      *Card    `json:"next,omitempty"`
	Summary   *Summary `json:"summary,omitempty"`
}

// Start begins a fresh session over the user's saved idioms, replacing any
// active one. A user with nothing saved cannot start a session.
func (m *Manager) Start(ctx context.Context, userID string) (Card, error) {
	idioms, err := m.tracker.SavedIdioms(ctx, userID)
	if err != nil {
		return Card{}, err
	}
	if len(idioms) == 0 {
		return Card{}, ErrNothingToPractice
	}

	now := m.now()
	session := &Session{
		userID:         userID,
		idioms:         idioms,
		phase:          PhasePresenting,
		startedAt:      now,
		lastActivityAt: now,
	}

	m.mu.Lock()
	m.sessions[userID] = session
	card := m.cardLocked(session)
	state, buildErr := buildSessionState(session)
	m.mu.Unlock()

	if buildErr != nil {
		logger.Error("failed to build practice session state", "user_id", userID, "error", buildErr)
		return card, nil
	}
	if err := upsertSessionState(state); err != nil {
		logger.Error("failed to persist practice session", "user_id", userID, "error", err)
	}
	return card, nil
}

// Get returns the user's active session view, resuming from the persisted
// snapshot when the in-memory one is gone.
func (m *Manager) Get(userID string) (Card, bool) {
	m.mu.Lock()
	if session := m.sessions[userID]; session != nil {
		card := m.cardLocked(session)
		m.mu.Unlock()
		return card, true
	}
	m.mu.Unlock()

	session, err := m.resume(userID)
	if err != nil {
		logger.Error("failed to resume practice session", "user_id", userID, "error", err)
		return Card{}, false
	}
	if session == nil {
		return Card{}, false
	}
	m.mu.Lock()
	card := m.cardLocked(session)
	m.mu.Unlock()
	return card, true
}

// Answer grades a typed meaning against the current card.
func (m *Manager) Answer(userID, text string) (AnswerResult, error) {
	var result AnswerResult
	err := m.withSession(userID, func(session *Session) error {
		correct, err := session.answer(text)
		if err != nil {
			return err
		}
		result = AnswerResult{
			Correct: correct,
			Meaning: session.Current().Meaning,
			Example: session.Current().Example,
			Score:   session.Score(),
		}
		return nil
	})
	return result, err
}

// Continue advances past a revealed card. Completing the final card persists
// the run and feeds the aggregator; if that primary save fails the session
// is kept so the user does not lose the run.
func (m *Manager) Continue(ctx context.Context, userID string) (ContinueResult, error) {
	m.mu.Lock()
	session := m.sessions[userID]
	if session == nil {
		m.mu.Unlock()
		return ContinueResult{}, ErrNoActiveSession
	}
	session.lastActivityAt = m.now()

	completed, err := session.advance()
	if err != nil {
		m.mu.Unlock()
		return ContinueResult{}, err
	}

	if !completed {
		card := m.cardLocked(session)
		state, buildErr := buildSessionState(session)
		m.mu.Unlock()
		if buildErr != nil {
			logger.Error("failed to build practice session state", "user_id", userID, "error", buildErr)
		} else if err := upsertSessionState(state); err != nil {
			logger.Error("failed to persist practice session", "user_id", userID, "error", err)
		}
		return ContinueResult{Next: &card}, nil
	}

	total := session.Total()
	correct := session.Score()
	m.mu.Unlock()

	if err := m.tracker.SaveIdiomPracticeSession(ctx, userID, total, correct); err != nil {
		m.mu.Lock()
		session.phase = PhaseRevealed
		m.mu.Unlock()
		return ContinueResult{}, err
	}

	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	if err := deleteSessionState(userID); err != nil {
		logger.Error("failed to delete practice session state", "user_id", userID, "error", err)
	}

	scorePercentage, err := scoring.Percent(correct, total)
	if err != nil {
		return ContinueResult{}, err
	}
	return ContinueResult{
		Completed: true,
		Summary: &Summary{
			IdiomsPracticed: total,
			Correct:         correct,
			ScorePercentage: scorePercentage,
		},
	}, nil
}

// End abandons the user's active session; nothing is persisted.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	if err := deleteSessionState(userID); err != nil {
		logger.Error("failed to delete practice session state", "user_id", userID, "error", err)
	}
}

// QuickCheckResult grades a single free-standing answer against a library
// idiom without touching any session or progress state.
type QuickCheckResult struct {
	Correct bool   `json:"correct"`
	Meaning string `json:"meaning"`
}

// CheckAnswer grades one answer against the idiom library. It is stateless;
// nothing is recorded.
func CheckAnswer(idiomText, answer string) (QuickCheckResult, bool) {
	entry, ok := content.IdiomByText(idiomText)
	if !ok {
		return QuickCheckResult{}, false
	}
	return QuickCheckResult{
		Correct: MatchAnswer(answer, entry.Meaning),
		Meaning: entry.Meaning,
	}, true
}

func (m *Manager) StartSweeper(ctx context.Context) {
	ticker := time.NewTicker(SessionSweeperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.SweepInactive(m.now())
		}
	}
}

func (m *Manager) SweepInactive(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, session := range m.sessions {
		if session == nil || now.Sub(session.lastActivityAt) > SessionInactivityTimeout {
			delete(m.sessions, userID)
		}
	}
}

func (m *Manager) withSession(userID string, fn func(*Session) error) error {
	m.mu.Lock()
	session := m.sessions[userID]
	if session == nil {
		m.mu.Unlock()
		return ErrNoActiveSession
	}
	session.lastActivityAt = m.now()
	if err := fn(session); err != nil {
		m.mu.Unlock()
		return err
	}
	state, buildErr := buildSessionState(session)
	m.mu.Unlock()

	if buildErr != nil {
		logger.Error("failed to build practice session state", "user_id", userID, "error", buildErr)
		return nil
	}
	if err := upsertSessionState(state); err != nil {
		logger.Error("failed to persist practice session", "user_id", userID, "error", err)
	}
	return nil
}

func (m *Manager) cardLocked(session *Session) Card {
	current := session.Current()
	card := Card{
		Phase:      session.phase,
		Index:      session.index,
		Total:      session.Total(),
		Score:      session.Score(),
		IdiomText:  current.IdiomText,
		Difficulty: current.Difficulty,
	}
	if session.phase != PhasePresenting {
		card.Meaning = current.Meaning
		card.Example = current.Example
	}
	return card
}
