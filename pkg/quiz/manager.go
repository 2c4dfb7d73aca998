package quiz

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

// Manager holds the active quiz session per user and mirrors every
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

func StartQuizSweeper(ctx context.Context) {
	DefaultManager.StartSweeper(ctx)
}

// Snapshot is the session view handed to the presentation layer.
type Snapshot struct {
	Category string           `json:"category"`
	Phase    string           `json:"phase"`
	Index    int              `json:"index"`
	Total    int              `json:"total"`
	Score    int              `json:"score"`
	Selected int              `json:"selected"`
	Question content.Question `json:"question"`
}

// SubmitResult reports the grading of one question.
type SubmitResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Score         int    `json:"score"`
}

// Summary describes a completed session.
type Summary struct {
	Category        string `json:"category"`
	QuestionsTotal  int    `json:"questionsTotal"`
	Correct         int    `json:"correct"`
	ScorePercentage int    `json:"scorePercentage"`
	ElapsedSeconds  int    `json:"elapsedSeconds"`
}

// ContinueResult is either the next question or the completion summary.
type ContinueResult struct {
	Completed bool      `json:"completed"`
	Next      *Snapshot `json:"next,omitempty"`
	Summary   *Summary  `json:"summary,omitempty"`
}

// Start begins a fresh session for the user, replacing any active one.
// Unrecognized categories fall back to the default question set.
func (m *Manager) Start(userID, category string) Snapshot {
	category = content.NormalizeCategory(category)
	now := m.now()
	session := &Session{
		userID:         userID,
		category:       category,
		questions:      content.QuestionsForCategory(category),
		selected:       -1,
		phase:          PhaseAnswering,
		startedAt:      now,
		lastActivityAt: now,
	}

	m.mu.Lock()
	m.sessions[userID] = session
	snapshot := m.snapshotLocked(session)
	state, err := buildSessionState(session)
	m.mu.Unlock()

	if err != nil {
		logger.Error("failed to build quiz session state", "user_id", userID, "error", err)
		return snapshot
	}
	if err := upsertSessionState(state); err != nil {
		logger.Error("failed to persist quiz session", "user_id", userID, "error", err)
	}
	return snapshot
}

// Get returns the user's active session view, resuming from the persisted
// snapshot when the in-memory one is gone (e.g. after a restart).
func (m *Manager) Get(userID string) (Snapshot, bool) {
	m.mu.Lock()
	if session := m.sessions[userID]; session != nil {
		snapshot := m.snapshotLocked(session)
		m.mu.Unlock()
		return snapshot, true
	}
	m.mu.Unlock()

	session, err := m.resume(userID)
	if err != nil {
		logger.Error("failed to resume quiz session", "user_id", userID, "error", err)
		return Snapshot{}, false
	}
	if session == nil {
		return Snapshot{}, false
	}
	m.mu.Lock()
	snapshot := m.snapshotLocked(session)
	m.mu.Unlock()
	return snapshot, true
}

// SelectAnswer records a (still mutable) option choice.
func (m *Manager) SelectAnswer(userID string, option int) error {
	return m.withSession(userID, func(session *Session) error {
		return session.selectAnswer(option)
	})
}

// Submit grades the current question.
func (m *Manager) Submit(userID string) (SubmitResult, error) {
	var result SubmitResult
	err := m.withSession(userID, func(session *Session) error {
		correct, err := session.submit()
		if err != nil {
			return err
		}
		result = SubmitResult{
			Correct:       correct,
			CorrectAnswer: session.Current().CorrectAnswer,
			Explanation:   session.Current().Explanation,
			Score:         session.Score(),
		}
		return nil
	})
	return result, err
}

// Continue advances past an answered question. Completing the final question
// persists the attempt and feeds the aggregator; if that primary save fails
// the session is kept so the user does not lose the run.
func (m *Manager) Continue(ctx context.Context, userID string) (ContinueResult, error) {
	m.mu.Lock()
	session := m.sessions[userID]
	if session == nil {
		m.mu.Unlock()
		return ContinueResult{}, ErrNoActiveSession
	}
	now := m.now()
	session.lastActivityAt = now

	completed, err := session.advance()
	if err != nil {
		m.mu.Unlock()
		return ContinueResult{}, err
	}

	if !completed {
		snapshot := m.snapshotLocked(session)
		state, buildErr := buildSessionState(session)
		m.mu.Unlock()
		if buildErr != nil {
			logger.Error("failed to build quiz session state", "user_id", userID, "error", buildErr)
		} else if err := upsertSessionState(state); err != nil {
			logger.Error("failed to persist quiz session", "user_id", userID, "error", err)
		}
		return ContinueResult{Next: &snapshot}, nil
	}

	elapsed := int(now.Sub(session.startedAt).Round(time.Second).Seconds())
	category := session.category
	total := session.Total()
	correct := session.Score()
	m.mu.Unlock()

	if err := m.tracker.SaveQuizAttempt(ctx, userID, category, total, correct, elapsed); err != nil {
		// Roll the state machine back so a retry can complete again.
		m.mu.Lock()
		session.phase = PhaseAnswered
		m.mu.Unlock()
		return ContinueResult{}, err
	}

	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	if err := deleteSessionState(userID); err != nil {
		logger.Error("failed to delete quiz session state", "user_id", userID, "error", err)
	}

	scorePercentage, err := scoring.Percent(correct, total)
	if err != nil {
		return ContinueResult{}, err
	}
	return ContinueResult{
		Completed: true,
		Summary: &Summary{
			Category:        category,
			QuestionsTotal:  total,
			Correct:         correct,
			ScorePercentage: scorePercentage,
			ElapsedSeconds:  elapsed,
		},
	}, nil
}

// End abandons the user's active session; nothing is persisted.
func (m *Manager) End(userID string) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	if err := deleteSessionState(userID); err != nil {
		logger.Error("failed to delete quiz session state", "user_id", userID, "error", err)
	}
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
		logger.Error("failed to build quiz session state", "user_id", userID, "error", buildErr)
		return nil
	}
	if err := upsertSessionState(state); err != nil {
		logger.Error("failed to persist quiz session", "user_id", userID, "error", err)
	}
	return nil
}

func (m *Manager) snapshotLocked(session *Session) Snapshot {
	return Snapshot{
		Category: session.category,
		Phase:    session.phase,
		Index:    session.index,
		Total:    session.Total(),
		Score:    session.Score(),
		Selected: session.selected,
		Question: session.Current(),
	}
}
