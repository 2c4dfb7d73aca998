package quiz

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/masterenglish/server/pkg/content"
	"github.com/masterenglish/server/pkg/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sessionTTL = 24 * time.Hour

func loadSessionState(userID string, now time.Time) (*db.QuizSessionState, error) {
	if db.DB == nil {
		return nil, nil
	}
	var state db.QuizSessionState
	err := db.DB.
		Where("user_id = ? AND expires_at > ?", userID, now).
		First(&state).Error
	if err == nil {
		return &state, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

func upsertSessionState(state *db.QuizSessionState) error {
	if state == nil || db.DB == nil {
		return nil
	}
	if state.LastActivityAt.IsZero() {
		state.LastActivityAt = time.Now().UTC()
	}
	state.ExpiresAt = state.LastActivityAt.Add(sessionTTL)

	return db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
		},
		UpdateAll: true,
	}).Create(state).Error
}

func deleteSessionState(userID string) error {
	if db.DB == nil {
		return nil
	}
	return db.DB.Where("user_id = ?", userID).
		Delete(&db.QuizSessionState{}).Error
}

func buildSessionState(session *Session) (*db.QuizSessionState, error) {
	if session == nil {
		return nil, errors.New("nil session")
	}
	ids := make([]int, 0, len(session.questions))
	for _, q := range session.questions {
		ids = append(ids, q.ID)
	}
	rawIDs, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	rawResults, err := json.Marshal(session.results)
	if err != nil {
		return nil, err
	}
	return &db.QuizSessionState{
		UserID:         session.userID,
		Category:       session.category,
		QuestionIDs:    datatypes.JSON(rawIDs),
		CurrentIndex:   session.index,
		Phase:          session.phase,
		SelectedOption: session.selected,
		CorrectCount:   session.correct,
		Results:        datatypes.JSON(rawResults),
		StartedAt:      session.startedAt,
		LastActivityAt: session.lastActivityAt,
	}, nil
}

// resume rebuilds the in-memory session from a persisted row, keyed back to
// the category's static question set.
func (m *Manager) resume(userID string) (*Session, error) {
	row, err := loadSessionState(userID, m.now())
	if err != nil || row == nil {
		return nil, err
	}

	var ids []int
	if err := json.Unmarshal(row.QuestionIDs, &ids); err != nil {
		return nil, err
	}
	questions := make([]content.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := content.QuestionByID(row.Category, id); ok {
			questions = append(questions, q)
		}
	}
	if row.CurrentIndex < 0 || row.CurrentIndex >= len(questions) {
		return nil, errors.New("current index out of range")
	}
	var results []bool
	if len(row.Results) > 0 {
		if err := json.Unmarshal(row.Results, &results); err != nil {
			return nil, err
		}
	}

	session := &Session{
		userID:         row.UserID,
		category:       row.Category,
		questions:      questions,
		index:          row.CurrentIndex,
		phase:          row.Phase,
		selected:       row.SelectedOption,
		correct:        row.CorrectCount,
		results:        results,
		startedAt:      row.StartedAt,
		lastActivityAt: row.LastActivityAt,
	}
	m.mu.Lock()
	m.sessions[userID] = session
	m.mu.Unlock()
	return session, nil
}
