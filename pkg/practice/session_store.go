package practice

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/masterenglish/server/pkg/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sessionTTL = 24 * time.Hour

func loadSessionState(userID string, now time.Time) (*db.PracticeSessionState, error) {
	if db.DB == nil {
		return nil, nil
	}
	var state db.PracticeSessionState
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

func upsertSessionState(state *db.PracticeSessionState) error {
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
		Delete(&db.PracticeSessionState{}).Error
}

func buildSessionState(session *Session) (*db.PracticeSessionState, error) {
	if session == nil {
		return nil, errors.New("nil session")
	}
	ids := make([]uint, 0, len(session.idioms))
	for _, idiom := range session.idioms {
		ids = append(ids, idiom.ID)
	}
	rawIDs, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	rawResults, err := json.Marshal(session.results)
	if err != nil {
		return nil, err
	}
	return &db.PracticeSessionState{
		UserID:         session.userID,
		IdiomIDs:       datatypes.JSON(rawIDs),
		CurrentIndex:   session.index,
		Phase:          session.phase,
		CorrectCount:   session.correct,
		Results:        datatypes.JSON(rawResults),
		StartedAt:      session.startedAt,
		LastActivityAt: session.lastActivityAt,
	}, nil
}

// resume rebuilds the in-memory session from a persisted row. Cards are
// reloaded from the saved idiom table; idioms removed since the session
// started are skipped.
func (m *Manager) resume(userID string) (*Session, error) {
	row, err := loadSessionState(userID, m.now())
	if err != nil || row == nil {
		return nil, err
	}

	var ids []uint
	if err := json.Unmarshal(row.IdiomIDs, &ids); err != nil {
		return nil, err
	}
	var rows []db.SavedIdiom
	if err := db.DB.Where("user_id = ? AND id IN ?", userID, ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]db.SavedIdiom, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	idioms := make([]db.SavedIdiom, 0, len(ids))
	for _, id := range ids {
		if idiom, ok := byID[id]; ok {
			idioms = append(idioms, idiom)
		}
	}
	if row.CurrentIndex < 0 || row.CurrentIndex >= len(idioms) {
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
		idioms:         idioms,
		index:          row.CurrentIndex,
		phase:          row.Phase,
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
