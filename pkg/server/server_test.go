package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/masterenglish/server/pkg/config"
	"github.com/masterenglish/server/pkg/db"
	"github.com/masterenglish/server/pkg/internal/testutil"
	"github.com/masterenglish/server/pkg/practice"
	"github.com/masterenglish/server/pkg/progress"
	"github.com/masterenglish/server/pkg/quiz"
)

const testUser = "a1f0c1de-7a55-4a08-8a2b-6a0b1c2d3e4f"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, now *time.Time) *Server {
	t.Helper()
	testutil.SetupTestDB(t)
	clock := func() time.Time { return *now }
	tracker := progress.NewTracker(clock)
	return New(Options{
		Tracker:  tracker,
		Quiz:     quiz.NewManager(clock, tracker),
		Practice: practice.NewManager(clock, tracker),
		Now:      clock,
		CORS:     config.ServerConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestHealthzNeedsNoAuth(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	w := doJSON(t, s, http.MethodGet, "/healthz", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestMiddlewareRejectsBadIdentity(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	if w := doJSON(t, s, http.MethodGet, "/api/v1/categories", nil, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status = %d, want 401", w.Code)
	}
	if w := doJSON(t, s, http.MethodGet, "/api/v1/categories", nil, "not-a-uuid"); w.Code != http.StatusUnauthorized {
		t.Fatalf("malformed id: status = %d, want 401", w.Code)
	}
}

func TestCategoriesProvisionRows(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	w := doJSON(t, s, http.MethodGet, "/api/v1/categories", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Categories []categoryView `json:"categories"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Categories) != 4 {
		t.Fatalf("got %d categories, want 4", len(resp.Categories))
	}
	for _, cat := range resp.Categories {
		if cat.Status != db.StatusNotStarted {
			t.Fatalf("category %q status = %q, want not_started", cat.ID, cat.Status)
		}
	}

	var count int64
	if err := db.DB.Model(&db.LessonProgress{}).Where("user_id = ?", testUser).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 4 {
		t.Fatalf("provisioned %d rows, want 4", count)
	}
}

func TestQuizFlowOverHTTP(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	w := doJSON(t, s, http.MethodPost, "/api/v1/quiz/grammar/start", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("start: status = %d, body %s", w.Code, w.Body.String())
	}
	var snapshot quiz.Snapshot
	decodeBody(t, w, &snapshot)
	if snapshot.Total != 3 || snapshot.Index != 0 {
		t.Fatalf("unexpected start snapshot: %+v", snapshot)
	}

	// Submitting without a selection is rejected.
	if w := doJSON(t, s, http.MethodPost, "/api/v1/quiz/submit", nil, testUser); w.Code != http.StatusBadRequest {
		t.Fatalf("submit without selection: status = %d, want 400", w.Code)
	}

	for i := 0; i < 3; i++ {
		answer := snapshot.Question.CorrectAnswer
		w = doJSON(t, s, http.MethodPost, "/api/v1/quiz/answer", gin.H{"option": answer}, testUser)
		if w.Code != http.StatusOK {
			t.Fatalf("answer %d: status = %d, body %s", i, w.Code, w.Body.String())
		}
		w = doJSON(t, s, http.MethodPost, "/api/v1/quiz/submit", nil, testUser)
		if w.Code != http.StatusOK {
			t.Fatalf("submit %d: status = %d, body %s", i, w.Code, w.Body.String())
		}
		w = doJSON(t, s, http.MethodPost, "/api/v1/quiz/continue", nil, testUser)
		if w.Code != http.StatusOK {
			t.Fatalf("continue %d: status = %d, body %s", i, w.Code, w.Body.String())
		}
		var result quiz.ContinueResult
		decodeBody(t, w, &result)
		if result.Completed {
			if i != 2 {
				t.Fatalf("completed after %d questions, want 3", i+1)
			}
			if result.Summary.ScorePercentage != 100 {
				t.Fatalf("score = %d, want 100", result.Summary.ScorePercentage)
			}
			break
		}
		snapshot = *result.Next
	}

	var attempts []db.QuizAttempt
	if err := db.DB.Where("user_id = ?", testUser).Find(&attempts).Error; err != nil {
		t.Fatalf("failed to load attempts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].ScorePercentage != 100 {
		t.Fatalf("unexpected attempts: %+v", attempts)
	}
}

func TestQuizContinueWithoutSessionIs404(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	if w := doJSON(t, s, http.MethodPost, "/api/v1/quiz/continue", nil, testUser); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestIdiomLibrarySearch(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	w := doJSON(t, s, http.MethodGet, "/api/v1/idioms?q=ice", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Idioms []struct {
			Idiom string `json:"idiom"`
		} `json:"idioms"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Idioms) != 1 || resp.Idioms[0].Idiom != "Break the ice" {
		t.Fatalf("unexpected search result: %+v", resp.Idioms)
	}
}

func TestSavedIdiomLifecycle(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	w := doJSON(t, s, http.MethodPost, "/api/v1/idioms/saved", gin.H{"idiom": "Break the ice"}, testUser)
	if w.Code != http.StatusCreated {
		t.Fatalf("save: status = %d, body %s", w.Code, w.Body.String())
	}
	// Saving again is still success.
	if w := doJSON(t, s, http.MethodPost, "/api/v1/idioms/saved", gin.H{"idiom": "Break the ice"}, testUser); w.Code != http.StatusCreated {
		t.Fatalf("repeat save: status = %d", w.Code)
	}
	if w := doJSON(t, s, http.MethodPost, "/api/v1/idioms/saved", gin.H{"idiom": "Made up phrase"}, testUser); w.Code != http.StatusNotFound {
		t.Fatalf("unknown idiom: status = %d, want 404", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/idioms/saved", nil, testUser)
	var list struct {
		Idioms []db.SavedIdiom `json:"idioms"`
	}
	decodeBody(t, w, &list)
	if len(list.Idioms) != 1 {
		t.Fatalf("got %d saved idioms, want 1", len(list.Idioms))
	}

	w = doJSON(t, s, http.MethodDelete, "/api/v1/idioms/saved/Break%20the%20ice", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/idioms/saved", nil, testUser)
	list.Idioms = nil
	decodeBody(t, w, &list)
	if len(list.Idioms) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list.Idioms))
	}
}

func TestSavedIdiomExportCSV(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	doJSON(t, s, http.MethodPost, "/api/v1/idioms/saved", gin.H{"idiom": "Spill the beans"}, testUser)

	w := doJSON(t, s, http.MethodGet, "/api/v1/idioms/saved/export", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q, want text/csv", ct)
	}

	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[0][0] != "idiom" || records[1][0] != "Spill the beans" {
		t.Fatalf("unexpected CSV content: %v", records)
	}
}

func TestPracticeStartNeedsSavedIdioms(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	if w := doJSON(t, s, http.MethodPost, "/api/v1/practice/start", nil, testUser); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPracticeFlowOverHTTP(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	doJSON(t, s, http.MethodPost, "/api/v1/idioms/saved", gin.H{"idiom": "Bite the bullet"}, testUser)

	w := doJSON(t, s, http.MethodPost, "/api/v1/practice/start", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("start: status = %d, body %s", w.Code, w.Body.String())
	}
	var card practice.Card
	decodeBody(t, w, &card)
	if card.IdiomText != "Bite the bullet" || card.Meaning != "" {
		t.Fatalf("unexpected card: %+v", card)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/practice/answer",
		gin.H{"answer": "to face a difficult situation with courage"}, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("answer: status = %d, body %s", w.Code, w.Body.String())
	}
	var answer practice.AnswerResult
	decodeBody(t, w, &answer)
	if !answer.Correct {
		t.Fatalf("expected a correct match, got %+v", answer)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/practice/continue", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("continue: status = %d, body %s", w.Code, w.Body.String())
	}
	var result practice.ContinueResult
	decodeBody(t, w, &result)
	if !result.Completed || result.Summary.ScorePercentage != 100 {
		t.Fatalf("unexpected completion: %+v", result)
	}
}

func TestQuickCheckEndpoint(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	w := doJSON(t, s, http.MethodPost, "/api/v1/practice/quick-check",
		gin.H{"idiom": "Hit the nail on the head", "answer": "To be exactly right about something"}, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var result practice.QuickCheckResult
	decodeBody(t, w, &result)
	if !result.Correct {
		t.Fatalf("expected correct, got %+v", result)
	}

	if w := doJSON(t, s, http.MethodPost, "/api/v1/practice/quick-check",
		gin.H{"idiom": "No such idiom", "answer": "x"}, testUser); w.Code != http.StatusNotFound {
		t.Fatalf("unknown idiom: status = %d, want 404", w.Code)
	}
}

func TestWritingAnalyzeEndpoint(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	if w := doJSON(t, s, http.MethodPost, "/api/v1/writing/analyze", gin.H{"text": "   "}, testUser); w.Code != http.StatusBadRequest {
		t.Fatalf("blank text: status = %d, want 400", w.Code)
	}

	w := doJSON(t, s, http.MethodPost, "/api/v1/writing/analyze",
		gin.H{"text": "The quick brown fox jumps over the lazy dog. It lands gracefully."}, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		WordCount    int `json:"wordCount"`
		GrammarScore int `json:"grammarScore"`
	}
	decodeBody(t, w, &resp)
	if resp.WordCount != 12 {
		t.Fatalf("word count = %d, want 12", resp.WordCount)
	}

	var count int64
	if err := db.DB.Model(&db.WritingAnalysis{}).Where("user_id = ?", testUser).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("persisted %d analyses, want 1", count)
	}
}

func TestDailyPromptEndpoints(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	w := doJSON(t, s, http.MethodGet, "/api/v1/prompts/today", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("today: status = %d", w.Code)
	}
	var today struct {
		Prompt struct {
			ID int `json:"id"`
		} `json:"prompt"`
		Completed bool `json:"completed"`
	}
	decodeBody(t, w, &today)
	if today.Completed {
		t.Fatal("prompt should not be completed yet")
	}

	if w := doJSON(t, s, http.MethodPost, "/api/v1/prompts/complete",
		gin.H{"promptId": today.Prompt.ID, "response": "  "}, testUser); w.Code != http.StatusBadRequest {
		t.Fatalf("blank response: status = %d, want 400", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/prompts/complete",
		gin.H{"promptId": today.Prompt.ID, "response": "My first answer to the daily challenge."}, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("complete: status = %d, body %s", w.Code, w.Body.String())
	}

	// Re-submission overwrites rather than duplicating.
	w = doJSON(t, s, http.MethodPost, "/api/v1/prompts/complete",
		gin.H{"promptId": today.Prompt.ID, "response": "A better second answer."}, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("resubmit: status = %d", w.Code)
	}

	var rows []db.DailyPromptCompletion
	if err := db.DB.Where("user_id = ?", testUser).Find(&rows).Error; err != nil {
		t.Fatalf("failed to load completions: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d completion rows, want 1", len(rows))
	}
	if rows[0].UserResponse != "A better second answer." {
		t.Fatalf("response = %q, want the overwrite", rows[0].UserResponse)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/prompts/today", nil, testUser)
	decodeBody(t, w, &today)
	if !today.Completed {
		t.Fatal("prompt should report completed after submission")
	}
}

func TestDashboardEndpoint(t *testing.T) {
	now := time.Date(2025, 5, 6, 10, 0, 0, 0, time.UTC)
	s := newTestServer(t, &now)

	doJSON(t, s, http.MethodPost, "/api/v1/idioms/saved", gin.H{"idiom": "Break the ice"}, testUser)

	w := doJSON(t, s, http.MethodGet, "/api/v1/dashboard", nil, testUser)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Stats struct {
			CurrentStreak     int `json:"currentStreak"`
			TotalWordsLearned int `json:"totalWordsLearned"`
		} `json:"stats"`
		Categories  []categoryView `json:"categories"`
		SavedIdioms int            `json:"savedIdioms"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Categories) != 4 {
		t.Fatalf("got %d categories, want 4", len(resp.Categories))
	}
	if resp.SavedIdioms != 1 {
		t.Fatalf("savedIdioms = %d, want 1", resp.SavedIdioms)
	}
}
