package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conorfennell/grindstone/internal/domain"
	"github.com/conorfennell/grindstone/internal/store"
)

type memAdapter struct {
	data []domain.Question
}

func (m *memAdapter) LoadAll() ([]domain.Question, error) {
	return append([]domain.Question(nil), m.data...), nil
}

func (m *memAdapter) SaveAll(questions []domain.Question) error {
	m.data = append([]domain.Question(nil), questions...)
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := store.New(&memAdapter{})
	if err := st.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return NewServer(st)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndGetQuestion(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/questions",
		`{"name":"Two Sum","category":"arrays","url":"https://leetcode.com/problems/two-sum"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201, body: %s", rec.Code, rec.Body)
	}

	var created domain.Question
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID != 1 || created.Status != domain.NotStarted {
		t.Errorf("created = %+v", created)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/questions/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/api/questions",
		`{"name":"Two Sum","category":"arrays","url":"https://leetcode.com/problems/two-sum"}`)

	t.Run("missing question is 404 with a stable message", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/questions/999", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["error"] != "question not found" {
			t.Errorf("error = %q", body["error"])
		}
	})

	t.Run("duplicate url is 409", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/questions",
			`{"name":"Copy","category":"arrays","url":"https://leetcode.com/problems/two-sum"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if body["error"] != "question with this URL already exists" {
			t.Errorf("error = %q", body["error"])
		}
	})

	t.Run("invalid input is 400", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/questions",
			`{"name":"","category":"arrays","url":"https://leetcode.com/problems/x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad body is 400", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPost, "/api/questions", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("bad id is 400", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/questions/abc", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("delete of a missing id is 404", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodDelete, "/api/questions/999", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})
}

func TestReviewCycleRoutes(t *testing.T) {
	s := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/api/questions",
		`{"name":"Two Sum","category":"arrays","url":"https://leetcode.com/problems/two-sum"}`)

	rec := doRequest(t, s, http.MethodPost, "/api/questions/1/complete", `{"difficulty":"easy"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body: %s", rec.Code, rec.Body)
	}
	var q domain.Question
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatal(err)
	}
	if q.Status != domain.UnderReview || q.ReviewCount != 1 {
		t.Errorf("after complete: %+v", q)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/questions/1/review", `{"difficulty":"hard"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("review status = %d, body: %s", rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatal(err)
	}
	if q.Status != domain.NeedsAttention || q.ReviewCount != 2 {
		t.Errorf("after hard review: %+v", q)
	}

	rec = doRequest(t, s, http.MethodPost, "/api/questions/1/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &q); err != nil {
		t.Fatal(err)
	}
	if q.Status != domain.NotStarted || q.ReviewCount != 0 {
		t.Errorf("after reset: %+v", q)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/questions/1/unknown", "")
	if rec.Code != http.StatusMethodNotAllowed {
		// Unknown actions only accept POST; a GET is rejected on method first.
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestDueAndStatsRoutes(t *testing.T) {
	s := newTestServer(t)
	doRequest(t, s, http.MethodPost, "/api/questions",
		`{"name":"Two Sum","category":"arrays","url":"https://leetcode.com/problems/two-sum"}`)
	doRequest(t, s, http.MethodPost, "/api/questions/1/complete", `{"difficulty":"easy"}`)

	rec := doRequest(t, s, http.MethodGet, "/api/questions/due", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("due status = %d", rec.Code)
	}
	var due struct {
		Upcoming []domain.Question `json:"upcoming"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &due); err != nil {
		t.Fatal(err)
	}
	if len(due.Upcoming) != 1 {
		t.Errorf("upcoming = %+v, want the just-completed question", due.Upcoming)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var stats store.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Total != 1 || stats.Completed != 1 || stats.InReview != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
