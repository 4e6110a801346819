package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexview/nexview-backend/internal/auth"
	"github.com/nexview/nexview-backend/internal/sessions/domain"
	"github.com/nexview/nexview-backend/internal/sessions/service"
	userdomain "github.com/nexview/nexview-backend/internal/users/domain"
)

type memStore struct {
	sessions map[string]*domain.Session
}

func (m *memStore) Create(_ context.Context, userID string, req domain.CreateSessionRequest) (*domain.Session, error) {
	s := &domain.Session{
		ID:        "durable-1",
		ClientID:  req.ClientID,
		Title:     req.Title,
		DailyGoal: req.DailyGoal,
		EndsAt:    req.EndsAt,
	}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]domain.Session, error) {
	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, userID, sessionID string) (*domain.Session, error) {
	if s := m.find(sessionID); s != nil {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *memStore) Delete(_ context.Context, userID, sessionID string) error {
	if s := m.find(sessionID); s != nil {
		delete(m.sessions, s.ID)
		return nil
	}
	return domain.ErrSessionNotFound
}

func (m *memStore) Engage(_ context.Context, userID, sessionID string, action domain.Action, videoID string) (*domain.Session, bool, error) {
	s := m.find(sessionID)
	if s == nil {
		return nil, false, domain.ErrSessionNotFound
	}
	changed, err := s.Apply(action, videoID)
	if err != nil {
		return nil, false, err
	}
	cp := *s
	return &cp, changed, nil
}

func (m *memStore) find(id string) *domain.Session {
	if s, ok := m.sessions[id]; ok {
		return s
	}
	for _, s := range m.sessions {
		if s.ClientID == id {
			return s
		}
	}
	return nil
}

type memUsers struct{}

func (memUsers) GetByEmail(_ context.Context, email string) (*userdomain.User, error) {
	if email == "ada@example.com" {
		return &userdomain.User{ID: "user-1", Email: email}, nil
	}
	return nil, userdomain.ErrUserNotFound
}

func setupRouter(store *memStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for the token middleware: the identity is fixed.
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxEmail, "ada@example.com")
	})
	Register(r.Group("/sessions"), service.New(store, memUsers{}))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seededStore() *memStore {
	return &memStore{sessions: map[string]*domain.Session{
		"durable-1": {
			ID:       "durable-1",
			ClientID: "temp-1",
			Title:    "graph theory",
			EndsAt:   time.Now().AddDate(0, 1, 0),
		},
	}}
}

func TestCreateSessionHandler(t *testing.T) {
	t.Run("returns 201 with the durable session", func(t *testing.T) {
		store := &memStore{sessions: map[string]*domain.Session{}}
		r := setupRouter(store)

		w := doJSON(r, http.MethodPost, "/sessions",
			`{"id":"temp-1","title":"graph theory","daily_goal":"1 hr","ends_at":"2026-12-01T00:00:00Z"}`)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			OK      bool           `json:"ok"`
			Session domain.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, "durable-1", resp.Session.ID)
		assert.Equal(t, "temp-1", resp.Session.ClientID)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		r := setupRouter(&memStore{sessions: map[string]*domain.Session{}})

		w := doJSON(r, http.MethodPost, "/sessions", `{"id":"temp-1","title":"graph theory"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		r := setupRouter(&memStore{sessions: map[string]*domain.Session{}})

		w := doJSON(r, http.MethodPost, "/sessions", `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetSessionHandler(t *testing.T) {
	t.Run("returns the session by durable id", func(t *testing.T) {
		r := setupRouter(seededStore())

		w := doJSON(r, http.MethodGet, "/sessions/durable-1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			OK      bool           `json:"ok"`
			Session domain.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.Equal(t, "graph theory", resp.Session.Title)
	})

	t.Run("resolves a temporary id to the durable record", func(t *testing.T) {
		r := setupRouter(seededStore())

		w := doJSON(r, http.MethodGet, "/sessions/temp-1", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Session domain.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "durable-1", resp.Session.ID)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		r := setupRouter(seededStore())

		w := doJSON(r, http.MethodGet, "/sessions/missing", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteSessionHandler(t *testing.T) {
	t.Run("deletes by durable id", func(t *testing.T) {
		store := seededStore()
		r := setupRouter(store)

		w := doJSON(r, http.MethodDelete, "/sessions/durable-1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, store.sessions)
	})

	t.Run("deletes by temporary id", func(t *testing.T) {
		store := seededStore()
		r := setupRouter(store)

		w := doJSON(r, http.MethodDelete, "/sessions/temp-1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, store.sessions)
	})

	t.Run("unknown id returns 404 and changes nothing", func(t *testing.T) {
		store := seededStore()
		r := setupRouter(store)

		w := doJSON(r, http.MethodDelete, "/sessions/missing", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Len(t, store.sessions, 1)
	})
}

func TestEngageHandler(t *testing.T) {
	t.Run("like returns the updated session", func(t *testing.T) {
		r := setupRouter(seededStore())

		w := doJSON(r, http.MethodPost, "/sessions/durable-1/videos",
			`{"video_id":"v1","action":"like"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Changed bool           `json:"changed"`
			Session domain.Session `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Changed)
		assert.Equal(t, []string{"v1"}, resp.Session.LikedVideos)
	})

	t.Run("repeated history is a 200 no-op with a message", func(t *testing.T) {
		r := setupRouter(seededStore())

		w := doJSON(r, http.MethodPost, "/sessions/durable-1/videos",
			`{"video_id":"v1","action":"history"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(r, http.MethodPost, "/sessions/durable-1/videos",
			`{"video_id":"v1","action":"history"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			OK      bool   `json:"ok"`
			Changed bool   `json:"changed"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.OK)
		assert.False(t, resp.Changed)
		assert.Equal(t, "video already in history", resp.Message)
	})

	t.Run("unknown action returns 400", func(t *testing.T) {
		r := setupRouter(seededStore())

		w := doJSON(r, http.MethodPost, "/sessions/durable-1/videos",
			`{"video_id":"v1","action":"boost"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown session returns 404", func(t *testing.T) {
		r := setupRouter(seededStore())

		w := doJSON(r, http.MethodPost, "/sessions/missing/videos",
			`{"video_id":"v1","action":"like"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
