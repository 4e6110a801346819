package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nexview/nexview-backend/internal/sessions/domain"
)

// DefaultTimeout bounds one backend round trip.
const DefaultTimeout = 15 * time.Second

// APIClient talks to the backend session endpoints on behalf of the local
// controller.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

type sessionEnvelope struct {
	OK      bool             `json:"ok"`
	Error   string           `json:"error"`
	Changed *bool            `json:"changed"`
	Session *domain.Session  `json:"session"`
	List    []domain.Session `json:"sessions"`
}

// CreateSession submits an optimistically created session for durable
// storage. The returned session carries the server-assigned id alongside the
// echoed temporary id.
func (c *APIClient) CreateSession(ctx context.Context, req domain.CreateSessionRequest) (*domain.Session, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/sessions", req)
	if err != nil {
		return nil, err
	}
	if env.Session == nil {
		return nil, fmt.Errorf("create session: empty response")
	}
	return env.Session, nil
}

func (c *APIClient) ListSessions(ctx context.Context) ([]domain.Session, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/v1/sessions", nil)
	if err != nil {
		return nil, err
	}
	return env.List, nil
}

// DeleteSession removes a session by whichever identifier the caller knows,
// durable or temporary.
func (c *APIClient) DeleteSession(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	return err
}

// Engage applies one engagement action. The bool result mirrors the server's
// changed flag; false means the mutation was an acknowledged no-op.
func (c *APIClient) Engage(ctx context.Context, sessionID, videoID string, action domain.Action) (*domain.Session, bool, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/v1/sessions/"+sessionID+"/videos", map[string]string{
		"video_id": videoID,
		"action":   string(action),
	})
	if err != nil {
		return nil, false, err
	}

	changed := true
	if env.Changed != nil {
		changed = *env.Changed
	}
	return env.Session, changed, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body any) (*sessionEnvelope, error) {
	var payload *bytes.Buffer
	if body != nil {
		payload = &bytes.Buffer{}
		if err := json.NewEncoder(payload).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env sessionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if env.Error != "" {
			return nil, fmt.Errorf("backend returned %d: %s", resp.StatusCode, env.Error)
		}
		return nil, fmt.Errorf("backend returned %d", resp.StatusCode)
	}

	return &env, nil
}
