package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexview/nexview-backend/internal/sessions/domain"
	"github.com/nexview/nexview-backend/internal/timeutil"
)

// IdentityStatus tags where a local session sits in the temporary-to-durable
// id lifecycle.
type IdentityStatus string

const (
	// IdentityPending means the session exists locally under a temporary id
	// and durable creation is still in flight.
	IdentityPending IdentityStatus = "pending"
	// IdentityConfirmed means the server assigned a durable id and every
	// local reference has been swapped to it.
	IdentityConfirmed IdentityStatus = "confirmed"
)

// LocalSession is one entry in the controller's collection.
type LocalSession struct {
	domain.Session
	Status IdentityStatus
}

// ErrNoSelection is returned when an operation needs a selected session and
// none is valid.
var ErrNoSelection = errors.New("no session selected")

// Backend is the server surface the controller depends on.
type Backend interface {
	CreateSession(ctx context.Context, req domain.CreateSessionRequest) (*domain.Session, error)
	ListSessions(ctx context.Context) ([]domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	Engage(ctx context.Context, sessionID, videoID string, action domain.Action) (*domain.Session, bool, error)
}

// Controller owns the local session collection and the selection pointer.
// Creation is optimistic: the session appears in the collection under a
// temporary id immediately, then reconciles to the durable id the server
// assigns, or rolls back if the server rejects it.
type Controller struct {
	api       Backend
	statePath string

	mu       sync.Mutex
	sessions []LocalSession
	state    *State
}

func NewController(api Backend, statePath string) (*Controller, error) {
	st, err := LoadState(statePath)
	if err != nil {
		return nil, err
	}
	return &Controller{api: api, statePath: statePath, state: st}, nil
}

// Refresh replaces the confirmed part of the collection with the server's
// view. Pending entries survive the merge; they are not on the server yet.
func (c *Controller) Refresh(ctx context.Context) error {
	remote, err := c.api.ListSessions(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make([]LocalSession, 0, len(remote))
	for _, s := range remote {
		merged = append(merged, LocalSession{Session: s, Status: IdentityConfirmed})
	}
	for _, s := range c.sessions {
		if s.Status == IdentityPending {
			merged = append(merged, s)
		}
	}
	c.sessions = merged

	c.validateSelectionLocked()
	return c.state.Save(c.statePath)
}

// CreateSession adds the session to the collection under a temporary id,
// selects it, and submits it for durable creation. On success the temporary
// id is swapped for the durable one everywhere it is referenced. On failure
// the optimistic entry is removed and the selection cleared.
func (c *Controller) CreateSession(ctx context.Context, title, dailyGoal string, endsAt time.Time) (*LocalSession, error) {
	tempID := "temp-" + uuid.NewString()

	optimistic := LocalSession{
		Session: domain.Session{
			ID:        tempID,
			ClientID:  tempID,
			Title:     title,
			DailyGoal: dailyGoal,
			EndsAt:    endsAt,
			CreatedAt: time.Now(),
		},
		Status: IdentityPending,
	}

	c.mu.Lock()
	c.sessions = append(c.sessions, optimistic)
	c.state.SelectedSession = tempID
	if err := c.state.Save(c.statePath); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	durable, err := c.api.CreateSession(ctx, domain.CreateSessionRequest{
		ClientID:  tempID,
		Title:     title,
		DailyGoal: dailyGoal,
		EndsAt:    endsAt,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.removeLocked(tempID)
		if saveErr := c.state.Save(c.statePath); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}

	confirmed := c.confirmLocked(tempID, durable)
	if err := c.state.Save(c.statePath); err != nil {
		return nil, err
	}
	return confirmed, nil
}

// confirmLocked swaps a pending entry's temporary id for the durable record
// and rekeys every local reference.
func (c *Controller) confirmLocked(tempID string, durable *domain.Session) *LocalSession {
	for i := range c.sessions {
		if c.sessions[i].ID == tempID {
			c.sessions[i] = LocalSession{Session: *durable, Status: IdentityConfirmed}
			c.state.Rekey(tempID, durable.ID)
			return &c.sessions[i]
		}
	}
	// The entry vanished while creation was in flight (deleted by temp id).
	// The durable record exists server-side; adopt it without selecting.
	c.sessions = append(c.sessions, LocalSession{Session: *durable, Status: IdentityConfirmed})
	c.state.Rekey(tempID, durable.ID)
	return &c.sessions[len(c.sessions)-1]
}

// DeleteSession removes a session by whichever id the collection knows it
// under, temporary or durable. The server lookup accepts both.
func (c *Controller) DeleteSession(ctx context.Context, id string) error {
	if err := c.api.DeleteSession(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
	return c.state.Save(c.statePath)
}

func (c *Controller) removeLocked(id string) {
	for i := range c.sessions {
		if c.sessions[i].ID == id || c.sessions[i].ClientID == id {
			removed := c.sessions[i]
			c.sessions = append(c.sessions[:i], c.sessions[i+1:]...)
			c.state.Forget(removed.ID)
			c.state.Forget(removed.ClientID)
			return
		}
	}
}

// Sessions returns a snapshot of the local collection.
func (c *Controller) Sessions() []LocalSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LocalSession, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// Select points the selection at a session in the collection.
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.findLocked(id) == nil {
		return domain.ErrSessionNotFound
	}
	c.state.SelectedSession = id
	return c.state.Save(c.statePath)
}

// Selected returns the selected session, validating the pointer against the
// collection first. A pointer at a session that no longer exists is cleared,
// never returned dangling.
func (c *Controller) Selected() (*LocalSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.validateSelectionLocked()
	if s == nil {
		return nil, false
	}
	cp := *s
	return &cp, true
}

// ClearSelection drops the selection pointer.
func (c *Controller) ClearSelection() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SelectedSession = ""
	return c.state.Save(c.statePath)
}

func (c *Controller) validateSelectionLocked() *LocalSession {
	if c.state.SelectedSession == "" {
		return nil
	}
	if s := c.findLocked(c.state.SelectedSession); s != nil {
		return s
	}
	c.state.SelectedSession = ""
	return nil
}

func (c *Controller) findLocked(id string) *LocalSession {
	for i := range c.sessions {
		if c.sessions[i].ID == id || c.sessions[i].ClientID == id {
			return &c.sessions[i]
		}
	}
	return nil
}

// Progress recomputes the selected session's daily window at now. The window
// resets when it was never started or was last started on a prior calendar
// day; elapsed time is clamped to the goal. The window start is persisted so
// repeated polls within the same day measure from the same origin.
func (c *Controller) Progress(now time.Time) (domain.Progress, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.validateSelectionLocked()
	if s == nil {
		return domain.Progress{}, ErrNoSelection
	}

	goal := domain.ParseDailyGoal(s.DailyGoal)
	prev := c.state.Sessions[s.ID].LastStarted
	p := domain.AdvanceProgress(goal, prev, now)

	if !p.LastStarted.Equal(prev) {
		c.state.Sessions[s.ID] = SessionState{LastStarted: p.LastStarted}
		if err := c.state.Save(c.statePath); err != nil {
			return domain.Progress{}, err
		}
	}
	return p, nil
}

// SearchQuery builds the catalog query for a free-text search. With a valid
// selection the session's topic prefixes the text so results stay on topic.
func (c *Controller) SearchQuery(freeText string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	freeText = strings.TrimSpace(freeText)
	s := c.validateSelectionLocked()
	if s == nil || s.Title == "" {
		return freeText
	}
	if freeText == "" {
		return s.Title
	}
	return s.Title + " " + freeText
}

// Engage forwards an engagement action for the selected session and folds the
// server's updated copy back into the collection.
func (c *Controller) Engage(ctx context.Context, videoID string, action domain.Action) (*domain.EngagementResult, error) {
	c.mu.Lock()
	s := c.validateSelectionLocked()
	if s == nil {
		c.mu.Unlock()
		return nil, ErrNoSelection
	}
	id := s.ID
	c.mu.Unlock()

	updated, changed, err := c.api.Engage(ctx, id, videoID, action)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if updated != nil {
		if local := c.findLocked(updated.ID); local != nil {
			local.Session = *updated
		}
	}
	c.mu.Unlock()

	return &domain.EngagementResult{Session: updated, Changed: changed}, nil
}

// EndsLabel renders the selected session's deadline relative to now, "Ended"
// once the deadline has passed.
func (c *Controller) EndsLabel(now time.Time) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.validateSelectionLocked()
	if s == nil {
		return "", ErrNoSelection
	}
	return timeutil.Until(s.EndsAt, now), nil
}
