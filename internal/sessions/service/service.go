package service

import (
	"context"
	"strings"

	"github.com/nexview/nexview-backend/internal/sessions/domain"
	userdomain "github.com/nexview/nexview-backend/internal/users/domain"
)

// Store is the session persistence contract implemented by the postgres
// repository.
type Store interface {
	Create(ctx context.Context, userID string, req domain.CreateSessionRequest) (*domain.Session, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Session, error)
	Get(ctx context.Context, userID, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, userID, sessionID string) error
	Engage(ctx context.Context, userID, sessionID string, action domain.Action, videoID string) (*domain.Session, bool, error)
}

// UserDirectory resolves the caller's email identity to a user record.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
}

// Service orchestrates session CRUD and engagement mutations. Validation
// happens before any store access; a malformed request has no side effect.
type Service struct {
	store Store
	users UserDirectory
}

func New(store Store, users UserDirectory) *Service {
	return &Service{store: store, users: users}
}

func (s *Service) Create(ctx context.Context, email string, req domain.CreateSessionRequest) (*domain.Session, error) {
	req.ClientID = strings.TrimSpace(req.ClientID)
	req.Title = strings.TrimSpace(req.Title)
	req.DailyGoal = strings.TrimSpace(req.DailyGoal)
	if req.ClientID == "" || req.Title == "" || req.DailyGoal == "" || req.EndsAt.IsZero() {
		return nil, domain.ErrInvalidSession
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, user.ID, req)
}

func (s *Service) List(ctx context.Context, email string) ([]domain.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.store.ListByUser(ctx, user.ID)
}

// Get loads one session, addressed by durable id or by the temporary id the
// client submitted at creation.
func (s *Service) Get(ctx context.Context, email, sessionID string) (*domain.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, domain.ErrSessionNotFound
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return s.store.Get(ctx, user.ID, sessionID)
}

// Delete removes one session, addressed by durable id or, when reconciliation
// is still in flight on the client, by the temporary id it submitted.
func (s *Service) Delete(ctx context.Context, email, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrSessionNotFound
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	return s.store.Delete(ctx, user.ID, sessionID)
}

// Engage applies one engagement action to a (session, video) pair.
func (s *Service) Engage(ctx context.Context, email, sessionID, videoID string, action domain.Action) (*domain.EngagementResult, error) {
	if strings.TrimSpace(videoID) == "" || strings.TrimSpace(sessionID) == "" || !action.Valid() {
		return nil, domain.ErrInvalidAction
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	session, changed, err := s.store.Engage(ctx, user.ID, sessionID, action, videoID)
	if err != nil {
		return nil, err
	}

	return &domain.EngagementResult{Session: session, Changed: changed}, nil
}
