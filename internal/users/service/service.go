package service

import (
	"context"
	"strings"

	sessiondomain "github.com/nexview/nexview-backend/internal/sessions/domain"
	"github.com/nexview/nexview-backend/internal/users/domain"
	"github.com/nexview/nexview-backend/internal/users/repository"
)

// SessionLister loads a user's session collection for full-aggregate reads.
type SessionLister interface {
	ListByUser(ctx context.Context, userID string) ([]sessiondomain.Session, error)
}

type UserService struct {
	userRepo *repository.UserRepository
	sessions SessionLister
}

func NewUserService(userRepo *repository.UserRepository, sessions SessionLister) *UserService {
	return &UserService{userRepo: userRepo, sessions: sessions}
}

// GetAggregate returns the full user record including every session and its
// engagement lists.
func (s *UserService) GetAggregate(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Sessions = sessions

	return user, nil
}

// SyncUser ensures a user record exists for the signed-in identity, creating
// it on first sign-in the way the auth callback expects.
func (s *UserService) SyncUser(ctx context.Context, req domain.SyncUserRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return nil, domain.ErrUserNotFound
	}
	if req.Username == "" {
		// Fall back to the mailbox name for accounts created without a name claim.
		req.Username = req.Email[:strings.IndexByte(req.Email+"@", '@')]
	}
	return s.userRepo.Upsert(ctx, req)
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, req domain.UpdateProfileRequest) (*domain.User, error) {
	return s.userRepo.UpdateProfile(ctx, email, req)
}
