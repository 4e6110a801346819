package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexview/nexview-backend/internal/sessions/domain"
)

// Repo persists sessions and their engagement lists. Every engagement
// mutation is a single UPDATE targeting the array columns of one session row,
// so two concurrent mutations on the same session cannot overwrite each
// other's effect the way a whole-document save would.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const sessionCols = `id, client_id, title, daily_goal, ends_at,
liked_videos, disliked_videos, saved_videos, history, created_at, updated_at`

// Sessions are addressed by durable id, falling back to the client-submitted
// temporary id so a delete racing creation still finds its target.
const matchSession = `user_id = $1::uuid and (id::text = $2 or client_id = $2)`

func (r *Repo) Create(ctx context.Context, userID string, req domain.CreateSessionRequest) (*domain.Session, error) {
	if req.ClientID == "" || req.Title == "" || req.DailyGoal == "" || req.EndsAt.IsZero() {
		return nil, domain.ErrInvalidSession
	}

	const q = `
insert into sessions (id, user_id, client_id, title, daily_goal, ends_at)
values ($1, $2::uuid, $3, $4, $5, $6)
returning ` + sessionCols + `;`

	row := r.db.QueryRow(ctx, q,
		uuid.New().String(), userID, req.ClientID, req.Title, req.DailyGoal, req.EndsAt)

	s, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Session, error) {
	const q = `
select ` + sessionCols + `
from sessions
where user_id = $1::uuid
order by created_at;`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Session, 0, 8)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userID, sessionID string) (*domain.Session, error) {
	const q = `
select ` + sessionCols + `
from sessions
where ` + matchSession + `;`

	s, err := scanSession(r.db.QueryRow(ctx, q, userID, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Delete removes one session permanently. There is no soft delete.
func (r *Repo) Delete(ctx context.Context, userID, sessionID string) error {
	const q = `delete from sessions where ` + matchSession + `;`

	ct, err := r.db.Exec(ctx, q, userID, sessionID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Engage applies one engagement transition atomically and returns the updated
// session. The like/dislike mutual exclusion happens inside the same UPDATE,
// so a transition touching two lists is still exactly one write. For history,
// changed reports whether the video was actually appended; re-adding a video
// already present is a no-op success.
func (r *Repo) Engage(ctx context.Context, userID, sessionID string, action domain.Action, videoID string) (*domain.Session, bool, error) {
	if videoID == "" || !action.Valid() {
		return nil, false, domain.ErrInvalidAction
	}

	if action == domain.ActionHistory {
		return r.appendHistory(ctx, userID, sessionID, videoID)
	}

	q, ok := engageQueries[action]
	if !ok {
		return nil, false, domain.ErrInvalidAction
	}

	s, err := scanSession(r.db.QueryRow(ctx, q, userID, sessionID, videoID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

var engageQueries = map[domain.Action]string{
	domain.ActionLike: `
update sessions set
  liked_videos = case when $3 = any(liked_videos) then liked_videos
                      else array_append(liked_videos, $3) end,
  disliked_videos = array_remove(disliked_videos, $3),
  updated_at = now()
where ` + matchSession + `
returning ` + sessionCols + `;`,

	domain.ActionDislike: `
update sessions set
  disliked_videos = case when $3 = any(disliked_videos) then disliked_videos
                         else array_append(disliked_videos, $3) end,
  liked_videos = array_remove(liked_videos, $3),
  updated_at = now()
where ` + matchSession + `
returning ` + sessionCols + `;`,

	domain.ActionSave: `
update sessions set
  saved_videos = case when $3 = any(saved_videos) then saved_videos
                      else array_append(saved_videos, $3) end,
  updated_at = now()
where ` + matchSession + `
returning ` + sessionCols + `;`,

	domain.ActionUnlike: `
update sessions set
  liked_videos = array_remove(liked_videos, $3),
  updated_at = now()
where ` + matchSession + `
returning ` + sessionCols + `;`,

	domain.ActionUndislike: `
update sessions set
  disliked_videos = array_remove(disliked_videos, $3),
  updated_at = now()
where ` + matchSession + `
returning ` + sessionCols + `;`,

	domain.ActionUnsave: `
update sessions set
  saved_videos = array_remove(saved_videos, $3),
  updated_at = now()
where ` + matchSession + `
returning ` + sessionCols + `;`,
}

// appendHistory needs the pre-update membership to distinguish a real append
// from a duplicate, so it reads and writes in one statement via a CTE.
func (r *Repo) appendHistory(ctx context.Context, userID, sessionID, videoID string) (*domain.Session, bool, error) {
	const q = `
with target as (
  select id, $3 = any(history) as existed
  from sessions
  where ` + matchSession + `
)
update sessions s set
  history = case when t.existed then s.history else array_append(s.history, $3) end,
  updated_at = case when t.existed then s.updated_at else now() end
from target t
where s.id = t.id
returning s.id, s.client_id, s.title, s.daily_goal, s.ends_at,
  s.liked_videos, s.disliked_videos, s.saved_videos, s.history,
  s.created_at, s.updated_at, t.existed;`

	var s domain.Session
	var existed bool
	err := r.db.QueryRow(ctx, q, userID, sessionID, videoID).Scan(
		&s.ID, &s.ClientID, &s.Title, &s.DailyGoal, &s.EndsAt,
		&s.LikedVideos, &s.DislikedVideos, &s.SavedVideos, &s.History,
		&s.CreatedAt, &s.UpdatedAt, &existed)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, false, err
	}
	return &s, !existed, nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session
	err := row.Scan(
		&s.ID, &s.ClientID, &s.Title, &s.DailyGoal, &s.EndsAt,
		&s.LikedVideos, &s.DislikedVideos, &s.SavedVideos, &s.History,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
