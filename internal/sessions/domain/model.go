package domain

import "time"

// Session is one time-boxed, topic-scoped tracking context owned by a user.
// The server assigns ID at creation; ClientID carries the temporary identifier
// the client generated before the session was durable, and is retained so a
// delete racing creation can still find its target.
type Session struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"client_id,omitempty"`
	Title          string    `json:"title"`
	DailyGoal      string    `json:"daily_goal"` // free-form, e.g. "1 hr", "30 min"
	EndsAt         time.Time `json:"ends_at"`
	LikedVideos    []string  `json:"liked_videos"`
	DislikedVideos []string  `json:"disliked_videos"`
	SavedVideos    []string  `json:"saved_videos"`
	History        []string  `json:"history"` // first-viewed order, no duplicates
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Action is an engagement transition applied to a (session, video) pair.
type Action string

const (
	ActionLike      Action = "like"
	ActionUnlike    Action = "unlike"
	ActionDislike   Action = "dislike"
	ActionUndislike Action = "undislike"
	ActionSave      Action = "save"
	ActionUnsave    Action = "unsave"
	ActionHistory   Action = "history"
)

// Valid reports whether a is one of the seven engagement actions.
func (a Action) Valid() bool {
	switch a {
	case ActionLike, ActionUnlike, ActionDislike, ActionUndislike,
		ActionSave, ActionUnsave, ActionHistory:
		return true
	}
	return false
}

// CreateSessionRequest carries the client payload for durable creation.
// ClientID is the client-generated temporary identifier.
type CreateSessionRequest struct {
	ClientID  string    `json:"id"`
	Title     string    `json:"title"`
	DailyGoal string    `json:"daily_goal"`
	EndsAt    time.Time `json:"ends_at"`
}

// EngagementResult reports the outcome of one mutation. Changed is false for
// the no-op success case (history append of an already-present video).
type EngagementResult struct {
	Session *Session
	Changed bool
}
