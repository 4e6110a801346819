package domain

// EngagementState is the per-(session, video) like/dislike state. Modelling it
// as one three-valued state makes a simultaneous like+dislike unrepresentable.
type EngagementState int

const (
	Neutral EngagementState = iota
	Liked
	Disliked
)

// Engagement returns the like/dislike state of videoID within s.
func (s *Session) Engagement(videoID string) EngagementState {
	if contains(s.LikedVideos, videoID) {
		return Liked
	}
	if contains(s.DislikedVideos, videoID) {
		return Disliked
	}
	return Neutral
}

// Apply performs one engagement transition in place and reports whether any
// list changed. Like and dislike are mutually exclusive: setting one clears
// the other. History insertion is idempotent; a video already present leaves
// the session untouched and returns changed=false.
func (s *Session) Apply(action Action, videoID string) (changed bool, err error) {
	if videoID == "" || !action.Valid() {
		return false, ErrInvalidAction
	}

	switch action {
	case ActionLike:
		if !contains(s.LikedVideos, videoID) {
			s.LikedVideos = append(s.LikedVideos, videoID)
			changed = true
		}
		if contains(s.DislikedVideos, videoID) {
			s.DislikedVideos = remove(s.DislikedVideos, videoID)
			changed = true
		}
	case ActionUnlike:
		if contains(s.LikedVideos, videoID) {
			s.LikedVideos = remove(s.LikedVideos, videoID)
			changed = true
		}
	case ActionDislike:
		if !contains(s.DislikedVideos, videoID) {
			s.DislikedVideos = append(s.DislikedVideos, videoID)
			changed = true
		}
		if contains(s.LikedVideos, videoID) {
			s.LikedVideos = remove(s.LikedVideos, videoID)
			changed = true
		}
	case ActionUndislike:
		if contains(s.DislikedVideos, videoID) {
			s.DislikedVideos = remove(s.DislikedVideos, videoID)
			changed = true
		}
	case ActionSave:
		if !contains(s.SavedVideos, videoID) {
			s.SavedVideos = append(s.SavedVideos, videoID)
			changed = true
		}
	case ActionUnsave:
		if contains(s.SavedVideos, videoID) {
			s.SavedVideos = remove(s.SavedVideos, videoID)
			changed = true
		}
	case ActionHistory:
		if !contains(s.History, videoID) {
			s.History = append(s.History, videoID)
			changed = true
		}
	}

	return changed, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
