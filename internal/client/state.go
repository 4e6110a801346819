package client

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// State is the client's locally persisted pointer set: which session is
// selected and when each session's daily window was last started. Session
// keys migrate from temporary to durable ids during reconciliation.
type State struct {
	SelectedSession string                  `toml:"selected_session"`
	Sessions        map[string]SessionState `toml:"sessions"`
}

// SessionState is the per-session slice of local state.
type SessionState struct {
	LastStarted time.Time `toml:"last_started"`
}

// LoadState reads the state file. A missing file is an empty state, not an
// error.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{Sessions: map[string]SessionState{}}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := toml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if st.Sessions == nil {
		st.Sessions = map[string]SessionState{}
	}
	return &st, nil
}

// Save writes the state file atomically via a temp file rename.
func (s *State) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Rekey moves every local reference from one session id to another. Used when
// a temporary id is confirmed as a durable one.
func (s *State) Rekey(oldID, newID string) {
	if st, ok := s.Sessions[oldID]; ok {
		delete(s.Sessions, oldID)
		s.Sessions[newID] = st
	}
	if s.SelectedSession == oldID {
		s.SelectedSession = newID
	}
}

// Forget drops every local reference to a session id.
func (s *State) Forget(id string) {
	delete(s.Sessions, id)
	if s.SelectedSession == id {
		s.SelectedSession = ""
	}
}
