// Package videos proxies the external video catalog. The tracker itself only
// stores opaque video identifiers; everything here is display metadata and is
// never consulted before an engagement mutation is accepted.
package videos

import (
	"context"
	"errors"
	"time"
)

var ErrVideoNotFound = errors.New("video not found")

// Video is the catalog metadata rendered alongside engagement state.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Thumbnail   string    `json:"thumbnail"`
	Views       uint64    `json:"views"`
	ViewsLabel  string    `json:"views_label"`
	Duration    string    `json:"duration"` // clock format, e.g. "14:23"
	Seconds     int       `json:"seconds"`
	PublishedAt time.Time `json:"published_at"`
	Age         string    `json:"age"` // relative, e.g. "3 weeks ago"
	IsShort     bool      `json:"is_short"`
}

// SearchPage is one page of catalog search results.
type SearchPage struct {
	Videos        []Video `json:"videos"`
	NextPageToken string  `json:"next_page_token,omitempty"`
}

// Provider is the catalog lookup contract. Implemented by the YouTube client
// and wrapped by the redis cache.
type Provider interface {
	Search(ctx context.Context, query, pageToken string) (*SearchPage, error)
	Video(ctx context.Context, id string) (*Video, error)
}
