package videos

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/nexview/nexview-backend/config"
	"github.com/nexview/nexview-backend/internal/timeutil"
)

// YouTubeClient looks up catalog metadata through the YouTube Data API.
// Calls are rate limited client-side; quota exhaustion upstream surfaces as a
// plain error and must never block engagement mutation.
type YouTubeClient struct {
	svc        *youtube.Service
	maxResults int64
	limiter    *rate.Limiter
}

func NewYouTubeClient(ctx context.Context, cfg *config.YouTubeConfig) (*YouTubeClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required")
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 12
	}

	return &YouTubeClient{
		svc:        svc,
		maxResults: maxResults,
		// The Data API quota is 10k units/day; search costs 100 units.
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
	}, nil
}

// Search runs a catalog search and enriches each hit with statistics and
// duration. Shorts (60s or less) are filtered out of the page.
func (c *YouTubeClient) Search(ctx context.Context, query, pageToken string) (*SearchPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	call := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(c.maxResults)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	recordProviderCall(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}

	// Videos starts non-nil so a page whose hits were all filtered still
	// renders an empty array, not null.
	page := &SearchPage{Videos: []Video{}, NextPageToken: resp.NextPageToken}
	if len(ids) == 0 {
		return page, nil
	}

	details, err := c.fetchDetails(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		v, ok := details[id]
		if !ok || v.IsShort {
			continue
		}
		page.Videos = append(page.Videos, v)
	}

	return page, nil
}

// Video fetches metadata for a single video id.
func (c *YouTubeClient) Video(ctx context.Context, id string) (*Video, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	details, err := c.fetchDetails(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	v, ok := details[id]
	if !ok {
		return nil, ErrVideoNotFound
	}
	return &v, nil
}

func (c *YouTubeClient) fetchDetails(ctx context.Context, ids []string) (map[string]Video, error) {
	start := time.Now()
	resp, err := c.svc.Videos.
		List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	recordProviderCall(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("video lookup failed: %w", err)
	}

	now := time.Now()
	out := make(map[string]Video, len(resp.Items))
	for _, item := range resp.Items {
		v := Video{ID: item.Id}

		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.Author = item.Snippet.ChannelTitle
			if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				v.PublishedAt = t
				v.Age = timeutil.Since(t, now)
			}
			if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
				v.Thumbnail = item.Snippet.Thumbnails.High.Url
			}
		}
		if item.Statistics != nil {
			v.Views = item.Statistics.ViewCount
			v.ViewsLabel = groupDigits(item.Statistics.ViewCount) + " views"
		}
		if item.ContentDetails != nil {
			v.Seconds = parseISODuration(item.ContentDetails.Duration)
			v.Duration = clockFormat(v.Seconds)
			v.IsShort = v.Seconds > 0 && v.Seconds <= shortMaxSeconds
		}

		out[item.Id] = v
	}

	return out, nil
}
