package videos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	videoCalls  int
	searchCalls int
	video       *Video
	page        *SearchPage
	err         error
}

func (s *stubProvider) Video(_ context.Context, id string) (*Video, error) {
	s.videoCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.video, nil
}

func (s *stubProvider) Search(_ context.Context, query, pageToken string) (*SearchPage, error) {
	s.searchCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

func setupCache(t *testing.T) (*CachedProvider, *stubProvider, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	stub := &stubProvider{
		video: &Video{ID: "v1", Title: "Intro to Graphs", Seconds: 933, Duration: "15:33"},
		page: &SearchPage{
			Videos:        []Video{{ID: "v1", Title: "Intro to Graphs"}},
			NextPageToken: "tok-2",
		},
	}
	return NewCachedProvider(stub, client), stub, mr
}

func TestCachedProvider_Video(t *testing.T) {
	ctx := context.Background()

	t.Run("second lookup is served from the cache", func(t *testing.T) {
		cached, stub, _ := setupCache(t)

		v, err := cached.Video(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "Intro to Graphs", v.Title)
		assert.Equal(t, 1, stub.videoCalls)

		v, err = cached.Video(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "Intro to Graphs", v.Title)
		assert.Equal(t, 1, stub.videoCalls)
	})

	t.Run("entries carry a TTL", func(t *testing.T) {
		cached, stub, mr := setupCache(t)

		_, err := cached.Video(ctx, "v1")
		require.NoError(t, err)

		mr.FastForward(videoTTL + time.Minute)

		_, err = cached.Video(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, 2, stub.videoCalls)
	})

	t.Run("provider errors pass through uncached", func(t *testing.T) {
		cached, stub, _ := setupCache(t)
		stub.err = errors.New("quota exceeded")

		_, err := cached.Video(ctx, "v1")
		require.Error(t, err)

		_, err = cached.Video(ctx, "v1")
		require.Error(t, err)
		assert.Equal(t, 2, stub.videoCalls)
	})

	t.Run("cache outage degrades to direct calls", func(t *testing.T) {
		cached, stub, mr := setupCache(t)
		mr.Close()

		v, err := cached.Video(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "v1", v.ID)
		assert.Equal(t, 1, stub.videoCalls)
	})
}

func TestCachedProvider_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("repeat query with the same page token hits the cache", func(t *testing.T) {
		cached, stub, _ := setupCache(t)

		page, err := cached.Search(ctx, "graph theory", "")
		require.NoError(t, err)
		require.Len(t, page.Videos, 1)
		assert.Equal(t, 1, stub.searchCalls)

		page, err = cached.Search(ctx, "graph theory", "")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", page.NextPageToken)
		assert.Equal(t, 1, stub.searchCalls)
	})

	t.Run("different page tokens are distinct entries", func(t *testing.T) {
		cached, stub, _ := setupCache(t)

		_, err := cached.Search(ctx, "graph theory", "")
		require.NoError(t, err)
		_, err = cached.Search(ctx, "graph theory", "tok-2")
		require.NoError(t, err)
		assert.Equal(t, 2, stub.searchCalls)
	})
}
