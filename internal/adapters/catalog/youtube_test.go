package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/ports"
)

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		expected int
	}{
		{name: "hours_minutes_seconds", duration: "PT1H2M30S", expected: 3750},
		{name: "minutes_only", duration: "PT4M", expected: 240},
		{name: "seconds_only", duration: "PT45S", expected: 45},
		{name: "zero", duration: "PT0S", expected: 0},
		{name: "garbage", duration: "1h2m", expected: 0},
		{name: "empty", duration: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseDurationSeconds(tt.duration))
		})
	}
}

func TestPublishedAfter(t *testing.T) {
	// A Wednesday.
	now := time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		option   string
		expected *time.Time
	}{
		{
			name:     "today",
			option:   "today",
			expected: timePtr(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "this_week_starts_monday",
			option:   "this week",
			expected: timePtr(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "this_month",
			option:   "this month",
			expected: timePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "this_year",
			option:   "this year",
			expected: timePtr(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:   "unknown_option",
			option: "whenever",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PublishedAfter(tt.option, now)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestSearchParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "chess openings", r.URL.Query().Get("q"))
		w.Write([]byte(`{
			"items": [
				{
					"id": {"videoId": "abc123def45"},
					"snippet": {
						"title": "Chess Openings Explained",
						"channelId": "chan1",
						"channelTitle": "Chess Channel",
						"publishedAt": "2025-06-01T00:00:00Z",
						"thumbnails": {"high": {"url": "http://img/1.jpg"}}
					}
				}
			]
		}`))
	}))
	defer server.Close()

	client := New(domain.CatalogConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	}, slog.Default())

	items, err := client.Search(context.Background(), "chess openings", 5, ports.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "abc123def45", items[0].VideoID)
	assert.Equal(t, "Chess Channel", items[0].ChannelName)
}

func TestStatisticsParsesStringCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [
				{
					"id": "abc123def45",
					"statistics": {"viewCount": "1000", "likeCount": "50", "commentCount": "10"},
					"contentDetails": {"duration": "PT10M"}
				}
			]
		}`))
	}))
	defer server.Close()

	client := New(domain.CatalogConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	}, slog.Default())

	stats, err := client.Statistics(context.Background(), []string{"abc123def45"})
	require.NoError(t, err)
	got := stats["abc123def45"]
	assert.Equal(t, int64(1000), got.Views)
	assert.Equal(t, int64(50), got.Likes)
	assert.Equal(t, int64(10), got.Comments)
	assert.Equal(t, 600, got.DurationSeconds)
}

func TestSingleNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := New(domain.CatalogConfig{
		BaseURL:        server.URL,
		APIKey:         "test-key",
		RequestTimeout: 5 * time.Second,
	}, slog.Default())

	_, err := client.Single(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domain.IsCollaboratorError(err))
	assert.True(t, domain.IsNotFound(err))
}
