package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name     string
		likes    int64
		comments int64
		views    int64
		expected float64
	}{
		{
			name:     "spec_example",
			likes:    50,
			comments: 10,
			views:    1000,
			expected: 6.0,
		},
		{
			name:     "zero_views_is_neutral",
			likes:    50,
			comments: 10,
			views:    0,
			expected: 0,
		},
		{
			name:     "negative_views_is_neutral",
			likes:    50,
			comments: 10,
			views:    -5,
			expected: 0,
		},
		{
			name:     "negative_counters_clamped",
			likes:    -50,
			comments: -10,
			views:    1000,
			expected: 0,
		},
		{
			name:     "rounded_to_two_decimals",
			likes:    1,
			comments: 0,
			views:    3,
			expected: 33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EngagementRate(tt.likes, tt.comments, tt.views)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestViewToSubscriberRatio(t *testing.T) {
	tests := []struct {
		name        string
		views       int64
		subscribers int64
		expected    float64
	}{
		{name: "spec_example", views: 1000, subscribers: 100, expected: 10.0},
		{name: "zero_subscribers", views: 1000, subscribers: 0, expected: 0},
		{name: "negative_subscribers", views: 1000, subscribers: -1, expected: 0},
		{name: "zero_views", views: 0, subscribers: 100, expected: 0},
		{name: "rounding", views: 1000, subscribers: 3, expected: 333.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewToSubscriberRatio(tt.views, tt.subscribers)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestViewVelocity(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		views      int64
		uploadedAt string
		expected   float64
	}{
		{
			name:       "two_days_ago",
			views:      1000,
			uploadedAt: "2025-06-08T12:00:00Z",
			expected:   500.0,
		},
		{
			name:       "uploaded_today_floors_to_one_day",
			views:      1000,
			uploadedAt: "2025-06-10T06:00:00Z",
			expected:   1000.0,
		},
		{
			name:       "missing_timestamp",
			views:      1000,
			uploadedAt: "",
			expected:   0,
		},
		{
			name:       "unparseable_timestamp",
			views:      1000,
			uploadedAt: "not-a-date",
			expected:   0,
		},
		{
			name:       "zero_views",
			views:      0,
			uploadedAt: "2025-06-08T12:00:00Z",
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewVelocity(tt.views, tt.uploadedAt, now)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestClickThroughRate(t *testing.T) {
	assert.Equal(t, 5.0, ClickThroughRate(50, 1000))
	assert.Equal(t, 0.0, ClickThroughRate(50, 0))
	assert.Equal(t, 0.0, ClickThroughRate(-1, 1000))
	assert.Equal(t, 33.33, ClickThroughRate(1, 3))
}
