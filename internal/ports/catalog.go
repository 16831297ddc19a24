package ports

import (
	"context"
)

// SearchItem is one result from a catalog search, before statistics are
// attached.
type SearchItem struct {
	VideoID      string
	Title        string
	ChannelID    string
	ChannelName  string
	PublishedAt  string
	ThumbnailURL string
}

// VideoStatistics are the raw counters for a single video. DurationSeconds is
// parsed from the catalog's ISO-8601 duration by the adapter.
type VideoStatistics struct {
	Views           int64
	Likes           int64
	Comments        int64
	DurationSeconds int
}

// VideoDetails is the full record for a single video lookup.
type VideoDetails struct {
	VideoID         string
	Title           string
	Description     string
	ChannelID       string
	ChannelName     string
	PublishedAt     string
	ThumbnailURL    string
	VideoURL        string
	Views           int64
	Likes           int64
	Comments        int64
	DurationSeconds int
	Subscribers     int64
}

// SearchOptions narrows a catalog search. UploadWindow is one of "today",
// "this week", "this month" or "this year"; the adapter translates it into a
// published-after bound. Unknown values are ignored.
type SearchOptions struct {
	DurationFilter string
	UploadWindow   string
}

// Catalog is the public video catalog collaborator.
type Catalog interface {
	Search(ctx context.Context, query string, maxResults int, opts SearchOptions) ([]SearchItem, error)
	Statistics(ctx context.Context, videoIDs []string) (map[string]VideoStatistics, error)
	ChannelStatistics(ctx context.Context, channelIDs []string) (map[string]int64, error)
	Single(ctx context.Context, videoID string) (*VideoDetails, error)
}
