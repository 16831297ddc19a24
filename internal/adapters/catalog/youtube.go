// Package catalog implements the video catalog collaborator against the
// YouTube Data API v3.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/ports"
	"github.com/eleven-am/trendflow/internal/xjson"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func New(cfg domain.CatalogConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.With("component", "catalog"),
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelID    string `json:"channelId"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

func (c *Client) Search(ctx context.Context, query string, maxResults int, opts ports.SearchOptions) ([]ports.SearchItem, error) {
	params := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"maxResults": {strconv.Itoa(maxResults)},
		"key":        {c.apiKey},
	}
	if opts.UploadWindow != "" {
		if after := PublishedAfter(opts.UploadWindow, time.Now()); after != nil {
			params.Set("publishedAfter", after.Format(time.RFC3339))
		}
	}
	if opts.DurationFilter != "" {
		params.Set("videoDuration", opts.DurationFilter)
	}

	var parsed searchResponse
	if err := c.get(ctx, "search", params, &parsed); err != nil {
		return nil, domain.NewCollaboratorError("catalog", "search", err)
	}

	items := make([]ports.SearchItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		items = append(items, ports.SearchItem{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			ChannelID:    item.Snippet.ChannelID,
			ChannelName:  item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			ThumbnailURL: item.Snippet.Thumbnails.High.URL,
		})
	}

	c.logger.Debug("catalog search complete", "query", query, "results", len(items))
	return items, nil
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelID    string `json:"channelId"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

func (c *Client) Statistics(ctx context.Context, videoIDs []string) (map[string]ports.VideoStatistics, error) {
	if len(videoIDs) == 0 {
		return map[string]ports.VideoStatistics{}, nil
	}

	params := url.Values{
		"part": {"statistics,contentDetails"},
		"id":   {strings.Join(videoIDs, ",")},
		"key":  {c.apiKey},
	}

	var parsed videosResponse
	if err := c.get(ctx, "videos", params, &parsed); err != nil {
		return nil, domain.NewCollaboratorError("catalog", "statistics", err)
	}

	stats := make(map[string]ports.VideoStatistics, len(parsed.Items))
	for _, item := range parsed.Items {
		stats[item.ID] = ports.VideoStatistics{
			Views:           parseCount(item.Statistics.ViewCount),
			Likes:           parseCount(item.Statistics.LikeCount),
			Comments:        parseCount(item.Statistics.CommentCount),
			DurationSeconds: ParseDurationSeconds(item.ContentDetails.Duration),
		}
	}
	return stats, nil
}

type channelsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (c *Client) ChannelStatistics(ctx context.Context, channelIDs []string) (map[string]int64, error) {
	if len(channelIDs) == 0 {
		return map[string]int64{}, nil
	}

	params := url.Values{
		"part": {"statistics"},
		"id":   {strings.Join(dedupe(channelIDs), ",")},
		"key":  {c.apiKey},
	}

	var parsed channelsResponse
	if err := c.get(ctx, "channels", params, &parsed); err != nil {
		return nil, domain.NewCollaboratorError("catalog", "channel_statistics", err)
	}

	subscribers := make(map[string]int64, len(parsed.Items))
	for _, item := range parsed.Items {
		subscribers[item.ID] = parseCount(item.Statistics.SubscriberCount)
	}
	return subscribers, nil
}

func (c *Client) Single(ctx context.Context, videoID string) (*ports.VideoDetails, error) {
	params := url.Values{
		"part": {"snippet,statistics,contentDetails"},
		"id":   {videoID},
		"key":  {c.apiKey},
	}

	var parsed videosResponse
	if err := c.get(ctx, "videos", params, &parsed); err != nil {
		return nil, domain.NewCollaboratorError("catalog", "single", err)
	}
	if len(parsed.Items) == 0 {
		return nil, domain.NewCollaboratorError("catalog", "single", domain.ErrNotFound)
	}

	item := parsed.Items[0]
	details := &ports.VideoDetails{
		VideoID:         videoID,
		Title:           item.Snippet.Title,
		Description:     item.Snippet.Description,
		ChannelID:       item.Snippet.ChannelID,
		ChannelName:     item.Snippet.ChannelTitle,
		PublishedAt:     item.Snippet.PublishedAt,
		ThumbnailURL:    item.Snippet.Thumbnails.High.URL,
		VideoURL:        WatchURL(videoID),
		Views:           parseCount(item.Statistics.ViewCount),
		Likes:           parseCount(item.Statistics.LikeCount),
		Comments:        parseCount(item.Statistics.CommentCount),
		DurationSeconds: ParseDurationSeconds(item.ContentDetails.Duration),
	}

	if item.Snippet.ChannelID != "" {
		subs, err := c.ChannelStatistics(ctx, []string{item.Snippet.ChannelID})
		if err != nil {
			return nil, err
		}
		details.Subscribers = subs[item.Snippet.ChannelID]
	}

	return details, nil
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", resource, resp.StatusCode)
	}

	return xjson.Unmarshal(body, out)
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDurationSeconds converts an ISO-8601 duration such as PT1H2M30S to
// total seconds. Unparseable input yields 0.
func ParseDurationSeconds(duration string) int {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return hours*3600 + minutes*60 + seconds
}

// PublishedAfter converts an upload-date window option into the start of that
// window, or nil for an unrecognized option. Weeks start on Monday.
func PublishedAfter(option string, now time.Time) *time.Time {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var start time.Time
	switch option {
	case "today":
		start = midnight
	case "this week":
		weekday := int(now.Weekday()+6) % 7
		start = midnight.AddDate(0, 0, -weekday)
	case "this month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case "this year":
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return nil
	}
	return &start
}

func parseCount(value string) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
