// Package transcripts fetches video transcripts through the catalog's
// timed-text endpoint. Timed segments are joined into plain text here, at the
// producing boundary, so consumers only ever handle a single string.
package transcripts

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/eleven-am/trendflow/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func New(cfg domain.TranscriptsConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.With("component", "transcripts"),
	}
}

var videoIDPattern = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the 11-character video ID out of a watch URL.
func ExtractVideoID(videoURL string) (string, bool) {
	match := videoIDPattern.FindStringSubmatch(videoURL)
	if match == nil {
		return "", false
	}
	return match[1], true
}

type timedText struct {
	Segments []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch returns the transcript of the video behind videoURL as plain text.
// An invalid URL or an empty transcript is an error; callers decide whether
// that aborts their run or just skips the video.
func (c *Client) Fetch(ctx context.Context, videoURL string) (string, error) {
	videoID, ok := ExtractVideoID(videoURL)
	if !ok {
		return "", domain.NewCollaboratorError("transcripts", "fetch", fmt.Errorf("invalid video URL %q", videoURL))
	}

	params := url.Values{
		"lang": {"en"},
		"v":    {videoID},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", domain.NewCollaboratorError("transcripts", "fetch", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", domain.NewCollaboratorError("transcripts", "fetch", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewCollaboratorError("transcripts", "fetch", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", domain.NewCollaboratorError("transcripts", "fetch",
			fmt.Errorf("timedtext returned status %d for video %s", resp.StatusCode, videoID))
	}

	text := joinSegments(body)
	if text == "" {
		c.logger.Debug("no transcript available", "video_id", videoID)
		return "", domain.NewCollaboratorError("transcripts", "fetch", domain.ErrNoTranscript)
	}

	return text, nil
}

// joinSegments collapses a timed-text document into one plain string.
func joinSegments(body []byte) string {
	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	parts := make([]string, 0, len(parsed.Segments))
	for _, segment := range parsed.Segments {
		cleaned := strings.TrimSpace(html.UnescapeString(segment.Text))
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, " ")
}
