package domain

import "time"

// VideoRecord is a catalog video enriched with derived metrics. Computed
// fields are filled in before ranking or persistence; once ranked the record
// is treated as immutable.
type VideoRecord struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	UploadDate  string `json:"upload_date"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"video_url"`

	Views       int64 `json:"views"`
	Likes       int64 `json:"likes"`
	Comments    int64 `json:"comments"`
	Subscribers int64 `json:"subscribers"`
	DurationSec int   `json:"duration"`

	DurationLabel string `json:"video_duration,omitempty"`

	EngagementRate        float64 `json:"engagement_rate"`
	ViewToSubscriberRatio float64 `json:"view_to_subscriber_ratio"`
	ViewVelocity          float64 `json:"view_velocity"`
	CTR                   float64 `json:"ctr"`
}

// TrendRecord is a persisted keyword count. Keyword is the natural key; the
// representative video is the first video observed for the keyword in a batch.
type TrendRecord struct {
	Keyword string `json:"keyword"`
	VideoID string `json:"video_id"`
	Count   int    `json:"count"`
}

// GeneratedTitleSet is one successful title generation, scoped to the account
// that requested it.
type GeneratedTitleSet struct {
	ID         string    `json:"id"`
	UserID     int       `json:"user_id"`
	VideoTopic string    `json:"video_topic"`
	Titles     []string  `json:"titles"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScriptRecord is one generated script, keyed by the topic it was grounded on.
type ScriptRecord struct {
	ID              string    `json:"id"`
	UserID          int       `json:"user_id"`
	InputTitle      string    `json:"input_title"`
	GeneratedScript string    `json:"generated_script"`
	CreatedAt       time.Time `json:"created_at"`
}

// RemixRecord is one remix run: a source video's transcript rewritten into a
// new script.
type RemixRecord struct {
	ID            string    `json:"id"`
	UserID        int       `json:"user_id"`
	VideoURL      string    `json:"video_url"`
	Mode          string    `json:"mode"`
	Style         string    `json:"style"`
	Transcript    string    `json:"transcript"`
	RemixedScript string    `json:"remixed_script"`
	CreatedAt     time.Time `json:"created_at"`
}
