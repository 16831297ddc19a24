// Package metrics computes derived popularity metrics from a video's raw
// counters. Every function is total: missing, zero or negative inputs yield a
// neutral zero instead of an error, and no function ever returns a negative
// value. Downstream ranking relies on that guarantee.
package metrics

import (
	"math"
	"time"
)

// EngagementRate is (likes+comments)/views*100, rounded to 2 decimals.
func EngagementRate(likes, comments, views int64) float64 {
	if views <= 0 {
		return 0
	}
	if likes < 0 {
		likes = 0
	}
	if comments < 0 {
		comments = 0
	}
	return round2(float64(likes+comments) / float64(views) * 100)
}

// ViewToSubscriberRatio is views/subscribers, rounded to 2 decimals.
func ViewToSubscriberRatio(views, subscribers int64) float64 {
	if subscribers <= 0 || views <= 0 {
		return 0
	}
	return round2(float64(views) / float64(subscribers))
}

// ViewVelocity estimates views gained per day since upload. Days since upload
// are floored to whole days and floored at 1, so a video uploaded today counts
// as one day old. An empty or unparseable timestamp yields 0.
func ViewVelocity(views int64, uploadedAt string, now time.Time) float64 {
	if views <= 0 || uploadedAt == "" {
		return 0
	}

	parsed, err := parseTimestamp(uploadedAt)
	if err != nil {
		return 0
	}

	days := int64(now.UTC().Sub(parsed).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return round2(float64(views) / float64(days))
}

// ClickThroughRate is likes/views*100, rounded to 2 decimals.
func ClickThroughRate(likes, views int64) float64 {
	if views <= 0 || likes <= 0 {
		return 0
	}
	return round2(float64(likes) / float64(views) * 100)
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
