package transcripts

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
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		ok       bool
	}{
		{
			name:     "watch_url",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name:     "short_url",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
			ok:       true,
		},
		{
			name: "no_id",
			url:  "https://example.com/",
		},
		{
			name: "empty",
			url:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFetchJoinsSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
	<text start="0" dur="2">never gonna</text>
	<text start="2" dur="2">give you up</text>
	<text start="4" dur="2">  </text>
</transcript>`))
	}))
	defer server.Close()

	client := New(domain.TranscriptsConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}, slog.Default())

	text, err := client.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "never gonna give you up", text)
}

func TestFetchEmptyTranscriptIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<transcript></transcript>`))
	}))
	defer server.Close()

	client := New(domain.TranscriptsConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}, slog.Default())

	_, err := client.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTranscript)
}

func TestFetchInvalidURL(t *testing.T) {
	client := New(domain.TranscriptsConfig{RequestTimeout: time.Second}, slog.Default())

	_, err := client.Fetch(context.Background(), "not a url")
	require.Error(t, err)
	assert.True(t, domain.IsCollaboratorError(err))
}
