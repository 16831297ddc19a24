package ports

import "context"

// TranscriptProvider fetches the transcript of a catalog video as plain text.
// Timed-segment responses are joined into a single string by the adapter, so
// consumers never inspect the shape of the result. The provider may fall back
// to audio transcription internally; that fallback is opaque here.
type TranscriptProvider interface {
	Fetch(ctx context.Context, videoURL string) (string, error)
}
