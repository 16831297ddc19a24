// Package generation implements the text-generation collaborator as a
// single-request HTTP client. The service is a black box: prompt in, text
// out, fallible.
package generation

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/eleven-am/trendflow/internal/domain"
	"github.com/eleven-am/trendflow/internal/xjson"
)

type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	logger  *slog.Logger
}

func New(cfg domain.GenerationConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.With("component", "generation"),
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends one prompt and returns the produced text. A transport or
// decode failure is a CollaboratorError; recognizing refusal sentinels in the
// returned text is the caller's concern.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := xjson.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", domain.NewCollaboratorError("generation", "generate", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", domain.NewCollaboratorError("generation", "generate", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", domain.NewCollaboratorError("generation", "generate", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.NewCollaboratorError("generation", "generate", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", domain.NewCollaboratorError("generation", "generate",
			fmt.Errorf("generation service returned status %d", resp.StatusCode))
	}

	var parsed generateResponse
	if err := xjson.Unmarshal(body, &parsed); err != nil {
		return "", domain.NewCollaboratorError("generation", "generate", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", domain.NewCollaboratorError("generation", "generate",
			fmt.Errorf("generation service returned no candidates"))
	}

	var text strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	c.logger.Debug("generation complete", "prompt_len", len(prompt), "output_len", text.Len())
	return text.String(), nil
}
