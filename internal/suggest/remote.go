package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is where the suggestion service listens in development.
	DefaultEndpoint       = "http://127.0.0.1:5000/prompt"
	defaultRemoteTimeout  = 60 * time.Second
	maxRemoteErrorPreview = 512
)

var sentinelRe = regexp.MustCompile(`(?i)\[\[\s*##\s*completed\s*##\s*\]\]`)

// Request is the body posted to the suggestion service.
type Request struct {
	Sentence string `json:"sentence"`
}

// Response is what the suggestion service answers.
type Response struct {
	Original   Scored `json:"original"`
	Simplified Scored `json:"simplified"`
}

// Scored is a sentence with an optional readability score.
type Scored struct {
	Sentence  string   `json:"sentence"`
	LintScore *float64 `json:"lint_score,omitempty"`
}

// Remote queries the suggestion service over HTTP.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote builds a remote source. An empty endpoint uses DefaultEndpoint
// and a nil client gets a client with a sane timeout.
func NewRemote(endpoint string, client *http.Client) *Remote {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: defaultRemoteTimeout}
	}
	return &Remote{endpoint: endpoint, client: client}
}

func (r *Remote) Name() string { return "remote " + r.endpoint }

func (r *Remote) Suggest(ctx context.Context, sentence string) (Result, error) {
	buf, err := json.Marshal(Request{Sentence: sentence})
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxRemoteErrorPreview))
		return Result{}, fmt.Errorf("%w: %s (%s)", ErrUnavailable, resp.Status, strings.TrimSpace(string(body)))
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	simplified := StripSentinel(parsed.Simplified.Sentence)
	if simplified == "" {
		return Result{}, fmt.Errorf("%w: empty rewrite", ErrUnavailable)
	}
	if parsed.Simplified.LintScore == nil {
		return Result{}, fmt.Errorf("%w: rewrite has no score", ErrUnavailable)
	}

	original := parsed.Original.Sentence
	if original == "" {
		original = sentence
	}
	return Result{
		Original:      original,
		OriginalScore: parsed.Original.LintScore,
		Simplified:    simplified,
		Score:         *parsed.Simplified.LintScore,
	}, nil
}

// StripSentinel removes the completion marker some service back ends append
// to their output and trims the result.
func StripSentinel(text string) string {
	return strings.TrimSpace(sentinelRe.ReplaceAllString(text, ""))
}
