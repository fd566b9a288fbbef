package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteSuggestStripsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Sentence != "Een zin, echter." {
			t.Fatalf("unexpected sentence %q", req.Sentence)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"original":{"sentence":"Een zin, echter.","lint_score":61.5},"simplified":{"sentence":"  Een zin omdat. [[ ## Completed ## ]] ","lint_score":44.2}}`))
	}))
	defer server.Close()

	res, err := NewRemote(server.URL, server.Client()).Suggest(context.Background(), "Een zin, echter.")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if res.Simplified != "Een zin omdat." {
		t.Fatalf("sentinel not stripped: %q", res.Simplified)
	}
	if res.Score != 44.2 {
		t.Fatalf("unexpected score %v", res.Score)
	}
	if res.OriginalScore == nil || *res.OriginalScore != 61.5 {
		t.Fatalf("unexpected original score %v", res.OriginalScore)
	}
}

func TestRemoteSuggestUnavailable(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"garbage": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		},
		"empty": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"original":{"sentence":"x"},"simplified":{"sentence":"[[##completed##]]","lint_score":40}}`))
		},
		"unscored": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"original":{"sentence":"x"},"simplified":{"sentence":"y."}}`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()
			_, err := NewRemote(server.URL, server.Client()).Suggest(context.Background(), "x")
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}

func TestRemoteSuggestTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewRemote(url, nil).Suggest(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestStripSentinel(t *testing.T) {
	if got := StripSentinel("Klaar.[[ ## COMPLETED ## ]]"); got != "Klaar." {
		t.Fatalf("got %q", got)
	}
	if got := StripSentinel(" geen marker "); got != "geen marker" {
		t.Fatalf("got %q", got)
	}
}
