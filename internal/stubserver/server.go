// Package stubserver is a local stand-in for the suggestion service. It
// answers POST /prompt with the mock rewrite so the review flow can be
// exercised without the real back end.
package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/csheth/plainword/internal/readability"
	"github.com/csheth/plainword/internal/suggest"
)

// Sentinel is appended to every rewrite, as the real service does.
const Sentinel = "[[ ## completed ## ]]"

// Options configure the stub.
type Options struct {
	// Score is reported for every rewrite.
	Score float64
	// Delay is slept before answering, to make the busy state visible.
	Delay time.Duration
}

type handler struct {
	opts Options
}

// NewRouter returns the stub's routes.
func NewRouter(opts Options) *mux.Router {
	h := &handler{opts: opts}
	r := mux.NewRouter()
	r.HandleFunc("/prompt", h.prompt).Methods(http.MethodPost)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	return r
}

// prompt handles POST /prompt
func (h *handler) prompt(w http.ResponseWriter, r *http.Request) {
	var req suggest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Sentence) == "" {
		writeError(w, http.StatusBadRequest, "sentence is required")
		return
	}
	if h.opts.Delay > 0 {
		select {
		case <-time.After(h.opts.Delay):
		case <-r.Context().Done():
			return
		}
	}

	originalScore := readability.Douma(req.Sentence)
	score := h.opts.Score
	writeJSON(w, http.StatusOK, suggest.Response{
		Original: suggest.Scored{Sentence: req.Sentence, LintScore: &originalScore},
		Simplified: suggest.Scored{
			Sentence:  suggest.Simplify(req.Sentence) + " " + Sentinel,
			LintScore: &score,
		},
	})
}

// Serve runs the stub on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, opts Options) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[stub] listening on %s", addr)
		log.Println("[stub]   POST /prompt")
		log.Println("[stub]   GET  /health")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[stub] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[stub] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
