package suggest

import (
	"context"
	"errors"
	"testing"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f fakeLLM) Name() string { return "fake" }

func (f fakeLLM) Simplify(ctx context.Context, sentence string) (string, error) {
	return f.reply, f.err
}

func TestLLMSourceScoresBothSides(t *testing.T) {
	src := NewLLM(fakeLLM{reply: "Wij gaan naar huis."})
	res, err := src.Suggest(context.Background(), "Desondanks begeven wij ons huiswaarts.")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if res.Simplified != "Wij gaan naar huis." {
		t.Fatalf("unexpected rewrite %q", res.Simplified)
	}
	if res.OriginalScore == nil {
		t.Fatal("expected an original score")
	}
	if res.Score <= *res.OriginalScore {
		t.Fatalf("expected the rewrite to score higher: %v vs %v", res.Score, *res.OriginalScore)
	}
}

func TestLLMSourceWrapsFailures(t *testing.T) {
	src := NewLLM(fakeLLM{err: errors.New("model offline")})
	if _, err := src.Suggest(context.Background(), "Een zin."); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
