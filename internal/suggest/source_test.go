package suggest

import (
	"context"
	"errors"
	"testing"
)

type scriptedSource struct {
	calls  []string
	fail   map[string]bool
	cancel context.CancelFunc
	stopAt string
}

func (s *scriptedSource) Name() string { return "scripted" }

func (s *scriptedSource) Suggest(ctx context.Context, sentence string) (Result, error) {
	s.calls = append(s.calls, sentence)
	if s.stopAt == sentence && s.cancel != nil {
		s.cancel()
		return Result{}, ctx.Err()
	}
	if s.fail[sentence] {
		return Result{}, ErrUnavailable
	}
	return Result{Original: sentence, Simplified: sentence + "!", Score: 40}, nil
}

func TestBatchKeepsOrderAndSkipsFailures(t *testing.T) {
	src := &scriptedSource{fail: map[string]bool{"b": true}}
	results, err := Batch(context.Background(), src, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(src.calls) != 3 {
		t.Fatalf("expected every sentence to be tried, got %v", src.calls)
	}
	if len(results) != 2 || results[0].Original != "a" || results[1].Original != "c" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestBatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	src := &scriptedSource{cancel: cancel, stopAt: "b"}
	results, err := Batch(ctx, src, []string{"a", "b", "c"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(results) != 1 || results[0].Original != "a" {
		t.Fatalf("expected partial results, got %+v", results)
	}
	if len(src.calls) != 2 {
		t.Fatalf("batch kept going after cancel: %v", src.calls)
	}
}

func TestMockSimplify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Dit is, echter, een lange zin.", "Dit is omdat een lange zin."},
		{"DAAROM gaan wij,   desondanks, naar huis", "omdat gaan wij omdat naar huis."},
		{"Is dat echt zo?", "Is dat echt zo?"},
		{"Echterlijk blijft staan.", "Echterlijk blijft staan."},
	}
	for _, tc := range cases {
		if got := Simplify(tc.in); got != tc.want {
			t.Fatalf("Simplify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMockSourceReportsScore(t *testing.T) {
	res, err := NewMock(DefaultMockScore).Suggest(context.Background(), "Dit is, echter, een lange zin.")
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if res.Score != 42 || res.Original != "Dit is, echter, een lange zin." || res.OriginalScore != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}
