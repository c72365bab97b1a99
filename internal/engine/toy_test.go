package engine

import (
	"context"
	"testing"

	"github.com/samcharles93/parley/internal/tokenizer"
)

func newTestToy(t *testing.T) *Toy {
	t.Helper()
	return NewToy(tokenizer.NewByteTokenizer(), ToyConfig{Hidden: 8, Context: 64, Seed: 42})
}

func TestToyDeterministicLogits(t *testing.T) {
	t.Parallel()

	a := newTestToy(t)
	b := newTestToy(t)

	toks, err := a.Tokenize("hi", true)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if err := a.Evaluate(context.Background(), toks, 0, 1); err != nil {
		t.Fatalf("evaluate a: %v", err)
	}
	if err := b.Evaluate(context.Background(), toks, 0, 4); err != nil {
		t.Fatalf("evaluate b: %v", err)
	}

	la, lb := a.Logits(), b.Logits()
	if len(la) != len(lb) || len(la) == 0 {
		t.Fatalf("logit lengths differ: %d vs %d", len(la), len(lb))
	}
	for i := range la {
		if la[i] != lb[i] {
			t.Fatalf("logits diverge at %d: %v vs %v (thread count must not change results)", i, la[i], lb[i])
		}
	}
}

func TestToyTokenizeBoundary(t *testing.T) {
	t.Parallel()

	e := newTestToy(t)
	with, err := e.Tokenize("x", true)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	without, err := e.Tokenize("x", false)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if len(with) != len(without)+1 || with[0] != int(' ') {
		t.Fatalf("boundary marker not applied: with=%v without=%v", with, without)
	}
}

func TestToyContextOverflow(t *testing.T) {
	t.Parallel()

	e := newTestToy(t)
	big := make([]int, e.ContextSize()+1)
	if err := e.Evaluate(context.Background(), big, 0, 1); err == nil {
		t.Fatal("expected context overflow error")
	}
}

func TestToyNonContiguousEvaluate(t *testing.T) {
	t.Parallel()

	e := newTestToy(t)
	if err := e.Evaluate(context.Background(), []int{1, 2}, 0, 1); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if err := e.Evaluate(context.Background(), []int{3}, 5, 1); err == nil {
		t.Fatal("expected non-contiguous evaluation error")
	}
	// Position zero resets the state and is always accepted.
	if err := e.Evaluate(context.Background(), []int{3}, 0, 1); err != nil {
		t.Fatalf("reset evaluate: %v", err)
	}
}
