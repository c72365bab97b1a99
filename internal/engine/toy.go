package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/samcharles93/parley/internal/tokenizer"
)

// Toy is a minimal deterministic language model: an embedding table, a
// leaky hidden-state accumulator, and a projection back to vocab logits.
// It is not meant to produce sensible text; it exists so the binary and the
// tests can exercise full tokenize/evaluate/sample cycles without weights.
type Toy struct {
	tok tokenizer.Tokenizer

	hidden  int
	ctxSize int

	emb  [][]float32 // [vocab][hidden]
	proj [][]float32 // [hidden][vocab]

	h      []float32
	logits []float32
	pos    int
}

type ToyConfig struct {
	Hidden  int
	Context int
	Seed    int64
}

// NewToy constructs a toy engine over the given tokenizer. Embeddings and
// projection weights are filled deterministically from the seed.
func NewToy(tok tokenizer.Tokenizer, cfg ToyConfig) *Toy {
	if cfg.Hidden <= 0 {
		cfg.Hidden = 32
	}
	if cfg.Context <= 0 {
		cfg.Context = 512
	}
	vocab := tok.VocabSize()
	t := &Toy{
		tok:     tok,
		hidden:  cfg.Hidden,
		ctxSize: cfg.Context,
		emb:     fillRand(vocab, cfg.Hidden, cfg.Seed+11),
		proj:    fillRand(cfg.Hidden, vocab, cfg.Seed+23),
		h:       make([]float32, cfg.Hidden),
		logits:  make([]float32, vocab),
	}
	return t
}

func (t *Toy) Tokenize(text string, addBoundary bool) ([]int, error) {
	if addBoundary {
		// Leading space, matching the boundary behavior of sentencepiece
		// style tokenizers on a fresh prompt.
		text = " " + text
	}
	return t.tok.Encode(text)
}

func (t *Toy) TokenText(id int) string { return t.tok.TokenString(id) }

func (t *Toy) Evaluate(ctx context.Context, tokens []int, nPast, threads int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if nPast+len(tokens) > t.ctxSize {
		return fmt.Errorf("context overflow: %d+%d exceeds %d", nPast, len(tokens), t.ctxSize)
	}
	if nPast == 0 {
		for i := range t.h {
			t.h[i] = 0
		}
		t.pos = 0
	} else if nPast != t.pos {
		return fmt.Errorf("non-contiguous evaluation: have position %d, got %d", t.pos, nPast)
	}
	if threads < 1 {
		threads = 1
	}
	for _, id := range tokens {
		t.forward(id, threads)
	}
	t.pos = nPast + len(tokens)
	return nil
}

func (t *Toy) Logits() []float32 { return t.logits }

func (t *Toy) ContextSize() int { return t.ctxSize }

func (t *Toy) EOSToken() int { return t.tok.EOSID() }

// forward folds one token into the hidden state and recomputes logits.
func (t *Toy) forward(id, threads int) {
	vocab := len(t.logits)
	if id < 0 || id >= vocab {
		id = ((id % vocab) + vocab) % vocab
	}
	row := t.emb[id]
	for i := range t.h {
		t.h[i] = 0.5*t.h[i] + row[i]
	}

	project := func(lo, hi int) {
		for j := lo; j < hi; j++ {
			var sum float32
			for i := 0; i < t.hidden; i++ {
				sum += t.h[i] * t.proj[i][j]
			}
			t.logits[j] = float32(math.Tanh(float64(sum)))
		}
	}

	if threads == 1 || vocab < 2*threads {
		project(0, vocab)
		return
	}
	var wg sync.WaitGroup
	chunk := (vocab + threads - 1) / threads
	for lo := 0; lo < vocab; lo += chunk {
		hi := min(lo+chunk, vocab)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			project(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

func fillRand(rows, cols int, seed int64) [][]float32 {
	rng := rand.New(rand.NewSource(seed))
	m := make([][]float32, rows)
	for r := range m {
		m[r] = make([]float32, cols)
		for c := range m[r] {
			m[r][c] = rng.Float32() - 0.5
		}
	}
	return m
}
