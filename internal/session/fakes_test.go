package session

import (
	"context"
	"errors"
	"io"
	"strings"
)

const fakeEOS = 256

// fakeEngine tokenizes bytes to their own ids (257 = vocab with EOS) and
// records every Evaluate call.
type fakeEngine struct {
	ctxSize int
	eos     int // negative means the vocabulary has no end-of-text token
	evals   [][]int
	nPasts  []int
	failAt  int // Evaluate call index that fails; -1 for never
	logits  []float32
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{ctxSize: 4096, eos: fakeEOS, failAt: -1}
}

func (f *fakeEngine) Tokenize(text string, addBoundary bool) ([]int, error) {
	if addBoundary {
		text = " " + text
	}
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids, nil
}

func (f *fakeEngine) TokenText(id int) string {
	if id >= 0 && id < 256 {
		return string([]byte{byte(id)})
	}
	return ""
}

func (f *fakeEngine) Evaluate(_ context.Context, toks []int, nPast, _ int) error {
	if f.failAt >= 0 && len(f.evals) == f.failAt {
		return errors.New("scripted failure")
	}
	f.evals = append(f.evals, append([]int(nil), toks...))
	f.nPasts = append(f.nPasts, nPast)
	return nil
}

func (f *fakeEngine) Logits() []float32 {
	if f.logits == nil {
		f.logits = make([]float32, 257)
	}
	return f.logits
}

func (f *fakeEngine) ContextSize() int { return f.ctxSize }

func (f *fakeEngine) EOSToken() int { return f.eos }

// evaluated returns every token submitted after the warm-up call.
func (f *fakeEngine) evaluated() []int {
	var out []int
	for i, call := range f.evals {
		if i == 0 {
			continue // warm-up
		}
		out = append(out, call...)
	}
	return out
}

// scriptSampler returns the scripted ids in order, then EOS forever.
type scriptSampler struct {
	script   []int
	calls    int
	onSample func(call int)
}

func (s *scriptSampler) Sample(_ []float32, _ []int) int {
	if s.onSample != nil {
		s.onSample(s.calls)
	}
	id := fakeEOS
	if s.calls < len(s.script) {
		id = s.script[s.calls]
	}
	s.calls++
	return id
}

func tokensOf(text string) []int {
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids
}

// scriptReader hands out scripted lines, then io.EOF.
type scriptReader struct {
	lines   []string
	next    int
	prompts []string
}

func (r *scriptReader) ReadLine(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if r.next >= len(r.lines) {
		return "", io.EOF
	}
	line := r.lines[r.next]
	r.next++
	return line, nil
}

// recordEmitter captures emitted text and console state changes.
type recordEmitter struct {
	text   strings.Builder
	states []ConsoleState
}

func (e *recordEmitter) Token(s string) { e.text.WriteString(s) }

func (e *recordEmitter) State(s ConsoleState) { e.states = append(e.states, s) }
