// Package engine defines the capability surface the session loop drives.
// An Engine owns the tokenizer, the running evaluation state, and the logits
// buffer; the session never interprets token ids beyond comparing them.
package engine

import "context"

type Engine interface {
	// Tokenize converts text into token ids. When addBoundary is set the
	// engine applies its leading boundary convention (the initial prompt
	// gets one, interactive turns do not).
	Tokenize(text string, addBoundary bool) ([]int, error)

	// TokenText returns the rendered fragment for one token id.
	TokenText(id int) string

	// Evaluate folds tokens into the running state starting at position
	// nPast. On success Logits reflects the new state. A failed Evaluate
	// leaves the engine state unspecified; callers must not retry.
	Evaluate(ctx context.Context, tokens []int, nPast, threads int) error

	// Logits returns the scores over the vocabulary after the most recent
	// Evaluate. The slice is owned by the engine and valid until the next
	// Evaluate call; callers may mutate it in place (masking, penalties).
	Logits() []float32

	// ContextSize reports the engine's context window capacity in tokens.
	ContextSize() int

	// EOSToken returns the end-of-text token id.
	EOSToken() int
}
