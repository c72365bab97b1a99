package session

// Queue holds token ids awaiting submission to the engine: the initial
// prompt, tokenized human turns, and instruct framing. Tokens are appended
// at the tail and consumed strictly in order through a cursor; everything
// before the cursor has already been submitted.
type Queue struct {
	toks   []int
	cursor int
}

// Extend appends tokens at the tail.
func (q *Queue) Extend(toks []int) {
	q.toks = append(q.toks, toks...)
}

// NextBatch returns up to max pending tokens and advances the cursor past
// them. Every returned token must also be pushed into the repetition window
// by the caller so penalty context stays consistent with what the engine has
// seen.
func (q *Queue) NextBatch(max int) []int {
	if max <= 0 || q.cursor >= len(q.toks) {
		return nil
	}
	end := min(q.cursor+max, len(q.toks))
	batch := q.toks[q.cursor:end]
	q.cursor = end
	return batch
}

// Exhausted reports whether every queued token has been consumed.
func (q *Queue) Exhausted() bool { return q.cursor >= len(q.toks) }

// Len is the total number of tokens ever queued.
func (q *Queue) Len() int { return len(q.toks) }

// Pending is the number of tokens not yet consumed.
func (q *Queue) Pending() int { return len(q.toks) - q.cursor }

// Consumed is the current cursor position.
func (q *Queue) Consumed() int { return q.cursor }
