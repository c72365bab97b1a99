package session

// Budget is the sampling quota for the current generation segment. It is
// spent once per sampled token and by the size of each tokenized human turn,
// never for forwarded or framing tokens. Interactive mode resets it to the
// starting value when it runs out.
type Budget struct {
	remaining int
	initial   int
}

func NewBudget(n int) *Budget {
	return &Budget{remaining: n, initial: n}
}

func (b *Budget) Spend(n int) { b.remaining -= n }

func (b *Budget) Remaining() int { return b.remaining }

func (b *Budget) Exhausted() bool { return b.remaining <= 0 }

// Reset restores the configured starting quota.
func (b *Budget) Reset() { b.remaining = b.initial }
