package session

// Window is the fixed-capacity FIFO of the most recent token ids. It serves
// two purposes: repetition-penalty context for sampling, and the rendered
// tail that reverse prompts are matched against. Its length is constant from
// construction; Push evicts the oldest id. A zero-capacity window stays
// empty and can never match anything.
type Window struct {
	toks []int
}

// NewWindow creates a window of capacity n pre-filled with the sentinel id.
func NewWindow(n, sentinel int) *Window {
	if n < 0 {
		n = 0
	}
	w := &Window{toks: make([]int, n)}
	for i := range w.toks {
		w.toks[i] = sentinel
	}
	return w
}

// Push appends id and evicts the oldest entry.
func (w *Window) Push(id int) {
	if len(w.toks) == 0 {
		return
	}
	copy(w.toks, w.toks[1:])
	w.toks[len(w.toks)-1] = id
}

// Len reports the window capacity (== current length, always).
func (w *Window) Len() int { return len(w.toks) }

// Tokens exposes the window contents oldest-first. The slice is owned by the
// window and only valid until the next Push.
func (w *Window) Tokens() []int { return w.toks }

// Render detokenizes the whole window in order using the provided fragment
// renderer. The result is only used for reverse-prompt matching.
func (w *Window) Render(text func(int) string) string {
	var out []byte
	for _, id := range w.toks {
		out = append(out, text(id)...)
	}
	return string(out)
}
