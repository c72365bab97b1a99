package tokenizer

// Tokenizer defines the minimal interface engines build on.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	Decode(ids []int) (string, error)
	// TokenString returns the text fragment for a single id, or "" when the
	// id has no printable piece.
	TokenString(id int) string
	VocabSize() int
	EOSID() int
}
