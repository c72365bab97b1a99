package tokenizer

// ByteTokenizer maps every byte of the input to its own token id. Ids 0-255
// are the raw byte values; id 256 is the end-of-text token. It exists so the
// toy engine and the tests can run without any vocabulary file.
type ByteTokenizer struct{}

const (
	byteVocabSize = 257
	byteEOS       = 256
)

func NewByteTokenizer() *ByteTokenizer {
	return &ByteTokenizer{}
}

func (t *ByteTokenizer) Encode(text string) ([]int, error) {
	ids := make([]int, 0, len(text))
	for i := 0; i < len(text); i++ {
		ids = append(ids, int(text[i]))
	}
	return ids, nil
}

func (t *ByteTokenizer) Decode(ids []int) (string, error) {
	buf := make([]byte, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < 256 {
			buf = append(buf, byte(id))
		}
	}
	return string(buf), nil
}

func (t *ByteTokenizer) TokenString(id int) string {
	if id < 0 || id >= 256 {
		return ""
	}
	return string([]byte{byte(id)})
}

func (t *ByteTokenizer) VocabSize() int { return byteVocabSize }

func (t *ByteTokenizer) EOSID() int { return byteEOS }
