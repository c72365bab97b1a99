package tokenizer

import (
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"
)

// VocabTokenizer is a greedy longest-match piece tokenizer loaded from a JSON
// vocabulary file. The file carries a piece-to-id table in the same shape as
// the "model.vocab" section of a HF tokenizer.json:
//
//	{"vocab": {"he": 5, "hello": 6, " wor": 7}, "eos_token_id": 0}
//
// Bytes with no matching piece are dropped during Encode; an optional
// "unk_token_id" maps them to a placeholder instead.
type VocabTokenizer struct {
	pieces  map[string]int
	byID    []string
	ordered []string // pieces sorted longest first for greedy matching
	eosID   int
	unkID   int
	hasUnk  bool
}

type vocabFile struct {
	Vocab      map[string]int `json:"vocab"`
	EOSTokenID *int           `json:"eos_token_id"`
	UnkTokenID *int           `json:"unk_token_id"`
}

// LoadVocabFile reads a vocabulary table from disk.
func LoadVocabFile(path string) (*VocabTokenizer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseVocabBytes(raw)
}

// ParseVocabBytes builds a VocabTokenizer from raw JSON.
func ParseVocabBytes(raw []byte) (*VocabTokenizer, error) {
	var vf vocabFile
	if err := json.Unmarshal(raw, &vf); err != nil {
		return nil, fmt.Errorf("parse vocab json: %w", err)
	}
	if len(vf.Vocab) == 0 {
		return nil, fmt.Errorf("vocab json has no \"vocab\" table")
	}

	maxID := 0
	for piece, id := range vf.Vocab {
		if id < 0 {
			return nil, fmt.Errorf("vocab piece %q has negative id %d", piece, id)
		}
		if id > maxID {
			maxID = id
		}
	}

	t := &VocabTokenizer{
		pieces: vf.Vocab,
		byID:   make([]string, maxID+1),
		eosID:  -1,
		unkID:  -1,
	}
	for piece, id := range vf.Vocab {
		if t.byID[id] != "" && t.byID[id] != piece {
			return nil, fmt.Errorf("vocab id %d claimed by both %q and %q", id, t.byID[id], piece)
		}
		t.byID[id] = piece
		t.ordered = append(t.ordered, piece)
	}
	sort.Slice(t.ordered, func(i, j int) bool {
		if len(t.ordered[i]) != len(t.ordered[j]) {
			return len(t.ordered[i]) > len(t.ordered[j])
		}
		return t.ordered[i] < t.ordered[j]
	})

	if vf.EOSTokenID != nil {
		if *vf.EOSTokenID < 0 || *vf.EOSTokenID > maxID {
			return nil, fmt.Errorf("eos_token_id %d out of range", *vf.EOSTokenID)
		}
		t.eosID = *vf.EOSTokenID
	}
	if vf.UnkTokenID != nil {
		if *vf.UnkTokenID < 0 || *vf.UnkTokenID > maxID {
			return nil, fmt.Errorf("unk_token_id %d out of range", *vf.UnkTokenID)
		}
		t.unkID = *vf.UnkTokenID
		t.hasUnk = true
	}
	return t, nil
}

func (t *VocabTokenizer) Encode(text string) ([]int, error) {
	var ids []int
	for len(text) > 0 {
		matched := false
		for _, piece := range t.ordered {
			if len(piece) <= len(text) && text[:len(piece)] == piece {
				ids = append(ids, t.pieces[piece])
				text = text[len(piece):]
				matched = true
				break
			}
		}
		if !matched {
			if t.hasUnk {
				ids = append(ids, t.unkID)
			}
			text = text[1:]
		}
	}
	return ids, nil
}

func (t *VocabTokenizer) Decode(ids []int) (string, error) {
	var out []byte
	for _, id := range ids {
		out = append(out, t.TokenString(id)...)
	}
	return string(out), nil
}

func (t *VocabTokenizer) TokenString(id int) string {
	if id < 0 || id >= len(t.byID) {
		return ""
	}
	if id == t.eosID {
		return ""
	}
	return t.byID[id]
}

func (t *VocabTokenizer) VocabSize() int { return len(t.byID) }

func (t *VocabTokenizer) EOSID() int { return t.eosID }
