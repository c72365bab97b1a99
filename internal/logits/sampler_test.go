package logits

import "testing"

func TestSamplerDeterminism(t *testing.T) {
	t.Parallel()

	logs1 := []float32{0, 1, 2, 3, 4, 5}
	logs2 := []float32{0, 1, 2, 3, 4, 5}
	s1 := NewSampler(SamplerConfig{Seed: 42, Temperature: 0.9, TopK: 4, TopP: 0.95})
	s2 := NewSampler(SamplerConfig{Seed: 42, Temperature: 0.9, TopK: 4, TopP: 0.95})
	a := s1.Sample(logs1, nil)
	b := s2.Sample(logs2, nil)
	if a != b {
		t.Fatalf("expected deterministic sample, got %d vs %d", a, b)
	}
}

func TestSamplerGreedy(t *testing.T) {
	t.Parallel()

	logs := []float32{-1, 5, 3, 7, 2}
	s := NewSampler(SamplerConfig{Seed: 99, Temperature: 0})
	if idx := s.Sample(logs, nil); idx != 3 {
		t.Fatalf("expected greedy index 3, got %d", idx)
	}
}

func TestSamplerTopP(t *testing.T) {
	t.Parallel()

	// The first candidate dominates after softmax, so with TopP=0.5 only
	// index 0 can ever be drawn.
	logs := []float32{10, 0, 0, 0, 0}
	s := NewSampler(SamplerConfig{Seed: 7, Temperature: 1.0, TopK: 5, TopP: 0.5})
	for i := 0; i < 10; i++ {
		if idx := s.Sample(logs, nil); idx != 0 {
			t.Fatalf("top-p sampling returned unexpected index %d", idx)
		}
	}
}

func TestSamplerRepeatPenaltyWindow(t *testing.T) {
	t.Parallel()

	// Index 1 has the highest logit but sits in the penalty window; with a
	// strong penalty greedy sampling must pick index 2 instead.
	logs := []float32{0, 2.0, 1.9}
	s := NewSampler(SamplerConfig{Seed: 1, Temperature: 0, RepeatPenalty: 2.0})
	if idx := s.Sample(logs, []int{1}); idx != 2 {
		t.Fatalf("expected penalized argmax 2, got %d", idx)
	}
	if logs[1] != 1.0 {
		t.Fatalf("expected in-place penalty on logits[1], got %v", logs[1])
	}
}

func TestSamplerPenaltyIgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	logs := []float32{1, 2}
	s := NewSampler(SamplerConfig{Seed: 1, Temperature: 0, RepeatPenalty: 1.5})
	// Window ids outside the vocab must be skipped, not panic.
	if idx := s.Sample(logs, []int{-3, 99}); idx != 1 {
		t.Fatalf("expected argmax 1, got %d", idx)
	}
}

func TestSamplerNegativeLogitPenalty(t *testing.T) {
	t.Parallel()

	logs := []float32{-0.5, -1.0}
	s := NewSampler(SamplerConfig{Seed: 1, Temperature: 0, RepeatPenalty: 2.0})
	s.Sample(logs, []int{0})
	if logs[0] != -1.0 {
		t.Fatalf("negative logits must be multiplied by the penalty, got %v", logs[0])
	}
}
