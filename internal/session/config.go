package session

import "fmt"

// Default instruct framing, wrapped around every human turn when instruct
// mode is on.
const (
	DefaultInstructPrefix = "\n\n### Instruction:\n\n"
	DefaultInstructSuffix = "\n\n### Response:\n\n"

	defaultInstructAntiprompt = "### Instruction:\n\n"
)

// Config describes one interactive session.
type Config struct {
	Prompt string

	// NPredict is the sampling budget per generation segment. It is
	// clamped, not validated, against the engine's context window.
	NPredict int

	// BatchSize caps how many queued tokens are submitted per Evaluate
	// call.
	BatchSize int

	// WindowSize is the repetition window capacity (repeat-last-n).
	WindowSize int

	// SentinelToken pre-fills the repetition window at session start.
	SentinelToken int

	Threads int

	Interactive      bool
	InteractiveStart bool
	Instruct         bool
	Antiprompts      []string

	IgnoreEOS bool

	InstructPrefix string
	InstructSuffix string
}

// Normalize applies the implication rules between the interaction flags and
// fills framing defaults. Instruct mode forces interactive and registers the
// instruction header as a reverse prompt; any reverse prompt or an
// interactive start also forces interactive.
func (c *Config) Normalize() {
	if c.InstructPrefix == "" {
		c.InstructPrefix = DefaultInstructPrefix
	}
	if c.InstructSuffix == "" {
		c.InstructSuffix = DefaultInstructSuffix
	}
	if c.Instruct {
		c.Interactive = true
		c.Antiprompts = append(c.Antiprompts, defaultInstructAntiprompt)
	}
	if len(c.Antiprompts) > 0 {
		c.Interactive = true
	}
	if c.InteractiveStart {
		c.Interactive = true
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 8
	}
	if c.Threads <= 0 {
		c.Threads = 1
	}
}

// Validate rejects configurations whose behavior the session cannot define.
// Call after Normalize.
func (c *Config) Validate() error {
	if c.WindowSize < 0 {
		return fmt.Errorf("%w: repetition window size %d is negative", ErrConfig, c.WindowSize)
	}
	if c.WindowSize == 0 && len(c.Antiprompts) > 0 {
		return fmt.Errorf("%w: reverse prompts configured with a zero repetition window can never match", ErrConfig)
	}
	for _, ap := range c.Antiprompts {
		if ap == "" {
			return fmt.Errorf("%w: empty reverse prompt", ErrConfig)
		}
	}
	return nil
}
