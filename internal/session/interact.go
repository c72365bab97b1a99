package session

import (
	"strings"

	"github.com/samcharles93/parley/internal/engine"
)

// State is the controller's position in the interaction cycle.
type State int

const (
	// Generating: the engine is producing or consuming tokens.
	Generating State = iota
	// AwaitingHuman: control belongs to the human until a line is read.
	AwaitingHuman
)

// Controller decides when generation pauses for a human turn and performs
// the turn itself: reverse-prompt matching against the repetition window's
// rendered tail, consumption of interrupt requests, instruct framing
// injection, and the blocking line read with backslash continuation.
type Controller struct {
	cfg  *Config
	eng  engine.Engine
	in   LineReader
	intr *Interrupt

	prefix []int
	suffix []int

	state State
}

// NewController prepares a controller. The instruct framing strings are
// tokenized once up front; the prefix carries the boundary marker, the
// suffix does not.
func NewController(cfg *Config, eng engine.Engine, in LineReader, intr *Interrupt) (*Controller, error) {
	c := &Controller{cfg: cfg, eng: eng, in: in, intr: intr}
	if cfg.Instruct {
		var err error
		if c.prefix, err = eng.Tokenize(cfg.InstructPrefix, true); err != nil {
			return nil, err
		}
		if c.suffix, err = eng.Tokenize(cfg.InstructSuffix, false); err != nil {
			return nil, err
		}
	}
	if cfg.InteractiveStart {
		c.state = AwaitingHuman
	}
	return c, nil
}

func (c *Controller) State() State { return c.state }

// RequestTurn forces the next idle check to hand control to the human. Used
// by the loop for end-of-text and budget exhaustion while interactive.
func (c *Controller) RequestTurn() { c.state = AwaitingHuman }

// ShouldInterject runs the idle checks: an already-requested turn, a pending
// interrupt, or a reverse prompt ending the window's rendered tail. Reverse
// prompts are tested in configuration order; the first match wins.
func (c *Controller) ShouldInterject(w *Window) bool {
	if c.intr != nil && c.intr.Consume() {
		c.state = AwaitingHuman
	}
	if c.state == AwaitingHuman {
		return true
	}
	if len(c.cfg.Antiprompts) == 0 {
		return false
	}
	tail := w.Render(c.eng.TokenText)
	for _, ap := range c.cfg.Antiprompts {
		if strings.HasSuffix(tail, ap) {
			c.state = AwaitingHuman
			return true
		}
	}
	return false
}

// HumanTurn reads one logical line and queues its tokens. In instruct mode
// the prefix tokens are queued before the read and the suffix after, so
// framing surrounds exactly the human text. The budget is charged only for
// the human text tokens. An empty line queues nothing and generation simply
// resumes.
func (c *Controller) HumanTurn(q *Queue, b *Budget) error {
	defer func() { c.state = Generating }()

	if c.cfg.Instruct {
		q.Extend(c.prefix)
	}

	text, err := c.readLogicalLine()
	if err != nil {
		return err
	}

	if text != "" {
		// Interactive turns are tokenized without the leading boundary
		// marker, unlike the initial prompt.
		toks, err := c.eng.Tokenize(text, false)
		if err != nil {
			return err
		}
		q.Extend(toks)
		b.Spend(len(toks))
	}

	if c.cfg.Instruct {
		q.Extend(c.suffix)
	}
	return nil
}

// readLogicalLine reads physical lines until one does not end in the
// backslash continuation marker, joining them with newlines. While blocked
// here, a cancellation signal terminates the process rather than queueing.
func (c *Controller) readLogicalLine() (string, error) {
	if c.intr != nil {
		c.intr.SetEngaged(true)
		defer c.intr.SetEngaged(false)
	}

	prompt := ""
	if c.cfg.Instruct {
		prompt = "> "
	}

	var parts []string
	for {
		line, err := c.in.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		prompt = ""
		if line == "" || !strings.HasSuffix(line, "\\") {
			parts = append(parts, line)
			break
		}
		parts = append(parts, strings.TrimSuffix(line, "\\"))
	}
	return strings.Join(parts, "\n"), nil
}
