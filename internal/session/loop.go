// Package session implements the interactive token-generation loop: it
// feeds queued input into an engine, samples continuations, watches for
// reverse prompts, and hands control between engine and human.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samcharles93/parley/internal/engine"
	"github.com/samcharles93/parley/internal/logger"
)

// Sampler selects the next token id from the engine's logits, using the
// repetition window contents as penalty context.
type Sampler interface {
	Sample(logits []float32, window []int) int
}

// Options carries the session's collaborators.
type Options struct {
	Engine    engine.Engine
	Sampler   Sampler
	Input     LineReader
	Emitter   Emitter
	Interrupt *Interrupt
	Logger    logger.Logger
}

// Session owns one interactive run. All state lives on the instance; the
// only process-wide piece is the interrupt flag inside Interrupt.
type Session struct {
	cfg  Config
	eng  engine.Engine
	smp  Sampler
	ctrl *Controller
	emit Emitter
	log  logger.Logger
}

// Stats summarizes a finished run.
type Stats struct {
	TokensSampled int
	Duration      time.Duration
	TPS           float64
}

// New validates the configuration and wires a session.
func New(cfg Config, opts Options) (*Session, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Engine == nil || opts.Sampler == nil {
		return nil, fmt.Errorf("%w: engine and sampler are required", ErrConfig)
	}

	ctrl, err := NewController(&cfg, opts.Engine, opts.Input, opts.Interrupt)
	if err != nil {
		return nil, err
	}

	emit := opts.Emitter
	if emit == nil {
		emit = nopEmitter{}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	return &Session{
		cfg:  cfg,
		eng:  opts.Engine,
		smp:  opts.Sampler,
		ctrl: ctrl,
		emit: emit,
		log:  log,
	}, nil
}

// Run drives the loop until normal termination (end of text or exhausted
// budget with interactive mode off), closed input, or a fatal evaluation
// error. It returns the run stats alongside any fatal error.
func (s *Session) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	// Warm-up step so the first measured evaluation is not the engine's
	// cold path. Failures here are not fatal; the real evaluation below
	// reports them properly.
	if err := s.eng.Evaluate(ctx, []int{0, 1, 2, 3}, 0, s.cfg.Threads); err != nil {
		s.log.Debug("warm-up evaluation failed", "err", err)
	}

	inp, err := s.eng.Tokenize(s.cfg.Prompt, true)
	if err != nil {
		return stats, fmt.Errorf("tokenize prompt: %w", err)
	}

	nCtx := s.eng.ContextSize()
	if len(inp) > nCtx {
		return stats, fmt.Errorf("%w: prompt is %d tokens, context window is %d", ErrConfig, len(inp), nCtx)
	}
	nPredict := min(s.cfg.NPredict, nCtx-len(inp))

	s.log.Info("session start",
		"prompt_tokens", len(inp),
		"n_predict", nPredict,
		"batch", s.cfg.BatchSize,
		"window", s.cfg.WindowSize,
		"interactive", s.cfg.Interactive,
		"instruct", s.cfg.Instruct,
	)
	for _, id := range inp {
		s.log.Debug("prompt token", "id", id, "text", s.eng.TokenText(id))
	}
	if s.cfg.Interactive {
		s.log.Info("interactive mode on; press Ctrl+C to interject, end a line in '\\' to continue it")
		for _, ap := range s.cfg.Antiprompts {
			s.log.Info("reverse prompt", "text", ap)
		}
	}

	window := NewWindow(s.cfg.WindowSize, s.cfg.SentinelToken)
	queue := &Queue{}
	queue.Extend(inp)
	budget := NewBudget(nPredict)

	var (
		pending  []int // tokens awaiting the next Evaluate call
		nPast    int
		suppress bool // do not echo the batch from a just-finished human turn
	)

	// Engines without an end-of-text token report a negative id; all EOS
	// handling is skipped for them.
	eos := s.eng.EOSToken()

	start := time.Now()
	defer func() {
		stats.Duration = time.Since(start)
		if secs := stats.Duration.Seconds(); secs > 0 {
			stats.TPS = float64(stats.TokensSampled) / secs
		}
	}()

	// The prompt is emitted first; color it as such.
	s.emit.State(ConsolePrompt)
	defer s.emit.State(ConsoleDefault)

	for budget.Remaining() > 0 || s.cfg.Interactive {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		// 1. Submit tokens buffered from the previous iteration.
		if len(pending) > 0 {
			if err := s.eng.Evaluate(ctx, pending, nPast, s.cfg.Threads); err != nil {
				return stats, fmt.Errorf("%w: %v", ErrEval, err)
			}
			nPast += len(pending)
			pending = pending[:0]
		}

		if queue.Exhausted() {
			// 2. Out of queued input: sample the next token.
			logits := s.eng.Logits()
			if s.cfg.IgnoreEOS && eos >= 0 {
				logits[eos] = 0
			}
			id := s.smp.Sample(logits, window.Tokens())
			window.Push(id)
			pending = append(pending, id)
			suppress = false
			budget.Spend(1)
			stats.TokensSampled++
		} else {
			// 3. Forward queued input, bounded by the batch size.
			batch := queue.NextBatch(s.cfg.BatchSize)
			for _, id := range batch {
				window.Push(id)
			}
			pending = append(pending, batch...)
		}

		// 4. Emit this iteration's tokens unless they came from the
		// human's own turn.
		if !suppress {
			for _, id := range pending {
				s.emit.Token(s.eng.TokenText(id))
			}
			if queue.Exhausted() {
				s.emit.State(ConsoleDefault)
			}
		}

		// 5. Idle interaction check.
		if s.cfg.Interactive && queue.Exhausted() {
			if s.ctrl.ShouldInterject(window) {
				s.emit.State(ConsoleUser)
				err := s.ctrl.HumanTurn(queue, budget)
				s.emit.State(ConsoleDefault)
				if err != nil {
					if errors.Is(err, io.EOF) {
						s.log.Info("input closed")
						return stats, nil
					}
					return stats, fmt.Errorf("read input: %w", err)
				}
				suppress = true
			}
		}

		// 6. Termination and budget reclaim.
		if eos >= 0 && len(pending) > 0 && pending[len(pending)-1] == eos {
			if s.cfg.Interactive {
				s.ctrl.RequestTurn()
			} else {
				s.log.Info("end of text")
				break
			}
		}
		if s.cfg.Interactive && budget.Exhausted() {
			budget.Reset()
			s.ctrl.RequestTurn()
		}
	}

	return stats, nil
}
