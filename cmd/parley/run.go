package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/parley/internal/engine"
	"github.com/samcharles93/parley/internal/logger"
	"github.com/samcharles93/parley/internal/logits"
	"github.com/samcharles93/parley/internal/session"
	"github.com/samcharles93/parley/internal/tokenizer"
)

// consoleReader adapts the terminal line editor to the session's input
// interface.
type consoleReader struct{}

func (consoleReader) ReadLine(prompt string) (string, error) {
	return readInteractiveLine(prompt)
}

func runCmd() *cli.Command {
	var flags []cli.Flag
	flags = append(flags, sessionFlags()...)
	flags = append(flags, samplingFlags()...)
	flags = append(flags, engineFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:  "run",
		Usage: "Run an interactive generation session",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			applyRunConfig(c, LoadConfig())

			log := buildLogger()
			log = log.With("session", uuid.NewString())

			if seed <= 0 {
				seed = time.Now().UnixNano()
			}

			var (
				tok tokenizer.Tokenizer
				err error
			)
			if vocabPath != "" {
				tok, err = tokenizer.LoadVocabFile(vocabPath)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: load vocab: %v", err), 1)
				}
			} else {
				tok = tokenizer.NewByteTokenizer()
			}

			eng := engine.NewToy(tok, engine.ToyConfig{
				Hidden:  int(hiddenSize),
				Context: int(maxContext),
				Seed:    seed,
			})

			sampler := logits.NewSampler(logits.SamplerConfig{
				Seed:          seed,
				Temperature:   float32(temp),
				TopK:          int(topK),
				TopP:          float32(topP),
				RepeatPenalty: float32(repeatPenalty),
			})

			reversePrompts := c.StringSlice("reverse-prompt")

			cfg := session.Config{
				Prompt:           prompt,
				NPredict:         int(nPredict),
				BatchSize:        int(batchSize),
				WindowSize:       int(repeatLastN),
				Threads:          int(threads),
				Interactive:      interactive,
				InteractiveStart: interactiveFirst,
				Instruct:         instruct,
				Antiprompts:      reversePrompts,
				IgnoreEOS:        ignoreEOS,
			}

			out := NewStreamWriter(parseStreamMode(streamMode), useColor)

			intr := session.NewInterrupt(nil)
			if interactive || interactiveFirst || instruct || len(reversePrompts) > 0 {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, os.Interrupt)
				go func() {
					for range sigCh {
						intr.Raise()
					}
				}()
			}

			sess, err := session.New(cfg, session.Options{
				Engine:    eng,
				Sampler:   sampler,
				Input:     consoleReader{},
				Emitter:   out,
				Interrupt: intr,
				Logger:    log,
			})
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			log.Debug("engine ready",
				"vocab", tok.VocabSize(),
				"context", maxContext,
				"hidden", hiddenSize,
				"seed", seed)
			log.Info("sampling",
				"temp", temp,
				"top_k", topK,
				"top_p", topP,
				"repeat_penalty", repeatPenalty,
				"repeat_last_n", repeatLastN)

			stats, err := sess.Run(ctx)
			out.Flush()
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			fmt.Fprintf(os.Stderr, "\nStats: %.2f TPS (%d tokens in %s)\n",
				stats.TPS, stats.TokensSampled, stats.Duration)
			return nil
		},
	}
}

func buildLogger() logger.Logger {
	level := logger.ParseLevel(logLevel)
	switch logFormat {
	case "json":
		return logger.JSON(os.Stderr, level)
	case "text":
		return logger.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	default:
		return logger.Pretty(os.Stderr, level)
	}
}
