package main

import "github.com/urfave/cli/v3"

var (
	prompt           string
	nPredict         int64
	batchSize        int64
	repeatLastN      int64
	threads          int64
	seed             int64
	temp             float64
	topK             int64
	topP             float64
	repeatPenalty    float64
	interactive      bool
	interactiveFirst bool
	instruct         bool
	ignoreEOS        bool
	useColor         bool
	streamMode       string
	logLevel         string
	logFormat        string
	vocabPath        string
	hiddenSize       int64
	maxContext       int64
)

func samplingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:        "temp",
			Aliases:     []string{"temperature", "t"},
			Usage:       "sampling temperature",
			Value:       0.8,
			Destination: &temp,
		},
		&cli.Int64Flag{
			Name:        "top-k",
			Aliases:     []string{"top_k", "topk"},
			Usage:       "top-k sampling parameter",
			Value:       40,
			Destination: &topK,
		},
		&cli.Float64Flag{
			Name:        "top-p",
			Aliases:     []string{"top_p", "topp"},
			Usage:       "top-p sampling parameter",
			Value:       0.95,
			Destination: &topP,
		},
		&cli.Float64Flag{
			Name:        "repeat-penalty",
			Aliases:     []string{"repeat_penalty"},
			Usage:       "repetition penalty (1.0 = disabled)",
			Value:       1.1,
			Destination: &repeatPenalty,
		},
		&cli.Int64Flag{
			Name:        "repeat-last-n",
			Aliases:     []string{"repeat_last_n"},
			Usage:       "last n tokens to penalize and match reverse prompts against",
			Value:       64,
			Destination: &repeatLastN,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Aliases:     []string{"s"},
			Usage:       "RNG seed (default -1 = time-derived)",
			Value:       -1,
			Destination: &seed,
		},
	}
}

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "prompt",
			Aliases:     []string{"p"},
			Usage:       "initial prompt text",
			Destination: &prompt,
		},
		&cli.Int64Flag{
			Name:        "n-predict",
			Aliases:     []string{"n_predict", "n"},
			Usage:       "tokens to generate per segment",
			Value:       128,
			Destination: &nPredict,
		},
		&cli.Int64Flag{
			Name:        "batch-size",
			Aliases:     []string{"batch_size", "b"},
			Usage:       "max tokens submitted per evaluation call",
			Value:       8,
			Destination: &batchSize,
		},
		&cli.Int64Flag{
			Name:        "threads",
			Usage:       "evaluation thread count",
			Value:       4,
			Destination: &threads,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Aliases:     []string{"i"},
			Usage:       "run in interactive mode",
			Destination: &interactive,
		},
		&cli.BoolFlag{
			Name:        "interactive-first",
			Aliases:     []string{"interactive_first"},
			Usage:       "run interactively and wait for input right away",
			Destination: &interactiveFirst,
		},
		&cli.BoolFlag{
			Name:        "instruct",
			Aliases:     []string{"ins"},
			Usage:       "instruction mode (wraps each turn in instruction/response framing)",
			Destination: &instruct,
		},
		&cli.StringSliceFlag{
			Name:    "reverse-prompt",
			Aliases: []string{"reverse_prompt", "r"},
			Usage:   "halt generation and return control when this text appears (repeatable)",
		},
		&cli.BoolFlag{
			Name:        "ignore-eos",
			Aliases:     []string{"ignore_eos"},
			Usage:       "mask the end-of-text token so it is never sampled",
			Destination: &ignoreEOS,
		},
		&cli.BoolFlag{
			Name:        "color",
			Usage:       "colorize prompt and user input",
			Destination: &useColor,
		},
		&cli.StringFlag{
			Name:        "stream-mode",
			Aliases:     []string{"stream_mode"},
			Usage:       "token output mode (instant, typewriter, quiet)",
			Value:       "instant",
			Destination: &streamMode,
		},
	}
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vocab",
			Usage:       "path to a vocab.json piece table (default: byte-level vocabulary)",
			Destination: &vocabPath,
		},
		&cli.Int64Flag{
			Name:        "hidden",
			Usage:       "toy engine hidden size",
			Value:       64,
			Destination: &hiddenSize,
		},
		&cli.Int64Flag{
			Name:        "max-context",
			Aliases:     []string{"max-ctx", "ctx", "c"},
			Usage:       "context window capacity",
			Value:       2048,
			Destination: &maxContext,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Aliases:     []string{"log_level"},
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Aliases:     []string{"log_format"},
			Usage:       "log format (pretty, text, json)",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}
