package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/samcharles93/parley/internal/session"
)

type StreamMode string

const (
	StreamInstant    StreamMode = "instant"
	StreamTypewriter StreamMode = "typewriter"
	StreamQuiet      StreamMode = "quiet"
)

// ANSI sequences matching the session console states.
const (
	ansiReset     = "\x1b[0m"
	ansiPrompt    = "\x1b[33m"
	ansiUserInput = "\x1b[1m\x1b[32m"
)

// StreamWriter handles buffered token streaming with configurable modes.
// It also tracks the session console state and switches terminal colors
// when enabled.
type StreamWriter struct {
	mode   StreamMode
	output io.Writer
	buffer *bufio.Writer

	mu sync.Mutex

	// For quiet mode
	accumulator strings.Builder

	color bool
	state session.ConsoleState
}

// NewStreamWriter creates a new streaming output handler.
func NewStreamWriter(mode StreamMode, color bool) *StreamWriter {
	return &StreamWriter{
		mode:   mode,
		output: os.Stdout,
		buffer: bufio.NewWriterSize(os.Stdout, 4096),
		color:  color,
	}
}

// Token handles a single rendered token from the session.
func (w *StreamWriter) Token(text string) {
	switch w.mode {
	case StreamTypewriter:
		w.writeTypewriter(text)
	case StreamQuiet:
		w.writeQuiet(text)
	default:
		w.writeInstant(text)
	}
}

// State switches the console color to match who is writing. A no-op unless
// color is enabled and the state actually changed.
func (w *StreamWriter) State(s session.ConsoleState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.color || s == w.state {
		return
	}
	w.state = s
	switch s {
	case session.ConsolePrompt:
		_, _ = w.buffer.WriteString(ansiPrompt)
	case session.ConsoleUser:
		_, _ = w.buffer.WriteString(ansiUserInput)
	default:
		_, _ = w.buffer.WriteString(ansiReset)
	}
	_ = w.buffer.Flush()
}

// Flush ensures all buffered content is written and the terminal color is
// restored. Returns the accumulated session text.
func (w *StreamWriter) Flush() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.color && w.state != session.ConsoleDefault {
		w.state = session.ConsoleDefault
		_, _ = w.buffer.WriteString(ansiReset)
	}
	_ = w.buffer.Flush()
	if w.mode == StreamQuiet {
		fmt.Fprint(w.output, w.accumulator.String())
	}
	return w.accumulator.String()
}

// writeInstant - per-token flush
func (w *StreamWriter) writeInstant(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.accumulator.WriteString(token)
	_, _ = w.buffer.WriteString(token)
	_ = w.buffer.Flush()
}

// writeTypewriter - character-by-character output
func (w *StreamWriter) writeTypewriter(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.accumulator.WriteString(token)
	for _, r := range token {
		fmt.Fprintf(w.buffer, "%c", r)
		_ = w.buffer.Flush()
	}
}

// writeQuiet - accumulate only, no output until Flush
func (w *StreamWriter) writeQuiet(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.accumulator.WriteString(token)
}

// parseStreamMode falls back to instant for unknown values.
func parseStreamMode(s string) StreamMode {
	switch StreamMode(strings.ToLower(strings.TrimSpace(s))) {
	case StreamTypewriter:
		return StreamTypewriter
	case StreamQuiet:
		return StreamQuiet
	default:
		return StreamInstant
	}
}
