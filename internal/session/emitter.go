package session

// ConsoleState tells the emitter whose text is flowing, so a terminal
// front end can color it. Emitters that do not care ignore it.
type ConsoleState int

const (
	ConsoleDefault ConsoleState = iota
	ConsolePrompt
	ConsoleUser
)

// Emitter receives rendered token text from the loop. State changes are
// always issued from the loop itself, never from a signal path.
type Emitter interface {
	Token(text string)
	State(s ConsoleState)
}

// LineReader supplies one physical line of human input, already stripped of
// its trailing newline. prompt is display-only and may be empty. It must
// return io.EOF when the input stream is closed.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// nopEmitter discards everything; used when no emitter is wired.
type nopEmitter struct{}

func (nopEmitter) Token(string)       {}
func (nopEmitter) State(ConsoleState) {}
