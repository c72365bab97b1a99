package main

import (
	"bufio"
	"io"
	"os"
)

// stdinReader is shared by every non-TTY line read. bufio reads ahead of the
// line it returns, so a per-call reader would drop whatever the previous call
// buffered past its newline.
var stdinReader = bufio.NewReader(os.Stdin)

// readBufferedLine returns the next line from r without its trailing newline,
// or io.EOF once the stream is exhausted.
func readBufferedLine(r *bufio.Reader) (string, error) {
	s, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if s == "" && err == io.EOF {
		return "", io.EOF
	}
	return trimTrailingNewline(s), nil
}

func trimTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '\r' {
		s = s[:len(s)-1]
	}
	return s
}
