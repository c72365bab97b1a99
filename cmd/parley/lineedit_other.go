//go:build !linux

package main

import "fmt"

func readInteractiveLine(prompt string) (string, error) {
	fmt.Print(prompt)
	return readBufferedLine(stdinReader)
}
