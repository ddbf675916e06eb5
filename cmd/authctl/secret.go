package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readSecret reads a line without echo when stdin is a terminal and falls
// back to a plain line read otherwise (pipes, tests).
var readSecret = func(in *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		return string(b), err
	}
	return readLine(in)
}

func promptSecret(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	s, err := readSecret(in)
	fmt.Fprintln(out)
	return s, err
}
