package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter reads one line of free text per question.
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(in io.Reader, w io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(in), w: w}
}

// ask prints label without a newline and returns the answer with the line
// ending removed. io.EOF is returned only when the input ended before any
// character was read.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.w, label)
	line, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
