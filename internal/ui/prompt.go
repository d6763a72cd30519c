package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt asks questions on out and reads answers line by line from in.
// The same Prompt must be used for every read of in, as it buffers.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
	// AssumeYes answers every confirmation with yes without reading.
	AssumeYes bool
}

func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question; only "y" or "yes" (any case) count as yes.
// ctx is not consulted while waiting for input.
func (p *Prompt) Confirm(_ context.Context, question string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.ReadLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Ask prints label and returns the trimmed answer, or def if the answer is empty.
func (p *Prompt) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	line, err := p.ReadLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// ReadLine returns the next line without its line ending and surrounding spaces.
// A last line without a newline is returned with a nil error; io.EOF follows.
func (p *Prompt) ReadLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
