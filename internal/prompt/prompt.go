// Package prompt implements simple line-based interactive prompts.
// Readers and writers are injected so commands stay testable; no terminal
// handling beyond plain lines is attempted.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user for text input and confirmations.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Text asks for a line of text. An empty answer returns the default.
func (p *Prompter) Text(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// Confirm asks a yes/no question. An empty answer returns the default;
// anything starting with "y" or "Y" is yes, anything else is no.
func (p *Prompter) Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", label, hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	if line == "" {
		return defaultYes, nil
	}
	return strings.HasPrefix(strings.ToLower(line), "y"), nil
}

// readLine reads one line, trimming the trailing newline and surrounding
// whitespace. EOF with no input is an error so callers never loop forever
// on a closed stdin.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
