// Package cli provides the cobra command tree and terminal adapters.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/nlsh-go/internal/ports"
)

// Prompter implements ports.ConfirmationPrompter over stdio. It reports
// itself disabled when stdin is not a terminal so piped input never hangs on
// a confirmation.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	tty := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if in == nil {
		in = os.Stdin
	} else {
		tty = true
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		tty: tty,
	}
}

// Enabled indicates the prompter can interact with the user.
func (p *Prompter) Enabled() bool {
	return p.tty
}

// Confirm asks the user a yes/no question.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
