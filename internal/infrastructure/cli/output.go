package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/doeshing/nlsh-go/internal/ports"
)

// StdoutSink writes loop output line by line.
type StdoutSink struct {
	out io.Writer
}

// NewStdoutSink builds a sink, defaulting to os.Stdout.
func NewStdoutSink(out io.Writer) *StdoutSink {
	if out == nil {
		out = os.Stdout
	}
	return &StdoutSink{out: out}
}

// Write implements ports.OutputSink.
func (s *StdoutSink) Write(text string) {
	fmt.Fprintln(s.out, text)
}

var _ ports.OutputSink = (*StdoutSink)(nil)
