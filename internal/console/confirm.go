package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// IsYes reports whether answer is a "y" in any case, ignoring surrounding
// whitespace. "yes" does not count.
func IsYes(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}

// LineConfirmer reads one line of text per prompt.
type LineConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineConfirmer creates a LineConfirmer that prompts on out and reads
// from in.
func NewLineConfirmer(in io.Reader, out io.Writer) *LineConfirmer {
	return &LineConfirmer{in: bufio.NewReader(in), out: out}
}

// Confirm prints prompt and returns true only for a "y" answer. End of input
// without an answer is a refusal.
func (c *LineConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprint(c.out, prompt+" ")
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return false, err
		}
		if line == "" {
			return false, nil
		}
	}
	return IsYes(line), nil
}

// SurveyConfirmer prompts on an interactive terminal.
type SurveyConfirmer struct{}

// Confirm asks prompt as a free-text question so that only "y" proceeds.
func (SurveyConfirmer) Confirm(prompt string) (bool, error) {
	var answer string
	if err := survey.AskOne(&survey.Input{
		Message: prompt,
		Help:    "Type y to place the orders. Anything else cancels.",
	}, &answer); err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// NewConfirmer picks the terminal prompt when in is a TTY and falls back to
// reading a line otherwise.
func NewConfirmer(in *os.File, out io.Writer) Confirmer {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return SurveyConfirmer{}
	}
	return NewLineConfirmer(in, out)
}
