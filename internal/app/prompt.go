package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"capsule-go/internal/capsule"
)

// LinePrompt shows the capsule menu and reads one line of input. There is
// no retry: the first invalid answer is final.
type LinePrompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompt reads answers from in and writes the menu to out.
func NewLinePrompt(in io.Reader, out io.Writer) *LinePrompt {
	return &LinePrompt{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompt) Choose(capsules []*capsule.Capsule) (*capsule.Capsule, error) {
	if err := RenderListing(p.out, capsules); err != nil {
		return nil, fmt.Errorf("writing menu: %w", err)
	}
	if _, err := fmt.Fprintln(p.out, "Select a capsule to restore (enter the number):"); err != nil {
		return nil, fmt.Errorf("writing prompt: %w", err)
	}

	line, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
		// final line without a newline
	case errors.Is(err, io.EOF):
		return nil, &capsule.SelectionError{Count: len(capsules)}
	default:
		return nil, fmt.Errorf("reading selection: %w", err)
	}

	idx, err := capsule.ParseSelection(line, len(capsules))
	if err != nil {
		return nil, err
	}
	return capsules[idx], nil
}

var _ capsule.Chooser = (*LinePrompt)(nil)
