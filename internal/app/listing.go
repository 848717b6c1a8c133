package app

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"capsule-go/internal/capsule"
)

// capsuleGlyph is the nerd-font archive icon shown before each entry.
const capsuleGlyph = "[\uf2da ]"

// RenderListing writes a 1-based numbered list of capsule names to w.
// Colours are only emitted when w is a colour-capable terminal.
func RenderListing(w io.Writer, capsules []*capsule.Capsule) error {
	r := lipgloss.NewRenderer(w)
	glyph := r.NewStyle().Foreground(lipgloss.Color("11"))
	index := r.NewStyle().Foreground(lipgloss.Color("14"))

	if _, err := fmt.Fprintln(w, "Available Capsules:"); err != nil {
		return err
	}
	for i, c := range capsules {
		_, err := fmt.Fprintf(w, "%s:(%s): %s\n",
			glyph.Render(capsuleGlyph),
			index.Render(strconv.Itoa(i+1)),
			strconv.Quote(c.Name),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
