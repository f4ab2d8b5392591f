package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// outputStyles colours CLI output. Styles are bound to the destination so
// piped output stays plain.
type outputStyles struct {
	name  lipgloss.Style
	label lipgloss.Style
	dim   lipgloss.Style
	on    lipgloss.Style
	off   lipgloss.Style
}

func newOutputStyles(w io.Writer) outputStyles {
	r := lipgloss.NewRenderer(w)
	return outputStyles{
		name:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Width(14),
		label: r.NewStyle().Foreground(lipgloss.Color("8")).Width(13),
		dim:   r.NewStyle().Foreground(lipgloss.Color("8")),
		on:    r.NewStyle().Foreground(lipgloss.Color("10")),
		off:   r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (s outputStyles) bool(v bool) string {
	if v {
		return s.on.Render("yes")
	}
	return s.off.Render("no")
}
