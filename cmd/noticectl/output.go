package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/notice-desk/internal/desk"
)

// printer writes banners and results, styled when w is a terminal.
type printer struct {
	w io.Writer

	success lipgloss.Style
	failed  lipgloss.Style
	muted   lipgloss.Style
	title   lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("244")),
		title:   r.NewStyle().Foreground(lipgloss.Color("63")).Bold(true),
	}
}

func (p *printer) banner(b desk.Banner) {
	if !b.Visible() {
		return
	}
	if b.Level == desk.LevelError {
		p.failure(b.Message)
		return
	}
	fmt.Fprintln(p.w, p.success.Render(b.Message))
}

func (p *printer) failure(msg string) {
	fmt.Fprintln(p.w, p.failed.Render(msg))
}

func (p *printer) note(msg string) {
	fmt.Fprintln(p.w, p.muted.Render(msg))
}

func (p *printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) history(h desk.History) {
	if h.Empty() {
		p.note(h.Placeholder())
		return
	}
	for _, row := range h.Rows {
		fmt.Fprintf(p.w, "%s %s %s\n", p.title.Render("#"+string(row.ID)), row.Title, p.muted.Render(row.Date))
		fmt.Fprintf(p.w, "    %s\n", row.Summary)
	}
}
