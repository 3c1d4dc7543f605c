package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/Koster99/personal-asistant/datastores"
)

var (
	green   = lipgloss.Color("#00C832")
	cyan    = lipgloss.Color("#00D4AA")
	gray    = lipgloss.Color("#aaaaaa")
	white   = lipgloss.Color("#e0e0e0")
	warning = lipgloss.Color("#FFB000")
)

// Console implements [Renderer] on an [io.Writer], one line per record.
// Styles only apply when the writer is a terminal.
type Console struct {
	w io.Writer

	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	unknownStyle lipgloss.Style
	titleStyle   lipgloss.Style
	commandStyle lipgloss.Style
	messageStyle lipgloss.Style
}

var _ Renderer = (*Console)(nil)

func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w:            w,
		labelStyle:   r.NewStyle().Foreground(green).Bold(true),
		valueStyle:   r.NewStyle().Foreground(white),
		unknownStyle: r.NewStyle().Foreground(gray).Italic(true),
		titleStyle:   r.NewStyle().Foreground(cyan).Bold(true),
		commandStyle: r.NewStyle().Foreground(green),
		messageStyle: r.NewStyle().Foreground(warning),
	}
}

func (c *Console) RenderRecord(r *datastores.Record) {
	fmt.Fprintf(c.w, "%s %s, %s %s, %s %s\n",
		c.labelStyle.Render("Name:"), c.valueStyle.Render(r.Name()),
		c.labelStyle.Render("Phone:"), c.field(r.Phone()),
		c.labelStyle.Render("Birthday:"), c.field(r.Birthday()),
	)
}

func (c *Console) RenderResults(rs []*datastores.Record) {
	if len(rs) == 0 {
		c.RenderMessage(NoResults)
		return
	}
	for _, r := range rs {
		c.RenderRecord(r)
	}
}

func (c *Console) RenderMessage(msg string) {
	fmt.Fprintln(c.w, c.messageStyle.Render(msg))
}

func (c *Console) RenderCommandList(cmds []Command) {
	fmt.Fprintln(c.w, c.titleStyle.Render("Available commands:"))
	for i, cmd := range cmds {
		fmt.Fprintf(c.w, "%d. %s - %s\n", i+1, c.commandStyle.Render(cmd.Name), cmd.Help)
	}
}

func (c *Console) field(value string) string {
	if value == "" {
		return c.unknownStyle.Render(unknown)
	}
	return c.valueStyle.Render(value)
}
