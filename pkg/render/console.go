// Package render owns all terminal output: styled notices via lipgloss
// and assistant replies rendered as markdown via glamour.
package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"electron/pkg/history"
)

// Console is an explicit output sink; there are no package-level
// singletons. A nil markdown renderer degrades to plain text.
type Console struct {
	out io.Writer
	md  *glamour.TermRenderer

	bold    lipgloss.Style
	notice  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

// NewConsole builds a console writing to out.
func NewConsole(out io.Writer) *Console {
	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		md = nil
	}
	bold := lipgloss.NewStyle().Bold(true)
	return &Console{
		out:     out,
		md:      md,
		bold:    bold,
		notice:  bold.Foreground(lipgloss.Color("3")),
		success: bold.Foreground(lipgloss.Color("2")),
		failure: bold.Foreground(lipgloss.Color("1")),
	}
}

// Markdown renders text as terminal markdown, falling back to the raw
// text when rendering fails.
func (c *Console) Markdown(text string) {
	if c.md != nil {
		if rendered, err := c.md.Render(text); err == nil {
			_, _ = fmt.Fprint(c.out, rendered)
			return
		}
	}
	_, _ = fmt.Fprintf(c.out, "%s\n", text)
}

// Prompt prints the user's display name and waits on the same line.
func (c *Console) Prompt(name string) {
	_, _ = fmt.Fprintf(c.out, "\n%s: ", c.bold.Render(name))
}

// Echo prints back a line that was supplied on the command line rather
// than typed, so the transcript on screen stays complete.
func (c *Console) Echo(line string) {
	_, _ = fmt.Fprintf(c.out, "%s\n", line)
}

// AssistantReply renders an assistant turn as markdown.
func (c *Console) AssistantReply(name, content string) {
	c.Markdown(fmt.Sprintf("**%s**: %s", name, content))
}

// Notice prints a bold yellow informational line.
func (c *Console) Notice(text string) {
	_, _ = fmt.Fprintf(c.out, "\n%s\n", c.notice.Render(text))
}

// Warn prints a bold yellow warning line.
func (c *Console) Warn(text string) {
	c.Notice(text)
}

// ErrorLine prints a bold red error line.
func (c *Console) ErrorLine(text string) {
	_, _ = fmt.Fprintf(c.out, "\n%s\n", c.failure.Render(text))
}

// Success prints a bold green line.
func (c *Console) Success(text string) {
	_, _ = fmt.Fprintf(c.out, "\n%s\n", c.success.Render(text))
}

// Ask prints a bold yellow question and leaves the cursor after it.
func (c *Console) Ask(text string) {
	_, _ = fmt.Fprintf(c.out, "\n%s: ", c.notice.Render(text))
}

// Farewell prints the final styled message for an exiting session,
// green for a clean exit and red otherwise.
func (c *Console) Farewell(code int, message string) {
	style := c.success
	if code != 0 {
		style = c.failure
	}
	_, _ = fmt.Fprintf(c.out, "\n%s\n", style.Render(message))
}

// History renders the conversation transcript. n is honored only when
// requested is true; n == 0 renders the full history.
func (c *Console) History(userName, assistantName string, turns []history.Turn, n int, requested bool) {
	if len(turns) == 0 {
		_, _ = fmt.Fprintf(c.out, "\n%s\n\n", c.notice.Render("No conversations found. Start a discussion to create history!"))
		return
	}
	if requested && n > 0 && n < len(turns) {
		turns = turns[len(turns)-n:]
	}
	switch {
	case !requested || n == 0:
		c.Markdown("## Full conversation history")
	case n == 1:
		c.Markdown("## Last message")
	default:
		c.Markdown(fmt.Sprintf("## Last %d messages", n))
	}
	c.Markdown("***")
	for _, t := range turns {
		name := assistantName
		if t.Role == history.RoleUser {
			name = userName
		}
		c.Markdown(fmt.Sprintf("**%s**: %s", name, t.Content))
	}
	c.Markdown("***")
}
