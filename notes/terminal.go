package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/adamspd/StudyNotes/models"
)

// MarkdownText lays the sections out as one Markdown document.
func MarkdownText(view *models.NotesView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", view.Title)

	for _, section := range view.Sections {
		if section.MainHeader != "" {
			fmt.Fprintf(&b, "## %s\n\n", section.MainHeader)
		}
		fmt.Fprintf(&b, "### %s\n\n", section.Title)

		for _, c := range section.Concepts {
			heading := strings.TrimSpace(c.Label)
			if c.Number != "" {
				heading = c.Number + ") " + heading
			}
			if c.Frequency > 0 {
				heading += fmt.Sprintf(" `%d회`", c.Frequency)
			}
			if c.Favorite {
				heading += " ★"
			}
			fmt.Fprintf(&b, "**%s**\n\n", heading)
			if c.Body != "" {
				b.WriteString(c.Body + "\n\n")
			}
		}

		for _, p := range section.Problems {
			var line strings.Builder
			if p.Years != "" {
				fmt.Fprintf(&line, "[%s 출제년도] ", p.Years)
			}
			if p.Number != "" {
				line.WriteString(p.Number + ". ")
			}
			line.WriteString(p.Text)
			b.WriteString(quote(line.String()))
			if p.Answer != "" {
				b.WriteString(quote("→ " + p.Answer))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func quote(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "  \n") + "\n"
}

// Preview renders the notes for a terminal of the given width.
func Preview(view *models.NotesView, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return renderer.Render(MarkdownText(view))
}
