package ui

import (
	"fmt"
	"strings"

	"showcase/internal/gallery"
	"showcase/internal/logging"

	"github.com/charmbracelet/glamour"
)

// projectMarkdown builds the markdown shown in the detail overlay.
func projectMarkdown(p gallery.Project, legacyLiveDemo bool) string {
	var sb strings.Builder

	title := p.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	sb.WriteString("# " + title + "\n\n")
	if p.Username != "" {
		sb.WriteString(fmt.Sprintf("*by @%s*\n\n", p.Username))
	}
	if d := strings.TrimSpace(p.Description); d != "" {
		sb.WriteString(d + "\n\n")
	}
	if len(p.Tech) > 0 {
		tags := make([]string, len(p.Tech))
		for i, t := range p.Tech {
			tags[i] = "`" + t + "`"
		}
		sb.WriteString("**Tech:** " + strings.Join(tags, " ") + "\n\n")
	}

	sb.WriteString("## Links\n\n")
	if p.GithubURL != "" {
		sb.WriteString("- GitHub: " + p.GithubURL + "\n")
	}
	if url := p.LiveDemoURL(legacyLiveDemo); url != "" {
		sb.WriteString("- Live demo: " + url + "\n")
	}
	if url := p.ProfileURL(); url != "" {
		sb.WriteString("- Maker: " + url + "\n")
	}
	return sb.String()
}

// renderMarkdown renders md for the terminal, falling back to the raw
// markdown if glamour fails.
func renderMarkdown(md string, width int, dark bool) string {
	style := "light"
	if dark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("markdown renderer unavailable: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("markdown render failed: %v", err)
		return md
	}
	return out
}
