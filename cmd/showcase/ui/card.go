package ui

import (
	"strings"

	"showcase/internal/gallery"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// cardHeight is the fixed number of content lines in a card, so cards on a
// row line up and skeletons match the cards they stand in for.
const cardHeight = 4 + CardDescriptionLines

// CardOptions controls how a project card is rendered.
type CardOptions struct {
	Width          int
	Focused        bool
	LegacyLiveDemo bool
}

// RenderCard renders one project as a bordered card.
func RenderCard(s Styles, p gallery.Project, opts CardOptions) string {
	inner := innerWidth(opts.Width)

	title := p.Title
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}

	lines := []string{
		s.CardTitle.Render(clip(title, inner)),
		s.Username.Render(clip("@"+p.Username, inner)),
	}
	lines = append(lines, wrapLines(p.Description, inner, CardDescriptionLines)...)
	lines = append(lines, s.Tech.Render(clip(strings.Join(p.Tech, " · "), inner)))

	links := []string{s.Link.Render("GitHub")}
	if url := p.LiveDemoURL(opts.LegacyLiveDemo); url != "" {
		links = append(links, s.Link.Render("Live Demo"))
	}
	if p.ProfileURL() != "" {
		links = append(links, s.Link.Render("Profile"))
	}
	lines = append(lines, clip(strings.Join(links, "  "), inner))

	style := s.Card
	if opts.Focused {
		style = s.CardFocused
	}
	return style.Width(opts.Width - 2).Height(cardHeight).Render(strings.Join(lines, "\n"))
}

// RenderSkeleton renders a placeholder card shown while a page loads.
func RenderSkeleton(s Styles, width int) string {
	inner := innerWidth(width)
	bar := func(frac float64) string {
		n := int(float64(inner) * frac)
		if n < 1 {
			n = 1
		}
		return s.Skeleton.Render(strings.Repeat("░", n))
	}

	lines := []string{bar(0.75), "", bar(1), bar(5.0 / 6.0)}
	for len(lines) < cardHeight-1 {
		lines = append(lines, "")
	}
	lines = append(lines, bar(0.2)+" "+bar(0.15)+" "+bar(0.25))
	return s.Card.Width(width - 2).Height(cardHeight).Render(strings.Join(lines, "\n"))
}

// RenderGrid lays cards out in rows of cols, returning the rendered grid and
// the first line of every row.
func RenderGrid(cards []string, cols int) (string, []int) {
	if len(cards) == 0 {
		return "", nil
	}
	if cols < 1 {
		cols = 1
	}

	var rows []string
	var offsets []int
	line := 0
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		cells := make([]string, 0, 2*(end-start))
		for i, c := range cards[start:end] {
			if i > 0 {
				cells = append(cells, strings.Repeat(" ", CardGap))
			}
			cells = append(cells, c)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		offsets = append(offsets, line)
		line += lipgloss.Height(row)
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n"), offsets
}

func innerWidth(width int) int {
	// border + horizontal padding
	if w := width - 4; w > 0 {
		return w
	}
	return 1
}

func clip(s string, width int) string {
	return truncate.StringWithTail(s, uint(width), "…")
}

// wrapLines word-wraps s to width and returns exactly n lines, marking any
// cut with an ellipsis.
func wrapLines(s string, width, n int) []string {
	wrapped := strings.Split(wordwrap.String(strings.TrimSpace(s), width), "\n")
	out := make([]string, n)
	for i := 0; i < n && i < len(wrapped); i++ {
		out[i] = clip(wrapped[i], width)
	}
	if len(wrapped) > n {
		out[n-1] = clip(strings.TrimRight(out[n-1], " ")+"…", width)
	}
	return out
}
