package gallery

import (
	"strings"

	"golang.org/x/text/cases"
)

// MatchTitle reports whether q occurs in p's title, ignoring case.
// The empty query matches every project, including untitled ones.
func MatchTitle(p Project, q string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(p.Title), fold.String(q))
}

// Filter returns the projects whose title contains q, ignoring case, in their
// original relative order. The input slice is returned as-is for an empty
// query.
func Filter(projects []Project, q string) []Project {
	if q == "" {
		return projects
	}

	fold := cases.Fold()
	needle := fold.String(q)
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if strings.Contains(fold.String(p.Title), needle) {
			out = append(out, p)
		}
	}
	return out
}
