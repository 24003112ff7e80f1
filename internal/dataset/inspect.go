package dataset

import (
	"fmt"
	"strings"

	"showcase/internal/gallery"
)

// Severity grades an Issue.
type Severity string

const (
	// SeverityError marks records the gallery cannot find by search.
	SeverityError Severity = "error"
	// SeverityWarning marks records that render with a missing affordance.
	SeverityWarning Severity = "warning"
)

// Issue describes one shape problem in the dataset. Issues are reported
// only; records are never rejected or rewritten.
type Issue struct {
	Severity    Severity
	Contributor string
	Index       int // position within the contributor's projects
	Field       string
	Message     string
}

func (i Issue) String() string {
	who := i.Contributor
	if who == "" {
		who = "<no username>"
	}
	if i.Index < 0 {
		return fmt.Sprintf("%s: %s: %s: %s", i.Severity, who, i.Field, i.Message)
	}
	return fmt.Sprintf("%s: %s project #%d: %s: %s", i.Severity, who, i.Index+1, i.Field, i.Message)
}

// Inspect lists shape problems in groups.
func Inspect(groups []gallery.ContributorGroup) []Issue {
	var issues []Issue
	for _, g := range groups {
		if strings.TrimSpace(g.Username) == "" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Index:    -1,
				Field:    "github_username",
				Message:  "missing; profile links will be omitted",
			})
		}
		for i, p := range g.Projects {
			add := func(sev Severity, field, msg string) {
				issues = append(issues, Issue{Severity: sev, Contributor: g.Username, Index: i, Field: field, Message: msg})
			}
			if strings.TrimSpace(p.Title) == "" {
				add(SeverityError, "title", "missing; only an empty search will match")
			}
			if strings.TrimSpace(p.GithubURL) == "" {
				add(SeverityWarning, "github_url", "missing")
			}
			if strings.TrimSpace(p.Description) == "" {
				add(SeverityWarning, "description", "missing")
			}
			if len(p.Tech) == 0 {
				add(SeverityWarning, "tech", "no tags")
			}
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}
