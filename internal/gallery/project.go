// Package gallery holds the list controller behind the project showcase:
// ingestion (flatten + shuffle), debounced title filtering and page-by-page
// exposure of the filtered results.
package gallery

import "strings"

// ProfileBaseURL is prefixed to a username to build the contributor link.
const ProfileBaseURL = "https://github.com/"

// Project is one showcased project. Records are built once at ingestion and
// never mutated afterwards.
type Project struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tech        []string `json:"tech" yaml:"tech"`
	GithubURL   string   `json:"github_url" yaml:"github_url"`
	LiveURL     string   `json:"live_url,omitempty" yaml:"live_url,omitempty"`
	MakerImage  string   `json:"maker_image" yaml:"maker_image"`

	// Username is inherited from the owning ContributorGroup at flatten time.
	Username string `json:"username,omitempty" yaml:"-"`
}

// ContributorGroup is the source-only shape of the dataset: one contributor
// and the projects they submitted.
type ContributorGroup struct {
	Username string    `json:"github_username" yaml:"github_username"`
	Projects []Project `json:"Projects" yaml:"Projects"`
}

// HasLiveDemo reports whether the live-demo affordance should be shown.
func (p Project) HasLiveDemo() bool {
	return strings.TrimSpace(p.LiveURL) != ""
}

// LiveDemoURL returns the live-demo link target, or "" when the project has
// no live URL. With legacy set, the GitHub URL is returned instead, which is
// what the first version of the gallery linked to.
func (p Project) LiveDemoURL(legacy bool) string {
	if !p.HasLiveDemo() {
		return ""
	}
	if legacy {
		return p.GithubURL
	}
	return p.LiveURL
}

// ProfileURL returns the contributor's GitHub profile link.
func (p Project) ProfileURL() string {
	if p.Username == "" {
		return ""
	}
	return ProfileBaseURL + p.Username
}
