package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"showcase/internal/gallery"
	"showcase/internal/logging"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listJSON = `[
  {"github_username": "ada", "Projects": [
    {"title": "Engine", "description": "d", "tech": ["Go"], "github_url": "https://github.com/ada/engine", "maker_image": "img"},
    {"title": "Notes", "description": "d", "tech": [], "github_url": "https://github.com/ada/notes", "live_url": "https://notes.dev", "maker_image": "img"}
  ]},
  {"github_username": "bob", "Projects": [
    {"title": null, "github_url": "https://github.com/bob/x"}
  ]}
]`

const mappingJSON = `{
  "zed": [{"title": "Last"}],
  "amy": [{"title": "First"}, {"title": "Second"}]
}`

func TestDecodeJSON_List(t *testing.T) {
	groups, err := Decode([]byte(listJSON), FormatJSON)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "ada", groups[0].Username)
	require.Len(t, groups[0].Projects, 2)
	assert.Equal(t, "Engine", groups[0].Projects[0].Title)
	assert.Equal(t, []string{"Go"}, groups[0].Projects[0].Tech)
	assert.False(t, groups[0].Projects[0].HasLiveDemo())
	assert.Equal(t, "https://notes.dev", groups[0].Projects[1].LiveURL)

	assert.Empty(t, groups[1].Projects[0].Title, "null title decodes as empty")
}

func TestDecodeJSON_Mapping(t *testing.T) {
	groups, err := Decode([]byte(mappingJSON), FormatJSON)
	require.NoError(t, err)

	want := []gallery.ContributorGroup{
		{Username: "amy", Projects: []gallery.Project{{Title: "First"}, {Title: "Second"}}},
		{Username: "zed", Projects: []gallery.Project{{Title: "Last"}}},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("mapping decode (-want +got):\n%s", diff)
	}
}

func TestDecodeYAML(t *testing.T) {
	list := `
- github_username: ada
  Projects:
    - title: Engine
      tech: [Go, SQLite]
      github_url: https://github.com/ada/engine
      live_url: https://engine.dev
`
	groups, err := Decode([]byte(list), FormatYAML)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "ada", groups[0].Username)
	assert.Equal(t, []string{"Go", "SQLite"}, groups[0].Projects[0].Tech)
	assert.Equal(t, "https://engine.dev", groups[0].Projects[0].LiveURL)

	mapping := "bob:\n  - title: B2\namy:\n  - title: A1\n"
	groups, err = Decode([]byte(mapping), FormatYAML)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "amy", groups[0].Username)
	assert.Equal(t, "B2", groups[1].Projects[0].Title)
}

func TestDecode_EmptyAndInvalid(t *testing.T) {
	groups, err := Decode([]byte("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, groups)

	groups, err = Decode(nil, FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = Decode([]byte(`[{"github_username": 3}]`), FormatJSON)
	assert.ErrorContains(t, err, "invalid contributor list")

	_, err = Decode([]byte(`{"ada": "nope"}`), FormatJSON)
	assert.ErrorContains(t, err, "invalid contributor mapping")

	_, err = Decode([]byte("just a string"), FormatYAML)
	assert.ErrorContains(t, err, "list or a mapping")

	_, err = Decode([]byte("[]"), Format("toml"))
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("projects.YAML"))
	assert.Equal(t, FormatYAML, FormatFor("a/b.yml"))
	assert.Equal(t, FormatJSON, FormatFor("projects.json"))
	assert.Equal(t, FormatJSON, FormatFor("projects"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(listJSON), 0644))

	groups, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to read dataset")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[{"), 0644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "failed to decode dataset")
}

func TestLoad_LogsIssues(t *testing.T) {
	t.Cleanup(logging.CloseAll)
	require.NoError(t, logging.Initialize(t.TempDir(), logging.Options{DebugMode: true, Level: "warn"}))

	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte(listJSON), 0644))
	_, err := Load(path)
	require.NoError(t, err)

	logPath := logging.LogPath()
	logging.CloseAll()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "issue(s), run showcase validate")
	assert.NotContains(t, string(data), "loaded 2 contributors", "info is below the level")
}

func TestLoad_EmptyPathUsesSample(t *testing.T) {
	groups, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, groups)

	flat := gallery.Flatten(groups)
	assert.Len(t, flat, 14)
	for _, p := range flat {
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Username)
	}
	assert.False(t, HasErrors(Inspect(groups)), "sample dataset has no errors")
}

func TestInspect(t *testing.T) {
	groups, err := Decode([]byte(listJSON), FormatJSON)
	require.NoError(t, err)
	groups = append(groups, gallery.ContributorGroup{Projects: []gallery.Project{{Title: "Orphan", Description: "d", Tech: []string{"Go"}, GithubURL: "u"}}})

	issues := Inspect(groups)
	require.True(t, HasErrors(issues))

	var fields []string
	for _, i := range issues {
		fields = append(fields, i.Contributor+"/"+i.Field)
	}
	assert.Contains(t, fields, "ada/tech")
	assert.Contains(t, fields, "bob/title")
	assert.Contains(t, fields, "bob/description")
	assert.Contains(t, fields, "/github_username")
	assert.NotContains(t, fields, "ada/title")

	for _, i := range issues {
		if i.Field == "title" {
			assert.Equal(t, "error: bob project #1: title: missing; only an empty search will match", i.String())
		}
		if i.Field == "github_username" {
			assert.Equal(t, "warning: <no username>: github_username: missing; profile links will be omitted", i.String())
		}
	}
}
