package gallery

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titled(titles ...string) []Project {
	out := make([]Project, len(titles))
	for i, t := range titles {
		out[i] = Project{Title: t, GithubURL: "https://github.com/x/" + t}
	}
	return out
}

func scenarioGroups() []ContributorGroup {
	return []ContributorGroup{
		{Username: "alice", Projects: titled("Alpha", "Beta", "Gamma", "Delta", "Epsilon")},
		{Username: "bob", Projects: titled("Test One", "Unit Test", "test runner", "TestKit", "Contest", "Attest")},
	}
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func titles(ps []Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestFlatten(t *testing.T) {
	groups := scenarioGroups()
	flat := Flatten(groups)

	require.Len(t, flat, 11)
	for _, p := range flat[:5] {
		assert.Equal(t, "alice", p.Username)
	}
	for _, p := range flat[5:] {
		assert.Equal(t, "bob", p.Username)
	}
	assert.Equal(t, "Alpha", flat[0].Title)
	assert.Equal(t, "Attest", flat[10].Title)

	// Source groups keep their empty usernames.
	assert.Empty(t, groups[0].Projects[0].Username)
}

func TestFlatten_Empty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
	assert.Empty(t, Flatten([]ContributorGroup{{Username: "nobody"}}))
}

func TestShuffle_IsPermutation(t *testing.T) {
	in := Flatten(scenarioGroups())
	for i := 0; i < 20; i++ {
		out := Shuffle(in, nil)
		require.Len(t, out, len(in))

		want := titles(in)
		got := titles(out)
		sort.Strings(want)
		sort.Strings(got)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("shuffle is not a permutation (-want +got):\n%s", diff)
		}
	}
	assert.Equal(t, "Alpha", in[0].Title, "input must not be reordered")
}

func TestShuffle_SeededIsReproducible(t *testing.T) {
	in := Flatten(scenarioGroups())
	a := Shuffle(in, seeded())
	b := Shuffle(in, seeded())
	assert.Equal(t, titles(a), titles(b))
}

func TestShuffle_Uniform(t *testing.T) {
	in := titled("a", "b", "c")
	rng := seeded()
	counts := map[string]int{}
	const rounds = 60000
	for i := 0; i < rounds; i++ {
		out := Shuffle(in, rng)
		counts[fmt.Sprint(titles(out))]++
	}

	require.Len(t, counts, 6)
	for order, n := range counts {
		assert.InDelta(t, rounds/6, n, rounds/60, "ordering %s", order)
	}
}

func TestMatchTitle(t *testing.T) {
	tests := []struct {
		title string
		query string
		want  bool
	}{
		{"Weather App", "", true},
		{"Weather App", "weather", true},
		{"Weather App", "APP", true},
		{"Weather App", "ther a", true},
		{"Weather App", "whether", false},
		{"", "", true},
		{"", "x", false},
	}
	for _, tt := range tests {
		t.Run(tt.title+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchTitle(Project{Title: tt.title}, tt.query))
		})
	}
}

func TestFilter(t *testing.T) {
	all := Shuffle(Flatten(scenarioGroups()), seeded())

	assert.Equal(t, titles(all), titles(Filter(all, "")), "empty query keeps order")

	got := Filter(all, "TEST")
	require.Len(t, got, 6)
	var want []string
	for _, p := range all {
		if MatchTitle(p, "test") {
			want = append(want, p.Title)
		}
	}
	if diff := cmp.Diff(want, titles(got)); diff != "" {
		t.Errorf("filter order (-want +got):\n%s", diff)
	}

	assert.Empty(t, Filter(all, "zzz"))
}

func TestFilter_DescriptionAndUsernameIgnored(t *testing.T) {
	ps := []Project{{Title: "Alpha", Description: "needle", Username: "needle", Tech: []string{"needle"}}}
	assert.Empty(t, Filter(ps, "needle"))
}

func TestIngest(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), DefaultPageSize)

	assert.Len(t, s.All(), 11)
	assert.Len(t, s.Filtered(), 11)
	assert.Len(t, s.Visible(), 9)
	assert.Equal(t, titles(s.All()[:9]), titles(s.Visible()))
	assert.False(t, s.Loading())
	assert.False(t, s.AtEnd())
	assert.Equal(t, "", s.Query())
}

func TestIngest_DefaultsPageSize(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), 0)
	assert.Equal(t, DefaultPageSize, s.PageSize())
}

func TestIngest_EmptyDataset(t *testing.T) {
	s := Ingest(nil, nil, DefaultPageSize)
	assert.Empty(t, s.Visible())
	assert.True(t, s.AtEnd(), "zero visible of zero filtered is the end")

	_, _, ok := BeginLoad(s)
	assert.False(t, ok)
}

func TestEndToEndScenario(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), DefaultPageSize)
	require.Len(t, s.Visible(), 9)
	require.Len(t, s.Filtered(), 11)

	s, ticket, ok := BeginLoad(s)
	require.True(t, ok)
	assert.True(t, s.Loading())
	assert.False(t, s.AtEnd())
	assert.Equal(t, 2, s.SkeletonCount())

	s = CompleteLoad(s, ticket)
	assert.Len(t, s.Visible(), 11)
	assert.True(t, s.AtEnd())

	s = ApplyQuery(s, "test")
	assert.Len(t, s.Filtered(), 6)
	assert.Len(t, s.Visible(), 6)
	assert.True(t, s.AtEnd())
}

func TestPaginationMonotonic(t *testing.T) {
	var groups []ContributorGroup
	for g := 0; g < 5; g++ {
		ps := make([]Project, 7)
		for i := range ps {
			ps[i] = Project{Title: fmt.Sprintf("project %d-%d", g, i)}
		}
		groups = append(groups, ContributorGroup{Username: fmt.Sprint("user", g), Projects: ps})
	}

	s := Ingest(groups, seeded(), DefaultPageSize)
	prev := s.Visible()
	for i := 0; i < 10; i++ {
		next, ticket, ok := BeginLoad(s)
		if !ok {
			assert.Equal(t, len(s.Filtered()), len(s.Visible()))
			break
		}
		next = CompleteLoad(next, ticket)
		vis := next.Visible()

		require.GreaterOrEqual(t, len(vis), len(prev))
		require.LessOrEqual(t, len(vis)-len(prev), DefaultPageSize)
		require.LessOrEqual(t, len(vis), len(next.Filtered()))
		assert.Equal(t, titles(next.Filtered()[:len(vis)]), titles(vis), "visible is a prefix of filtered")
		assert.Equal(t, titles(prev), titles(vis[:len(prev)]))

		prev = vis
		s = next
	}
	assert.Len(t, s.Visible(), 35)
	assert.True(t, s.AtEnd())

	again, _, ok := BeginLoad(s)
	assert.False(t, ok)
	assert.Equal(t, s, again)
}

func TestBeginLoad_GuardWhileLoading(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), DefaultPageSize)

	s, first, ok := BeginLoad(s)
	require.True(t, ok)

	s2, _, ok := BeginLoad(s)
	assert.False(t, ok, "second load must not start while one is in flight")
	assert.Equal(t, s, s2)

	s = CompleteLoad(s, first)
	assert.Len(t, s.Visible(), 11)

	// The same ticket delivered twice appends nothing.
	s = CompleteLoad(s, first)
	assert.Len(t, s.Visible(), 11)
}

func TestCompleteLoad_StaleAfterQuery(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), DefaultPageSize)

	s, ticket, ok := BeginLoad(s)
	require.True(t, ok)

	s = ApplyQuery(s, "a")
	assert.False(t, s.Loading(), "query change clears loading")
	before := s.Visible()

	s = CompleteLoad(s, ticket)
	assert.Equal(t, titles(before), titles(s.Visible()))
}

func TestApplyQuery_ResetsToFirstPage(t *testing.T) {
	var ps []Project
	for i := 0; i < 30; i++ {
		ps = append(ps, Project{Title: fmt.Sprintf("item %02d", i)})
	}
	s := Ingest([]ContributorGroup{{Username: "u", Projects: ps}}, seeded(), DefaultPageSize)
	s, tk, _ := BeginLoad(s)
	s = CompleteLoad(s, tk)
	require.Len(t, s.Visible(), 18)

	s = ApplyQuery(s, "item")
	assert.Len(t, s.Filtered(), 30)
	assert.Len(t, s.Visible(), 9)

	s = ApplyQuery(s, "nothing matches")
	assert.Empty(t, s.Visible())
	assert.True(t, s.AtEnd())
}

func TestReingest_KeepsQueryAndInvalidatesLoads(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), DefaultPageSize)
	s = ApplyQuery(s, "")
	s, tk, ok := BeginLoad(s)
	require.True(t, ok)
	s = ApplyQuery(s, "TEST")
	s = ApplyQuery(s, "")

	groups := append(scenarioGroups(), ContributorGroup{
		Username: "carol",
		Projects: titled("Testament", "Zeta"),
	})
	r := Reingest(s, groups, seeded())
	assert.Equal(t, "", r.Query())
	assert.Len(t, r.All(), 13)
	assert.Greater(t, r.Generation(), s.Generation())

	r = ApplyQuery(r, "test")
	assert.Len(t, r.Filtered(), 7)

	// A ticket from before the reload never lands on the new state.
	r, _, ok = BeginLoad(ApplyQuery(r, ""))
	require.True(t, ok)
	assert.Len(t, CompleteLoad(r, tk).Visible(), 9)
}

func TestCancelLoad(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), DefaultPageSize)
	s, tk, _ := BeginLoad(s)
	s = CancelLoad(s)
	assert.False(t, s.Loading())
	s = CompleteLoad(s, tk)
	assert.Len(t, s.Visible(), 9)

	// Cancelling with nothing in flight is a no-op.
	assert.Equal(t, s, CancelLoad(s))
}

func TestState_ValueSemantics(t *testing.T) {
	s := Ingest(scenarioGroups(), seeded(), DefaultPageSize)
	loading, _, _ := BeginLoad(s)
	assert.False(t, s.Loading())
	assert.True(t, loading.Loading())

	narrowed := ApplyQuery(s, "test")
	assert.Len(t, s.Filtered(), 11)
	assert.Len(t, narrowed.Filtered(), 6)
}

func TestProjectLinks(t *testing.T) {
	p := Project{GithubURL: "https://github.com/a/b", LiveURL: "https://b.example", Username: "a"}
	assert.True(t, p.HasLiveDemo())
	assert.Equal(t, "https://b.example", p.LiveDemoURL(false))
	assert.Equal(t, "https://github.com/a/b", p.LiveDemoURL(true))
	assert.Equal(t, "https://github.com/a", p.ProfileURL())

	p.LiveURL = "  "
	assert.False(t, p.HasLiveDemo())
	assert.Empty(t, p.LiveDemoURL(false))
	assert.Empty(t, p.LiveDemoURL(true))

	assert.Empty(t, Project{}.ProfileURL())
}

func TestNearBottom(t *testing.T) {
	assert.True(t, NearBottom(0, 20, 10, 4), "short content is always near the bottom")
	assert.False(t, NearBottom(0, 20, 100, 4))
	assert.True(t, NearBottom(76, 20, 100, 4))
	assert.False(t, NearBottom(75, 20, 100, 4))
	assert.True(t, NearBottom(80, 20, 100, 0))
}
