package gallery

import "math/rand/v2"

// Flatten turns contributor groups into one ordered slice, stamping each
// project with its group's username. Group order and project order are kept.
func Flatten(groups []ContributorGroup) []Project {
	n := 0
	for _, g := range groups {
		n += len(g.Projects)
	}

	out := make([]Project, 0, n)
	for _, g := range groups {
		for _, p := range g.Projects {
			p.Username = g.Username
			out = append(out, p)
		}
	}
	return out
}

// Shuffle returns a uniformly permuted copy of projects (Fisher-Yates).
// A nil rng uses the global source, so every call yields a fresh order.
func Shuffle(projects []Project, rng *rand.Rand) []Project {
	out := make([]Project, len(projects))
	copy(out, projects)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Ingest builds the initial list state: flatten, shuffle, then expose the
// first page of the unfiltered set.
func Ingest(groups []ContributorGroup, rng *rand.Rand, pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	all := Shuffle(Flatten(groups), rng)
	return State{
		all:      all,
		filtered: all,
		visible:  min(pageSize, len(all)),
		pageSize: pageSize,
	}
}

// Reingest replaces the dataset behind s with a fresh shuffle of groups,
// keeping the page size and query. Loads issued against s are invalidated.
func Reingest(s State, groups []ContributorGroup, rng *rand.Rand) State {
	next := Ingest(groups, rng, s.pageSize)
	next.generation = s.generation
	return ApplyQuery(next, s.query)
}
