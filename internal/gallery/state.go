package gallery

// DefaultPageSize is the number of projects exposed per load.
const DefaultPageSize = 9

// State is the list controller's state. It is a value: every transition
// returns a new State and leaves the receiver untouched. The project slices
// are shared between copies and must be treated as read-only.
type State struct {
	all      []Project
	filtered []Project
	query    string
	visible  int
	loading  bool
	pageSize int

	// generation changes whenever filtered is replaced, so loads started
	// against an older result set can be recognized and dropped.
	generation uint64
}

// LoadTicket identifies one in-flight load.
type LoadTicket struct {
	Generation uint64
	Offset     int
}

// All returns the shuffled, unfiltered projects.
func (s State) All() []Project { return s.all }

// Filtered returns the projects matching the current query.
func (s State) Filtered() []Project { return s.filtered }

// Visible returns the exposed prefix of Filtered.
func (s State) Visible() []Project { return s.filtered[:s.visible] }

// Query returns the query the filtered set was computed from.
func (s State) Query() string { return s.query }

// Loading reports whether a load is in flight.
func (s State) Loading() bool { return s.loading }

// PageSize returns the load increment.
func (s State) PageSize() int { return s.pageSize }

// Generation returns the current result-set generation.
func (s State) Generation() uint64 { return s.generation }

// HasMore reports whether part of Filtered is still hidden.
func (s State) HasMore() bool { return s.visible < len(s.filtered) }

// AtEnd reports whether the end-of-results marker should be shown.
// An empty result set is at its end.
func (s State) AtEnd() bool { return !s.loading && !s.HasMore() }

// SkeletonCount is the number of placeholder cards to show while loading.
func (s State) SkeletonCount() int {
	if !s.loading {
		return 0
	}
	return min(s.pageSize, len(s.filtered)-s.visible)
}

// ApplyQuery recomputes the filtered set for q and resets the visible prefix
// to the first page. Any in-flight load is invalidated.
func ApplyQuery(s State, q string) State {
	s.query = q
	s.filtered = Filter(s.all, q)
	s.visible = min(s.pageSize, len(s.filtered))
	s.loading = false
	s.generation++
	return s
}

// BeginLoad starts loading the next page. It returns ok=false, and the state
// unchanged, when a load is already in flight or nothing is left to load.
func BeginLoad(s State) (State, LoadTicket, bool) {
	if s.loading || !s.HasMore() {
		return s, LoadTicket{}, false
	}
	s.loading = true
	return s, LoadTicket{Generation: s.generation, Offset: s.visible}, true
}

// CompleteLoad appends the page the ticket was issued for. Tickets from an
// older generation, or whose offset no longer matches, leave s unchanged.
func CompleteLoad(s State, t LoadTicket) State {
	if !s.loading || t.Generation != s.generation || t.Offset != s.visible {
		return s
	}
	s.visible = min(s.visible+s.pageSize, len(s.filtered))
	s.loading = false
	return s
}

// CancelLoad drops an in-flight load without appending anything.
func CancelLoad(s State) State {
	if !s.loading {
		return s
	}
	s.loading = false
	s.generation++
	return s
}
