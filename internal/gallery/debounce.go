package gallery

import "time"

// DefaultDebounce is the quiet period before a typed query is applied.
const DefaultDebounce = 300 * time.Millisecond

// Debounce tracks the latest value of a rapidly changing input. Each Bump
// supersedes every earlier one; the host arms a timer per Bump and hands the
// sequence number back to Settle when it fires. Only the newest sequence
// settles, so at most one pending update is ever live.
type Debounce[T any] struct {
	seq     uint64
	value   T
	pending bool
}

// Bump records v as the latest value and returns its sequence number.
func (d Debounce[T]) Bump(v T) (Debounce[T], uint64) {
	d.seq++
	d.value = v
	d.pending = true
	return d, d.seq
}

// Settle returns the pending value if seq is still the latest Bump.
func (d Debounce[T]) Settle(seq uint64) (Debounce[T], T, bool) {
	var zero T
	if !d.pending || seq != d.seq {
		return d, zero, false
	}
	d.pending = false
	return d, d.value, true
}

// Pending reports whether a bumped value has not settled yet.
func (d Debounce[T]) Pending() bool { return d.pending }

// Seq returns the latest sequence number.
func (d Debounce[T]) Seq() uint64 { return d.seq }
