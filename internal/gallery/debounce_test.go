package gallery

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timerEvent is a debounce timer armed at keystroke time, due one quiet
// period later.
type timerEvent struct {
	due time.Duration
	seq uint64
}

func TestDebounce_KeystrokeBurst(t *testing.T) {
	keystrokes := []struct {
		at    time.Duration
		value string
	}{
		{0, "t"},
		{100 * time.Millisecond, "te"},
		{150 * time.Millisecond, "tes"},
		{300 * time.Millisecond, "test"},
	}

	var d Debounce[string]
	var timers []timerEvent
	for _, k := range keystrokes {
		var seq uint64
		d, seq = d.Bump(k.value)
		timers = append(timers, timerEvent{due: k.at + DefaultDebounce, seq: seq})
	}
	sort.Slice(timers, func(i, j int) bool { return timers[i].due < timers[j].due })

	type fired struct {
		at    time.Duration
		value string
	}
	var applied []fired
	for _, tm := range timers {
		var v string
		var ok bool
		d, v, ok = d.Settle(tm.seq)
		if ok {
			applied = append(applied, fired{at: tm.due, value: v})
		}
	}

	require.Len(t, applied, 1, "exactly one recomputation")
	assert.Equal(t, "test", applied[0].value)
	assert.Equal(t, 600*time.Millisecond, applied[0].at)
	assert.False(t, d.Pending())
}

func TestDebounce_SettleOnlyOnce(t *testing.T) {
	var d Debounce[string]
	d, seq := d.Bump("go")
	assert.True(t, d.Pending())
	assert.Equal(t, seq, d.Seq())

	d, v, ok := d.Settle(seq)
	require.True(t, ok)
	assert.Equal(t, "go", v)

	_, _, ok = d.Settle(seq)
	assert.False(t, ok)
}

func TestDebounce_SpacedKeystrokesEachSettle(t *testing.T) {
	var d Debounce[string]
	var got []string
	for _, v := range []string{"a", "ab", "abc"} {
		var seq uint64
		d, seq = d.Bump(v)
		var out string
		var ok bool
		d, out, ok = d.Settle(seq)
		require.True(t, ok)
		got = append(got, out)
	}
	assert.Equal(t, []string{"a", "ab", "abc"}, got)
}
