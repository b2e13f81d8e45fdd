package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_InactiveByDefault(t *testing.T) {
	var tr Tracker

	tok := tr.Next()

	assert.False(t, tr.Active())
	assert.False(t, tr.Current(tok))
	assert.False(t, tr.Live(tok))
}

func TestTracker_NextSupersedes(t *testing.T) {
	var tr Tracker
	tr.Activate()

	first := tr.Next()
	second := tr.Next()

	assert.False(t, tr.Current(first))
	assert.True(t, tr.Current(second))
	assert.True(t, tr.Live(first))
}

func TestTracker_DeactivateDropsEverything(t *testing.T) {
	var tr Tracker
	tr.Activate()
	fetch := tr.Next()
	side := tr.Side()

	tr.Deactivate()

	assert.False(t, tr.Current(fetch))
	assert.False(t, tr.Live(side))
}

func TestTracker_ReactivateDoesNotRevive(t *testing.T) {
	var tr Tracker
	tr.Activate()
	stale := tr.Next()
	tr.Deactivate()

	tr.Activate()

	assert.True(t, tr.Active())
	assert.False(t, tr.Current(stale))
	assert.False(t, tr.Live(stale))
	assert.True(t, tr.Current(tr.Next()))
}

func TestTracker_SideDoesNotSupersedeFetch(t *testing.T) {
	var tr Tracker
	tr.Activate()
	fetch := tr.Next()

	side := tr.Side()

	assert.True(t, tr.Current(fetch))
	assert.True(t, tr.Live(side))
}
