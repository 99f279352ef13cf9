package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsSequentialNumbers(t *testing.T) {
	m := NewManager()
	b1 := m.Register("base-a", "sock-1")
	b2 := m.Register("base-b", "sock-2")

	assert.Equal(t, 1, b1.BaseNumber)
	assert.Equal(t, 2, b2.BaseNumber)
}

func TestRegisterReconnectPreservesOwnership(t *testing.T) {
	m := NewManager()
	m.Register("base-a", "sock-1")
	m.Tap("base-a", 0, 1000)
	m.SetConnected("base-a", false)

	b := m.Register("base-a", "sock-2")
	require.NotNil(t, b.OwnerTeamID)
	assert.Equal(t, 0, *b.OwnerTeamID)
	assert.True(t, b.IsConnected)
}

func TestDisconnectedBaseDoesNotScore(t *testing.T) {
	m := NewManager()
	m.Register("base-a", "sock-1")
	m.Tap("base-a", 0, 0)
	m.SetConnected("base-a", false)

	deltas := m.ScoreTick(5000, 5000)
	assert.Empty(t, deltas)
}

// TestScoreTickAccumulatesOncePerInterval covers a single base held by
// team 0, a 5s control interval, and 50s elapsed ⇒ 10 points.
func TestScoreTickAccumulatesOncePerInterval(t *testing.T) {
	m := NewManager()
	m.Register("base-red", "sock-r")
	m.Tap("base-red", 0, 0)

	total := 0
	for gameTime := int64(0); gameTime <= 50_000; gameTime += 1000 {
		deltas := m.ScoreTick(gameTime, 5000)
		total += deltas[0]
	}

	assert.Equal(t, 10, total)
}

func TestRemovePurgesBaseAndFreesNumber(t *testing.T) {
	m := NewManager()
	m.Register("base-a", "sock-1")
	m.Remove("base-a")

	b := m.Register("base-b", "sock-2")
	assert.Equal(t, 1, b.BaseNumber)
}

func TestTapUnknownBaseReturnsFalse(t *testing.T) {
	m := NewManager()
	assert.False(t, m.Tap("missing", 0, 0))
}
