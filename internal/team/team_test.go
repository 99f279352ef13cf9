package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignRoundRobinCyclesThroughTeams(t *testing.T) {
	m := NewManager(2)
	m.AssignRoundRobin([]string{"a", "b", "c", "d"})

	teamA, ok := m.TeamOf("a")
	require.True(t, ok)
	teamB, _ := m.TeamOf("b")
	teamC, _ := m.TeamOf("c")
	teamD, _ := m.TeamOf("d")

	assert.Equal(t, 0, teamA)
	assert.Equal(t, 1, teamB)
	assert.Equal(t, 0, teamC)
	assert.Equal(t, 1, teamD)
}

func TestAssignRoundRobinDoesNotReassignExisting(t *testing.T) {
	m := NewManager(2)
	m.AssignRoundRobin([]string{"a"})
	m.Cycle("a")
	before, _ := m.TeamOf("a")

	m.AssignRoundRobin([]string{"a", "b"})
	after, _ := m.TeamOf("a")

	assert.Equal(t, before, after)
}

func TestCycleWrapsAroundTeamCount(t *testing.T) {
	m := NewManager(3)
	m.AssignRoundRobin([]string{"a"})

	t1, ok := m.Cycle("a")
	require.True(t, ok)
	t2, _ := m.Cycle("a")
	t3, _ := m.Cycle("a")

	assert.Equal(t, 1, t1)
	assert.Equal(t, 2, t2)
	assert.Equal(t, 0, t3)
}

func TestCycleUnknownPlayerReturnsFalse(t *testing.T) {
	m := NewManager(2)
	_, ok := m.Cycle("missing")
	assert.False(t, ok)
}

func TestTeamCountClampedToRange(t *testing.T) {
	assert.Len(t, NewManager(1).Teams(), 2)
	assert.Len(t, NewManager(10).Teams(), 4)
}

func TestShuffleKeepsEverySeenPlayerAssigned(t *testing.T) {
	m := NewManager(2)
	m.AssignRoundRobin([]string{"a", "b", "c", "d"})
	m.Shuffle()

	for _, id := range []string{"a", "b", "c", "d"} {
		teamID, ok := m.TeamOf(id)
		require.True(t, ok)
		assert.GreaterOrEqual(t, teamID, 0)
		assert.Less(t, teamID, 2)
	}
}

func TestRemoveDropsAssignment(t *testing.T) {
	m := NewManager(2)
	m.AssignRoundRobin([]string{"a", "b"})
	m.Remove("a")

	_, ok := m.TeamOf("a")
	assert.False(t, ok)

	roster := m.Roster()
	assert.NotContains(t, roster[0], "a")
}
