package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsSequentialNumbers(t *testing.T) {
	m := NewManager()
	r1 := m.Register("a", "sock-a", "Alice", true)
	r2 := m.Register("b", "sock-b", "Bob", true)

	assert.Equal(t, 1, r1.Number)
	assert.Equal(t, 2, r2.Number)
	assert.NotEmpty(t, r1.Token)
	assert.NotEqual(t, r1.Token, r2.Token)
}

func TestRegisterIsIdempotentOnPlayerID(t *testing.T) {
	m := NewManager()
	r1 := m.Register("a", "sock-a", "Alice", true)
	r2 := m.Register("a", "sock-a2", "Alice", false)

	assert.Equal(t, r1.Number, r2.Number)
	assert.Equal(t, r1.Token, r2.Token)

	playerID, ok := m.PlayerIDForSocket("sock-a2")
	require.True(t, ok)
	assert.Equal(t, "a", playerID)

	_, ok = m.PlayerIDForSocket("sock-a")
	assert.False(t, ok, "old socket index should be dropped")
}

func TestReconnectRewiresSocketAndPreservesNumber(t *testing.T) {
	m := NewManager()
	r := m.Register("a", "sock-a", "Alice", true)

	playerID, ok := m.Reconnect(r.Token, "sock-a2")
	require.True(t, ok)
	assert.Equal(t, "a", playerID)

	num, _ := m.Number("a")
	assert.Equal(t, r.Number, num)
}

func TestReconnectUnknownTokenFails(t *testing.T) {
	m := NewManager()
	_, ok := m.Reconnect("bogus", "sock-x")
	assert.False(t, ok)
}

func TestHandleDisconnectPreservesTokenAndNumber(t *testing.T) {
	m := NewManager()
	r := m.Register("a", "sock-a", "Alice", true)
	m.HandleDisconnect("sock-a")

	_, ok := m.PlayerIDForSocket("sock-a")
	assert.False(t, ok)

	num, ok := m.Number("a")
	require.True(t, ok)
	assert.Equal(t, r.Number, num)
}

func TestRemovePlayerPurgesEverything(t *testing.T) {
	m := NewManager()
	r := m.Register("a", "sock-a", "Alice", true)
	m.RemovePlayer("a")

	_, ok := m.Number("a")
	assert.False(t, ok)
	_, ok = m.Reconnect(r.Token, "sock-new")
	assert.False(t, ok)
}

func TestHandleLobbyDisconnectGraceCancelledByRemovePlayer(t *testing.T) {
	m := NewManager()
	m.Register("a", "sock-a", "Alice", true)

	expired := make(chan string, 1)
	// LobbyGraceDuration is a 60s constant, so this test does not wait for
	// expiry; it checks that an explicit RemovePlayer stops the pending
	// grace timer, so onExpiry never fires.
	m.HandleLobbyDisconnect("a", "sock-a", func(playerID string) { expired <- playerID })
	m.RemovePlayer("a")

	select {
	case <-expired:
		t.Fatal("onExpiry should not fire from an explicit RemovePlayer")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestReadyCountOnlyCountsConnected(t *testing.T) {
	m := NewManager()
	m.Register("a", "sock-a", "Alice", true)
	m.Register("b", "sock-b", "Bob", true)
	m.SetPlayerReady("a", true)
	m.SetPlayerReady("b", true)
	m.HandleDisconnect("sock-b")

	ready, total := m.GetReadyCount()
	assert.Equal(t, 1, ready)
	assert.Equal(t, 1, total)
}

func TestSweepPurgesInactiveSessions(t *testing.T) {
	m := NewManager()
	fixedNow := time.Now()
	m.now = func() time.Time { return fixedNow }
	m.Register("a", "sock-a", "Alice", true)

	m.now = func() time.Time { return fixedNow.Add(SessionTimeout + time.Second) }
	expired := m.Sweep()

	assert.Equal(t, []string{"a"}, expired)
	_, ok := m.PlayerIDForSocket("sock-a")
	assert.False(t, ok)
}

func TestLobbyListsEveryPlayerOrderedByNumber(t *testing.T) {
	m := NewManager()
	m.Register("b", "sock-b", "Bob", true)
	m.Register("a", "sock-a", "Alice", true)
	m.SetPlayerReady("b", true)
	m.HandleDisconnect("sock-a")

	lobby := m.Lobby()
	require.Len(t, lobby, 2)

	assert.Equal(t, "b", lobby[0].PlayerID)
	assert.Equal(t, 1, lobby[0].Number)
	assert.True(t, lobby[0].IsReady)
	assert.True(t, lobby[0].IsConnected)

	assert.Equal(t, "a", lobby[1].PlayerID)
	assert.Equal(t, 2, lobby[1].Number)
	assert.False(t, lobby[1].IsReady)
	assert.False(t, lobby[1].IsConnected, "disconnected socket should clear IsConnected")
}
