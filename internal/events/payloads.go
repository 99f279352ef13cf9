package events

import "github.com/motionjam/shakedown/internal/player"

// PlayerDeathPayload is emitted once per death. VictimRoleKind is read
// by the BeastHunter role hook (Assassin matches on VictimID); KillerID
// is carried but no hook reads it. The gateway strips both when it re-marshals the wire frame, since the
// wire contract only promises victimId/victimNumber/victimName/gameTime.
type PlayerDeathPayload struct {
	VictimID       string `json:"victimId"`
	VictimNumber   int    `json:"victimNumber"`
	VictimName     string `json:"victimName"`
	VictimRoleKind string `json:"-"`
	KillerID       string `json:"-"`
	GameTime       int64  `json:"gameTime"`
}

// RoundStartPayload backs round:start.
type RoundStartPayload struct {
	RoundNumber int      `json:"roundNumber"`
	TotalRounds int      `json:"totalRounds"`
	GameEvents  []string `json:"gameEvents"`
}

// ScoreEntry is one row of a round/game scoreboard.
type ScoreEntry struct {
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	Points      int    `json:"points"`
	TotalPoints int    `json:"totalPoints"`
}

// RoundEndPayload backs round:end.
type RoundEndPayload struct {
	RoundNumber int          `json:"roundNumber"`
	Scores      []ScoreEntry `json:"scores"`
	WinnerID    string       `json:"winnerId"`
}

// GameEndPayload backs game:end.
type GameEndPayload struct {
	Scores      []ScoreEntry `json:"scores"`
	WinnerID    string       `json:"winner"`
	TotalRounds int          `json:"totalRounds"`
}

// CountdownPayload backs game:countdown.
type CountdownPayload struct {
	SecondsRemaining int    `json:"secondsRemaining"`
	Phase            string `json:"phase"` // "countdown" | "go"
	RoundNumber      int    `json:"roundNumber"`
	TotalRounds      int    `json:"totalRounds"`
}

// TickPayload backs game:tick.
type TickPayload struct {
	GameTime           int64              `json:"gameTime"`
	RoundTimeRemaining int64              `json:"roundTimeRemaining"`
	Players            []player.Snapshot  `json:"players"`
}

// ReadyUpdatePayload backs ready:update.
type ReadyUpdatePayload struct {
	Ready int `json:"ready"`
	Total int `json:"total"`
}

// PlayerReadyPayload backs player:ready broadcasts. player:joined and
// player:reconnected are unicast replies built by the gateway.
type PlayerReadyPayload struct {
	PlayerID     string `json:"playerId"`
	PlayerName   string `json:"playerName"`
	PlayerNumber int    `json:"playerNumber"`
	IsReady      bool   `json:"isReady"`
}

// RoleAssignedPayload backs role:assigned, unicast by socket id.
type RoleAssignedPayload struct {
	SocketID    string `json:"-"`
	PlayerID    string `json:"playerId"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	TargetID    string `json:"-"`
	TargetName  string `json:"targetName,omitempty"`
	TargetNumber int   `json:"targetNumber,omitempty"`
}

// ModeEventPayload backs mode:event (GameEventManager events, e.g.
// speed-shift windows).
type ModeEventPayload struct {
	EventType string                 `json:"eventType"`
	Data      map[string]interface{} `json:"data"`
}

// BaseEventPayload backs base:registered/base:captured/base:point/base:status.
type BaseEventPayload struct {
	BaseID      string `json:"baseId"`
	BaseNumber  int    `json:"baseNumber"`
	OwnerTeamID string `json:"ownerTeamId,omitempty"`
	IsConnected bool   `json:"isConnected"`
}

// DominationWinPayload backs domination:win.
type DominationWinPayload struct {
	WinningTeamID string         `json:"winningTeamId"`
	Scores        map[string]int `json:"scores"`
}
