package engine

import (
	"math/rand"
	"strconv"

	"github.com/motionjam/shakedown/internal/actor"
	"github.com/motionjam/shakedown/internal/apperr"
	"github.com/motionjam/shakedown/internal/config"
	"github.com/motionjam/shakedown/internal/events"
	"github.com/motionjam/shakedown/internal/mode"
	"github.com/motionjam/shakedown/internal/player"
	"github.com/motionjam/shakedown/internal/role"
	"github.com/motionjam/shakedown/internal/roundctl"
)

func (e *Engine) handleJoin(ctx actor.Context, m JoinMessage) {
	if e.state != StateWaiting && e.state != StatePreGame {
		ctx.Reply(apperr.State("join_rejected", "joins are only accepted while waiting to start"))
		return
	}

	reg := e.conn.Register(m.PlayerID, m.SocketID, m.Name, true)

	if _, ok := e.players[m.PlayerID]; !ok {
		p := player.New(m.PlayerID, m.Name, reg.Number, player.RoleHooks{}, player.DefaultMovementConfig(), e.effects, 0)
		e.players[m.PlayerID] = p
		e.order = append(e.order, m.PlayerID)
	} else {
		e.players[m.PlayerID].Name = m.Name
	}

	ctx.Reply(JoinResult{Token: reg.Token, Number: reg.Number})
	e.emitLobbyUpdate()
}

func (e *Engine) handleReady(m ReadyMessage) {
	if !e.ready.SetReady(e.conn.ConnectedPlayerIDs(), m.PlayerID) {
		return
	}
	e.conn.SetPlayerReady(m.PlayerID, true)

	name := m.PlayerID
	number := 0
	if p, ok := e.players[m.PlayerID]; ok {
		p.IsReady = true
		name = p.Name
		number = p.Number
	}
	e.bus.Emit(events.PlayerReady, events.PlayerReadyPayload{
		PlayerID: m.PlayerID, PlayerName: name, PlayerNumber: number, IsReady: true,
	})
	ready, total := e.ready.GetReadyCount(e.conn.ConnectedPlayerIDs())
	e.bus.Emit(events.ReadyUpdate, events.ReadyUpdatePayload{Ready: ready, Total: total})
}

func (e *Engine) handleTeamSwitch(m TeamSwitchMessage) {
	if _, ok := e.teams.Cycle(m.PlayerID); !ok {
		return
	}
	e.emitLobbyUpdate()
}

func (e *Engine) handlePlayerDisconnect(m DisconnectMessage) {
	playerID := m.PlayerID
	if playerID == "" {
		playerID, _ = e.conn.PlayerIDForSocket(m.SocketID)
	}
	if playerID == "" {
		return
	}

	if e.state == StateWaiting {
		e.conn.HandleLobbyDisconnect(playerID, m.SocketID, func(expiredID string) {
			e.host.Send(e.selfPID, removePlayerMsg{PlayerID: expiredID}, nil)
		})
		return
	}

	e.conn.HandleDisconnect(m.SocketID)
	if p, ok := e.players[playerID]; ok {
		p.SetDisconnected(e.gameTime)
	}
}

// removePlayerMsg is how a ConnectionManager lobby-grace timer (a real
// goroutine timer, per session's package doc) routes an expired
// player's removal back onto the engine's own mailbox instead of
// mutating engine state directly.
type removePlayerMsg struct{ PlayerID string }

func (e *Engine) removePlayer(playerID string) {
	delete(e.players, playerID)
	for i, id := range e.order {
		if id == playerID {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	e.teams.Remove(playerID)
	e.emitLobbyUpdate()
}

func (e *Engine) handlePlayerReconnect(m ReconnectMessage) {
	if p, ok := e.players[m.PlayerID]; ok {
		p.ClearDisconnected()
	}
	e.emitLobbyUpdate()
}

func (e *Engine) emitLobbyUpdate() {
	type lobbyPlayer struct {
		PlayerID string `json:"playerId"`
		Name     string `json:"name"`
		Number   int    `json:"number"`
		IsReady  bool   `json:"isReady"`
		TeamID   *int   `json:"teamId,omitempty"`
	}
	players := make([]lobbyPlayer, 0, len(e.order))
	for _, id := range e.order {
		p, ok := e.players[id]
		if !ok {
			continue
		}
		entry := lobbyPlayer{PlayerID: p.ID, Name: p.Name, Number: p.Number, IsReady: p.IsReady}
		if teamID, ok := e.teams.TeamOf(p.ID); ok {
			entry.TeamID = &teamID
		}
		players = append(players, entry)
	}
	e.bus.Emit(events.LobbyUpdate, struct {
		Players []lobbyPlayer `json:"players"`
	}{Players: players})
}

// handleLaunch implements the operator-triggered launch: caches the
// requested mode/theme, builds the GameMode, and enters pre-game (or
// jumps ahead per skipPreGame/testMode); roles are assigned when the
// countdown begins, not here. The HTTP caller
// Asks this message, so every path must reply exactly once.
func (e *Engine) handleLaunch(ctx actor.Context, m LaunchMessage) {
	if err := e.doLaunch(m); err != nil {
		ctx.Reply(err)
		return
	}
	ctx.Reply(nil)
}

// doLaunch holds the actual launch logic, usable both from handleLaunch
// (Ask'd over HTTP) and from onAllReady's automatic rematch, which has
// no caller waiting on a reply.
func (e *Engine) doLaunch(m LaunchMessage) *apperr.Error {
	if e.state != StateWaiting {
		return apperr.State("launch_rejected", "a game is already in progress")
	}
	if len(e.conn.ConnectedPlayerIDs()) < 2 {
		return apperr.Validation("launch_rejected", "at least 2 connected players are required")
	}

	settings := e.settings.Snapshot()
	modeKey := m.Mode
	if modeKey == "" {
		modeKey = settings.GameMode
	}
	theme := role.Theme(m.Theme)
	if theme == "" {
		theme = role.Theme(settings.Theme)
	}
	countdownSeconds := 3
	if m.CountdownSeconds != nil {
		countdownSeconds = *m.CountdownSeconds
	}

	e.lastMode = modeKey
	e.lastTheme = theme
	e.lastCountdownSeconds = countdownSeconds
	e.lastTestMode = m.TestMode
	e.testMode = m.TestMode
	e.roundCount = settings.RoundCount
	e.currentRound = 1
	e.gameTime = 0

	e.gameMode = e.buildMode(modeKey, theme, settings)

	if e.gameMode.UsesTeams() {
		e.teams.SetTeamCount(settings.TeamCount)
		e.teams.AssignRoundRobin(e.order)
	}

	e.bus.Emit(events.GameStart, struct{}{})

	if m.SkipPreGame || m.TestMode {
		e.beginCountdown()
		return nil
	}
	e.state = StatePreGame
	return nil
}

func (e *Engine) buildMode(modeKey string, theme role.Theme, settings config.GameSettings) mode.Mode {
	switch modeKey {
	case "death-count":
		return mode.NewDeathCount(int64(settings.RoundDurationSeconds)*1000, int64(settings.DeathCountRespawnSeconds)*1000)
	case "role-based":
		return mode.NewRoleBased(theme)
	case "domination":
		return mode.NewDomination(e.bases, int64(settings.DominationControlSeconds)*1000, settings.DominationPointTarget)
	default:
		return mode.NewClassic()
	}
}

// assignRolesForRound rebuilds every Player for the new round, preserving
// totalPoints and identity.
func (e *Engine) assignRolesForRound() []roundctl.RoleAssignment {
	n := len(e.order)
	var pool []role.Kind
	if e.gameMode.UsesRoles() {
		pool = e.gameMode.RolePool(e.roles, n)
	}

	assassinTargetIdx := -1
	if containsKind(pool, role.KindAssassin) && n > 1 {
		assassinTargetIdx = rand.Intn(n)
	}

	settings := e.settings.Snapshot()
	movementConfig := player.DefaultMovementConfig()
	movementConfig.DangerThreshold = settings.DangerThreshold
	movementConfig.DamageMultiplier = settings.DamageMultiplier

	assignments := make([]roundctl.RoleAssignment, 0, n)
	for i, id := range e.order {
		old, existed := e.players[id]
		totalPoints := 0
		name := id
		number := i + 1
		if existed {
			totalPoints = old.TotalPoints
			name = old.Name
			number = old.Number
		}

		hooks := player.RoleHooks{}
		if pool != nil {
			kind := pool[i%len(pool)]
			if def, ok := e.roles.Lookup(kind); ok {
				buildCtx := role.BuildContext{Bus: e.bus}
				if kind == role.KindAssassin && assassinTargetIdx >= 0 {
					targetIdx := assassinTargetIdx
					if targetIdx == i {
						targetIdx = (i + 1) % n
					}
					targetID := e.order[targetIdx]
					buildCtx.TargetID = targetID
					if tp, ok := e.players[targetID]; ok {
						buildCtx.TargetName = tp.Name
						buildCtx.TargetNumber = tp.Number
					}
				}
				hooks = def.Build(buildCtx)
			}
		}

		p := player.New(id, name, number, hooks, movementConfig, e.effects, totalPoints)
		e.players[id] = p
		if hooks.OnAssigned != nil {
			hooks.OnAssigned(p, e.gameTime)
		}

		if hooks.Kind != "" {
			socketID, _ := e.conn.SocketIDForPlayer(id)
			assignments = append(assignments, roundctl.RoleAssignment{
				SocketID: socketID,
				Payload: events.RoleAssignedPayload{
					SocketID: socketID, PlayerID: id, Name: name,
					DisplayName: hooks.DisplayName, Description: hooks.Description,
					Difficulty: hooks.Difficulty, TargetID: hooks.TargetID, TargetName: hooks.TargetName,
					TargetNumber: hooks.TargetNumber,
				},
			})
		}
	}
	return assignments
}

func containsKind(pool []role.Kind, kind role.Kind) bool {
	for _, k := range pool {
		if k == kind {
			return true
		}
	}
	return false
}

func (e *Engine) beginCountdown() {
	e.state = StateCountdown
	if e.gameMode != nil {
		e.gameMode.OnRoundStart(e.bus)
	}
	assignments := e.assignRolesForRound()
	e.countdown = roundctl.NewCountdown(e.bus, e.lastCountdownSeconds, e.onCountdownGo)
	e.countdown.Begin(e.gameTime, e.currentRound, e.roundCount, e.playersByPriority(), assignments, e.buildTickSnapshot())
}

func (e *Engine) onCountdownGo(gameTime int64) {
	e.state = StateActive
	e.gameTime = 0
	e.bus.Emit(events.RoundStart, events.RoundStartPayload{
		RoundNumber: e.currentRound,
		TotalRounds: e.roundCount,
		GameEvents:  e.gameEvents.ActiveTypes(),
	})
}

func (e *Engine) onReadyEnabled(enabled bool) {
	e.bus.Emit(events.ReadyEnabled, struct {
		Enabled bool `json:"enabled"`
	}{Enabled: enabled})
}

func (e *Engine) onAllReady() {
	switch e.state {
	case StatePreGame, StateRoundEnded:
		e.beginCountdown()
	case StateFinished:
		if len(e.conn.ConnectedPlayerIDs()) >= 2 {
			e.state = StateWaiting
			e.currentRound = 0
			countdownSeconds := e.lastCountdownSeconds
			if err := e.doLaunch(LaunchMessage{
				Mode: e.lastMode, Theme: string(e.lastTheme),
				CountdownSeconds: &countdownSeconds, TestMode: e.lastTestMode,
			}); err != nil {
				e.logError("automatic rematch launch rejected: %s", err.Message)
			}
		}
	}
}

// handleNextRound implements the operator-triggered next-round
// transition. Ask'd over HTTP, so every path replies exactly once.
func (e *Engine) handleNextRound(ctx actor.Context) {
	if e.state != StateRoundEnded {
		ctx.Reply(apperr.State("next_round_rejected", "next-round is only valid once a round has ended"))
		return
	}
	e.currentRound++
	e.beginCountdown()
	ctx.Reply(nil)
}

// handleStop implements the operator-triggered stop: always accepted,
// so it always replies with success.
func (e *Engine) handleStop(ctx actor.Context) {
	e.stopToWaiting()
	e.bus.Emit(events.GameStopped, struct{}{})
	ctx.Reply(nil)
}

func (e *Engine) stopToWaiting() {
	e.state = StateWaiting
	e.bus.ClearRoundListeners()
	e.gameMode = nil
	e.currentRound = 0
	e.gameTime = 0
}

func (e *Engine) handleBaseJoin(m BaseJoinMessage) {
	b := e.bases.Register(m.BaseID, m.SocketID)
	e.bus.Emit(events.BaseRegistered, events.BaseEventPayload{BaseID: b.BaseID, BaseNumber: b.BaseNumber, IsConnected: true})
}

func (e *Engine) handleBaseTap(m BaseTapMessage) {
	snapshot := e.bases.Snapshot()
	next := 0
	for _, b := range snapshot {
		if b.BaseID == m.BaseID && b.OwnerTeamID != nil {
			teamCount := len(e.teams.Teams())
			if teamCount == 0 {
				teamCount = 1
			}
			next = (*b.OwnerTeamID + 1) % teamCount
		}
	}
	if e.bases.Tap(m.BaseID, next, e.gameTime) {
		e.bus.Emit(events.BaseCaptured, events.BaseEventPayload{BaseID: m.BaseID, OwnerTeamID: teamIDString(next)})
	}
}

func teamIDString(teamID int) string {
	return strconv.Itoa(teamID)
}

func (e *Engine) handleBaseDisconnect(m BaseDisconnectMessage) {
	if m.OutsideActivePlay {
		e.bases.Remove(m.BaseID)
		return
	}
	e.bases.SetConnected(m.BaseID, false)
	e.bus.Emit(events.BaseStatus, events.BaseEventPayload{BaseID: m.BaseID, IsConnected: false})
}
