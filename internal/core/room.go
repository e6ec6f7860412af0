package core

import (
	"sort"
	"time"
)

// RoomState is a phase of the room lifecycle state machine.
type RoomState int

const (
	StateLobby RoomState = iota
	StateChoosingWord
	StateDrawing
	StateRoundEnd
	StateGameOver
)

func (s RoomState) String() string {
	switch s {
	case StateLobby:
		return "lobby"
	case StateChoosingWord:
		return "choosing_word"
	case StateDrawing:
		return "drawing"
	case StateRoundEnd:
		return "round_end"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Settings are fixed at room creation.
type Settings struct {
	MaxPlayers      int
	Rounds          int
	DrawTimeSeconds int
}

// withDefaults fills non-positive fields with sane values.
func (s Settings) withDefaults() Settings {
	if s.MaxPlayers <= 0 {
		s.MaxPlayers = 8
	}
	if s.Rounds <= 0 {
		s.Rounds = 3
	}
	if s.DrawTimeSeconds <= 0 {
		s.DrawTimeSeconds = 60
	}
	return s
}

// Player is a room member. Bot players fill matchmaking timeout rooms and
// have no connected client behind them.
type Player struct {
	Name  string
	Score int
	Bot   bool
}

// Room is the per-game entity. All access goes through the hub loop, so no
// locking is needed here.
type Room struct {
	Code     string
	OwnerID  string
	Settings Settings

	Players   map[string]*Player
	TurnOrder []string // join order minus departures; drives drawer rotation

	State       RoomState
	Round       int
	DrawerIndex int
	CurrentWord string // lowercase-normalized while a round is live
	WordChoices []string
	GuessedBy   map[string]struct{}

	// gen invalidates outstanding timers: a scheduled task only fires when
	// the room still exists and its generation matches.
	gen   uint64
	timer *time.Timer
}

func newRoom(code, ownerID, ownerName string, settings Settings) *Room {
	r := &Room{
		Code:      code,
		OwnerID:   ownerID,
		Settings:  settings.withDefaults(),
		Players:   make(map[string]*Player),
		TurnOrder: make([]string, 0, 4),
		State:     StateLobby,
		GuessedBy: make(map[string]struct{}),
	}
	r.addPlayer(ownerID, ownerName, false)
	return r
}

// Started reports whether a game is in progress. A finished room behaves
// like a lobby for joins and a fresh start.
func (r *Room) Started() bool {
	switch r.State {
	case StateChoosingWord, StateDrawing, StateRoundEnd:
		return true
	default:
		return false
	}
}

func (r *Room) addPlayer(id, name string, bot bool) {
	r.Players[id] = &Player{Name: name, Bot: bot}
	r.TurnOrder = append(r.TurnOrder, id)
}

// AddPlayer appends a joiner, enforcing capacity and the late-join policy.
func (r *Room) AddPlayer(id, name string, allowLateJoin bool) *GameError {
	if len(r.Players) >= r.Settings.MaxPlayers {
		return gameError(ErrCodeRoomFull, "room is full")
	}
	if r.Started() && !allowLateJoin {
		return gameError(ErrCodeAlreadyStarted, "game already started")
	}
	r.addPlayer(id, name, false)
	return nil
}

// RemovePlayer drops a member from both Players and TurnOrder, keeping
// DrawerIndex pointed at the same player when possible. It reports whether
// the removed player was the active drawer.
func (r *Room) RemovePlayer(id string) (wasDrawer bool) {
	idx := -1
	for i, memberID := range r.TurnOrder {
		if memberID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	wasDrawer = r.Started() && idx == r.DrawerIndex
	delete(r.Players, id)
	delete(r.GuessedBy, id)
	r.TurnOrder = append(r.TurnOrder[:idx], r.TurnOrder[idx+1:]...)

	if idx < r.DrawerIndex {
		r.DrawerIndex--
	}
	if r.DrawerIndex >= len(r.TurnOrder) {
		r.DrawerIndex = 0
	}
	return wasDrawer
}

// Empty returns true when no players remain. The hub destroys the room the
// instant this holds.
func (r *Room) Empty() bool {
	return len(r.TurnOrder) == 0
}

// humanCount reports how many members have a real connection behind them.
// A room whose last human leaves is destroyed even if a bot remains.
func (r *Room) humanCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.Bot {
			n++
		}
	}
	return n
}

// DrawerID returns the connection id whose turn it is to draw.
func (r *Room) DrawerID() string {
	if len(r.TurnOrder) == 0 {
		return ""
	}
	return r.TurnOrder[r.DrawerIndex]
}

// AdvanceDrawer moves rotation to the next player and counts the turn.
func (r *Room) AdvanceDrawer() {
	if len(r.TurnOrder) == 0 {
		return
	}
	r.DrawerIndex = (r.DrawerIndex + 1) % len(r.TurnOrder)
	r.Round++
}

// ResetGame prepares a room for a fresh start, clearing scores and rotation.
func (r *Room) ResetGame() {
	for _, p := range r.Players {
		p.Score = 0
	}
	r.Round = 1
	r.DrawerIndex = 0
	r.CurrentWord = ""
	r.WordChoices = nil
	r.GuessedBy = make(map[string]struct{})
}

// bumpGen invalidates any outstanding timer task for this room.
func (r *Room) bumpGen() {
	r.gen++
}

func (r *Room) cancelTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// Scoreboard returns entries sorted by score descending, ties kept in turn
// order. Sort order is presentation only.
func (r *Room) Scoreboard() []ScoreEntry {
	entries := make([]ScoreEntry, 0, len(r.TurnOrder))
	for _, id := range r.TurnOrder {
		p := r.Players[id]
		entries = append(entries, ScoreEntry{ID: id, Name: p.Name, Score: p.Score})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// RoomSnapshot is the client-visible view of a room. It never carries the
// secret word.
type RoomSnapshot struct {
	Code     string
	OwnerID  string
	Settings Settings
	Players  []ScoreEntry // in turn order
	Started  bool
	State    string
	Round    int
	DrawerID string
}

// Snapshot builds the client-visible view of the room.
func (r *Room) Snapshot() *RoomSnapshot {
	players := make([]ScoreEntry, 0, len(r.TurnOrder))
	for _, id := range r.TurnOrder {
		p := r.Players[id]
		players = append(players, ScoreEntry{ID: id, Name: p.Name, Score: p.Score})
	}
	snap := &RoomSnapshot{
		Code:     r.Code,
		OwnerID:  r.OwnerID,
		Settings: r.Settings,
		Players:  players,
		Started:  r.Started(),
		State:    r.State.String(),
		Round:    r.Round,
	}
	if r.Started() {
		snap.DrawerID = r.DrawerID()
	}
	return snap
}
