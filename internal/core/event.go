package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated confirms room creation to the owner.
	EventRoomCreated EventKind = iota
	// EventRoomUpdate carries a full room snapshot for UI sync.
	EventRoomUpdate
	// EventWaiting tells a matchmaking requester they were enqueued.
	EventWaiting
	// EventMatched tells matched players their room is ready.
	EventMatched
	// EventRoundStarted announces drawer and time budget for a new round.
	EventRoundStarted
	// EventChooseWord privately offers candidate words to the drawer.
	EventChooseWord
	// EventDrawingStarted signals the word has been locked in.
	EventDrawingStarted
	// EventTimer is a periodic countdown tick.
	EventTimer
	// EventCorrectGuess announces a winning guess and updated scoreboard.
	EventCorrectGuess
	// EventChat delivers a non-winning guess as a chat message.
	EventChat
	// EventRoundEnded reveals the word at the end of a round.
	EventRoundEnded
	// EventGameOver is terminal and carries the final scoreboard.
	EventGameOver
	// EventDraw relays an opaque stroke payload.
	EventDraw
	// EventError notifies the caller about a rejected request.
	EventError
)

// ScoreEntry is one row of a scoreboard.
type ScoreEntry struct {
	ID    string
	Name  string
	Score int
}

// Event is sent to clients to describe what happened in the system.
// Fields are populated per kind.
type Event struct {
	Kind       EventKind
	Room       string
	Round      int
	DrawerID   string
	DrawerName string
	TimeBudget int // seconds, for EventRoundStarted
	Seconds    int // remaining, for EventTimer
	Words      []string
	Word       string
	WordLength int
	From       string // connection id, for chat/correct guess
	FromName   string
	Text       string
	Scoreboard []ScoreEntry
	Snapshot   *RoomSnapshot
	Stroke     json.RawMessage
	Error      *GameError
}
