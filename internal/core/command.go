package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom creates a new room with the caller as owner.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom adds the caller to an existing room by code.
	CommandJoinRoom
	// CommandFindRandom matches the caller with a waiting opponent or enqueues.
	CommandFindRandom
	// CommandStartGame begins round 1 (owner only).
	CommandStartGame
	// CommandChooseWord locks in the drawer's word choice.
	CommandChooseWord
	// CommandGuess submits a guess; non-winning guesses double as chat.
	CommandGuess
	// CommandDraw relays an opaque stroke payload to the rest of the room.
	CommandDraw
	// CommandLeaveRoom removes the caller from their current room.
	CommandLeaveRoom
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Name     string // display name for create/join/find
	RoomCode string
	Settings Settings
	Word     string
	Text     string
	Stroke   json.RawMessage
}
