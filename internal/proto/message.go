package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeCreateRoom = "create_room"
	InboundTypeJoinRoom   = "join_room"
	InboundTypeFindRandom = "find_random"
	InboundTypeStartGame  = "start_game"
	InboundTypeChooseWord = "choose_word"
	InboundTypeGuess      = "guess"
	InboundTypeDraw       = "draw"
	InboundTypeLeave      = "leave"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventRoomCreated    = "room_created"
	EventRoomUpdate     = "room_update"
	EventWaiting        = "waiting"
	EventMatched        = "matched"
	EventRoundStarted   = "round_started"
	EventChooseWord     = "choose_word"
	EventDrawingStarted = "drawing_started"
	EventTimer          = "timer"
	EventCorrectGuess   = "correct_guess"
	EventChat           = "chat"
	EventRoundEnded     = "round_ended"
	EventGameOver       = "game_over"
	EventDraw           = "draw"
)

// SettingsData carries per-room game settings.
type SettingsData struct {
	MaxPlayers      int `json:"max_players"`
	Rounds          int `json:"rounds"`
	DrawTimeSeconds int `json:"draw_time_seconds"`
}

// CreateRoomData asks to create a room with the caller as owner.
type CreateRoomData struct {
	Name     string       `json:"name"`
	Settings SettingsData `json:"settings"`
}

// JoinRoomData asks to join an existing room by code.
type JoinRoomData struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

// FindRandomData asks to be matched with a random opponent.
type FindRandomData struct {
	Name     string       `json:"name"`
	Settings SettingsData `json:"settings"`
}

// ChooseWordData is the drawer's word choice.
type ChooseWordData struct {
	Word string `json:"word"`
}

// GuessData is a guess (or chat) message.
type GuessData struct {
	Text string `json:"text"`
}

// Draw payloads have no schema: the stroke data is opaque to the server and
// relayed byte-for-byte.

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// PlayerData is one scoreboard row.
type PlayerData struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// RoomStateData is the client-visible room snapshot. The secret word is
// never part of it.
type RoomStateData struct {
	Code     string       `json:"code"`
	Owner    string       `json:"owner"`
	Settings SettingsData `json:"settings"`
	Players  []PlayerData `json:"players"`
	Started  bool         `json:"started"`
	State    string       `json:"state"`
	Round    int          `json:"round,omitempty"`
	Drawer   string       `json:"drawer,omitempty"`
}

// WordChoicesData is sent only to the drawer.
type WordChoicesData struct {
	Words []string `json:"words"`
}

// RoundStartedData announces a new turn to the whole room.
type RoundStartedData struct {
	Round      int    `json:"round"`
	Drawer     string `json:"drawer"`
	DrawerName string `json:"drawer_name"`
	TimeBudget int    `json:"time_budget"`
}

// DrawingStartedData signals the word has been locked in.
type DrawingStartedData struct {
	Round      int `json:"round"`
	WordLength int `json:"word_length"`
}

// TimerData is a periodic countdown tick.
type TimerData struct {
	Seconds int `json:"seconds"`
}

// CorrectGuessData announces a winning guess.
type CorrectGuessData struct {
	Guesser     string       `json:"guesser"`
	GuesserName string       `json:"guesser_name"`
	Word        string       `json:"word"`
	Scoreboard  []PlayerData `json:"scoreboard"`
}

// ChatData is a non-winning guess delivered as chat.
type ChatData struct {
	From string `json:"from"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// RoundEndedData reveals the word at the end of a round.
type RoundEndedData struct {
	Round      int          `json:"round"`
	Word       string       `json:"word"`
	Scoreboard []PlayerData `json:"scoreboard"`
}

// GameOverData carries the final scoreboard, best score first.
type GameOverData struct {
	Scoreboard []PlayerData `json:"scoreboard"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
