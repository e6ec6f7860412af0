package core

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/drawparty-server/internal/utils"
	"github.com/vovakirdan/drawparty-server/internal/words"
)

// Options tune gameplay behavior shared by all rooms.
type Options struct {
	GuessAward    int
	WordChoices   int
	RoundEndDelay time.Duration
	// MatchTimeout upgrades a lone matchmaking waiter to a bot room.
	// Zero disables the upgrade.
	MatchTimeout  time.Duration
	AllowLateJoin bool
	TickInterval  time.Duration
	CodeLength    int
}

// DefaultOptions returns production gameplay defaults.
func DefaultOptions() Options {
	return Options{
		GuessAward:    100,
		WordChoices:   2,
		RoundEndDelay: 3 * time.Second,
		MatchTimeout:  10 * time.Second,
		TickInterval:  time.Second,
		CodeLength:    6,
	}
}

func (o Options) withDefaults() Options {
	if o.GuessAward <= 0 {
		o.GuessAward = 100
	}
	if o.WordChoices <= 0 {
		o.WordChoices = 2
	}
	if o.RoundEndDelay <= 0 {
		o.RoundEndDelay = 3 * time.Second
	}
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.CodeLength <= 0 {
		o.CodeLength = 6
	}
	return o
}

type inboundCommand struct {
	client *Client
	cmd    *Command
}

// Hub owns all room and connection state. A single goroutine (Run) processes
// every mutation, so handlers are atomic with respect to each other; timer
// callbacks re-enter through the tasks channel and re-validate room state
// before acting.
type Hub struct {
	opts Options
	bank *words.Bank
	log  zerolog.Logger

	register   chan *Client
	unregister chan *Client
	inbox      chan inboundCommand
	tasks      chan func()
	done       chan struct{}

	clients  map[string]*Client // connection registry: id -> client
	memberOf map[string]string  // connection id -> room code
	rooms    map[string]*Room   // room store: code -> room
	queue    []*ticket          // matchmaking queue, FIFO
}

// NewHub constructs a hub. A nil bank uses the default word list; a nil
// logger disables logging.
func NewHub(bank *words.Bank, opts Options, logger *zerolog.Logger) *Hub {
	if bank == nil {
		bank = words.NewBank(nil)
	}
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Hub{
		opts:       opts.withDefaults(),
		bank:       bank,
		log:        lg,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbox:      make(chan inboundCommand, 64),
		tasks:      make(chan func(), 64),
		done:       make(chan struct{}),
		clients:    make(map[string]*Client),
		memberOf:   make(map[string]string),
		rooms:      make(map[string]*Room),
	}
}

// Run processes events until the context is cancelled. It must be called
// exactly once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c.ID] = c
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case in := <-h.inbox:
			h.dispatch(in.client, in.cmd)
		case fn := <-h.tasks:
			fn()
		}
	}
}

// RegisterClient adds a connection to the registry and starts pumping its
// commands into the hub loop. The pump exits when Commands is closed.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		return
	}
	go func() {
		for cmd := range c.Commands {
			select {
			case h.inbox <- inboundCommand{client: c, cmd: cmd}:
			case <-h.done:
				return
			}
		}
	}()
}

// UnregisterClient removes a connection, leaving its room and invalidating
// any matchmaking ticket. Safe to call after the hub has stopped.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// post schedules fn onto the hub loop.
func (h *Hub) post(fn func()) {
	select {
	case h.tasks <- fn:
	case <-h.done:
	}
}

// scheduleRoomTask arms the room timer to run fn on the hub loop after d,
// unless the room is gone or its generation has moved on by then.
func (h *Hub) scheduleRoomTask(room *Room, d time.Duration, fn func(room *Room)) {
	code := room.Code
	gen := room.gen
	room.timer = time.AfterFunc(d, func() {
		h.post(func() {
			r, ok := h.rooms[code]
			if !ok || r.gen != gen {
				return // stale firing: room destroyed or state advanced
			}
			fn(r)
		})
	})
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	// A command pumped before the client's disconnect may arrive after
	// the disconnect cleanup ran; it must not resurrect the client.
	if _, connected := h.clients[c.ID]; !connected {
		return
	}
	switch cmd.Kind {
	case CommandCreateRoom:
		h.handleCreateRoom(c, cmd)
	case CommandJoinRoom:
		h.handleJoinRoom(c, cmd)
	case CommandFindRandom:
		h.handleFindRandom(c, cmd)
	case CommandStartGame:
		h.handleStartGame(c)
	case CommandChooseWord:
		h.handleChooseWord(c, cmd)
	case CommandGuess:
		h.handleGuess(c, cmd)
	case CommandDraw:
		h.handleDraw(c, cmd)
	case CommandLeaveRoom:
		h.leaveRoom(c.ID)
	}
}

func (h *Hub) handleCreateRoom(c *Client, cmd *Command) {
	if _, inRoom := h.memberOf[c.ID]; inRoom {
		h.sendError(c.ID, gameError(ErrCodeInvalidState, "already in a room"))
		return
	}
	h.dropTicket(c.ID)
	if cmd.Name != "" {
		c.Name = cmd.Name
	}

	room := newRoom(h.newRoomCode(), c.ID, c.Name, cmd.Settings)
	h.rooms[room.Code] = room
	h.memberOf[c.ID] = room.Code

	h.log.Info().Str("room", room.Code).Str("client_id", c.ID).Msg("room created")
	h.sendToConnection(c.ID, &Event{Kind: EventRoomCreated, Room: room.Code, Snapshot: room.Snapshot()})
	h.broadcastToRoom(room, &Event{Kind: EventRoomUpdate, Room: room.Code, Snapshot: room.Snapshot()})
}

func (h *Hub) handleJoinRoom(c *Client, cmd *Command) {
	if _, inRoom := h.memberOf[c.ID]; inRoom {
		h.sendError(c.ID, gameError(ErrCodeInvalidState, "already in a room"))
		return
	}
	code := strings.ToUpper(cmd.RoomCode)
	room, ok := h.rooms[code]
	if !ok {
		h.sendError(c.ID, gameError(ErrCodeRoomNotFound, "room not found"))
		return
	}
	if cmd.Name != "" {
		c.Name = cmd.Name
	}
	if gerr := room.AddPlayer(c.ID, c.Name, h.opts.AllowLateJoin); gerr != nil {
		h.sendError(c.ID, gerr)
		return
	}
	h.dropTicket(c.ID)
	h.memberOf[c.ID] = room.Code

	h.log.Info().Str("room", room.Code).Str("client_id", c.ID).Msg("player joined")
	h.broadcastToRoom(room, &Event{Kind: EventRoomUpdate, Room: room.Code, Snapshot: room.Snapshot()})
}

func (h *Hub) handleStartGame(c *Client) {
	room := h.roomOf(c.ID)
	if room == nil {
		return
	}
	// Fail quiet: a non-owner or mid-game start leaves state unchanged.
	if room.OwnerID != c.ID || room.Started() {
		return
	}
	room.ResetGame()
	h.log.Info().Str("room", room.Code).Int("players", len(room.TurnOrder)).Msg("game started")
	h.beginChoosing(room)
}

func (h *Hub) handleDraw(c *Client, cmd *Command) {
	room := h.roomOf(c.ID)
	if room == nil {
		return
	}
	// Opaque pass-through: payload is relayed verbatim, never interpreted.
	h.relayToRoomExceptSender(room, c.ID, &Event{Kind: EventDraw, Room: room.Code, Stroke: cmd.Stroke})
}

func (h *Hub) handleDisconnect(c *Client) {
	h.dropTicket(c.ID)
	h.leaveRoom(c.ID)
	delete(h.clients, c.ID)
}

// leaveRoom removes a connection from its room, destroying the room when it
// empties and abandoning the round when the drawer departs.
func (h *Hub) leaveRoom(id string) {
	code, ok := h.memberOf[id]
	if !ok {
		return
	}
	delete(h.memberOf, id)
	room, ok := h.rooms[code]
	if !ok {
		return
	}

	wasDrawer := room.RemovePlayer(id)
	if room.humanCount() == 0 {
		h.destroyRoom(room)
		return
	}
	if room.OwnerID == id {
		room.OwnerID = room.TurnOrder[0]
	}

	h.log.Info().Str("room", room.Code).Str("client_id", id).Msg("player left")
	h.broadcastToRoom(room, &Event{Kind: EventRoomUpdate, Room: room.Code, Snapshot: room.Snapshot()})

	if wasDrawer && room.Started() {
		// The active drawer is gone: abandon the round and move on rather
		// than leaving rotation pointing at a departed connection.
		h.abandonRound(room)
	}
}

func (h *Hub) destroyRoom(room *Room) {
	room.bumpGen()
	room.cancelTimer()
	delete(h.rooms, room.Code)
	// Detach any remaining bot entries' bookkeeping.
	for _, id := range room.TurnOrder {
		delete(h.memberOf, id)
	}
	h.log.Info().Str("room", room.Code).Msg("room destroyed")
}

func (h *Hub) roomOf(id string) *Room {
	code, ok := h.memberOf[id]
	if !ok {
		return nil
	}
	return h.rooms[code]
}

func (h *Hub) newRoomCode() string {
	for {
		code := utils.NewRoomCode(h.opts.CodeLength)
		if _, exists := h.rooms[code]; !exists {
			return code
		}
	}
}

// broadcastToRoom fans an event out to every connected member.
func (h *Hub) broadcastToRoom(room *Room, event *Event) {
	for _, id := range room.TurnOrder {
		h.sendToConnection(id, event)
	}
}

// relayToRoomExceptSender fans an event out to everyone but the sender.
func (h *Hub) relayToRoomExceptSender(room *Room, senderID string, event *Event) {
	for _, id := range room.TurnOrder {
		if id == senderID {
			continue
		}
		h.sendToConnection(id, event)
	}
}

// sendToConnection targets a single connection. Bots and vanished
// connections are skipped; slow consumers drop events.
func (h *Hub) sendToConnection(id string, event *Event) {
	c, ok := h.clients[id]
	if !ok {
		return
	}
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}

func (h *Hub) sendError(id string, gerr *GameError) {
	h.sendToConnection(id, &Event{Kind: EventError, Error: gerr})
}

// RoomInfo is the hub's answer to an out-of-loop room query.
type RoomInfo struct {
	Code        string
	PlayerCount int
	MaxPlayers  int
	Started     bool
	State       string
}

// LookupRoom answers a room query from outside the hub loop. It is safe for
// concurrent use; the read executes on the loop itself.
func (h *Hub) LookupRoom(ctx context.Context, code string) (RoomInfo, bool) {
	type answer struct {
		info RoomInfo
		ok   bool
	}
	reply := make(chan answer, 1)
	fn := func() {
		room, ok := h.rooms[strings.ToUpper(code)]
		if !ok {
			reply <- answer{}
			return
		}
		reply <- answer{
			info: RoomInfo{
				Code:        room.Code,
				PlayerCount: len(room.TurnOrder),
				MaxPlayers:  room.Settings.MaxPlayers,
				Started:     room.Started(),
				State:       room.State.String(),
			},
			ok: true,
		}
	}
	select {
	case h.tasks <- fn:
	case <-ctx.Done():
		return RoomInfo{}, false
	case <-h.done:
		return RoomInfo{}, false
	}
	select {
	case a := <-reply:
		return a.info, a.ok
	case <-ctx.Done():
		return RoomInfo{}, false
	}
}

// Stats summarize hub occupancy.
type Stats struct {
	Rooms   int
	Clients int
	Waiting int
}

// CurrentStats reports occupancy from outside the hub loop.
func (h *Hub) CurrentStats(ctx context.Context) (Stats, bool) {
	reply := make(chan Stats, 1)
	fn := func() {
		waiting := 0
		for _, t := range h.queue {
			if !t.consumed {
				waiting++
			}
		}
		reply <- Stats{Rooms: len(h.rooms), Clients: len(h.clients), Waiting: waiting}
	}
	select {
	case h.tasks <- fn:
	case <-ctx.Done():
		return Stats{}, false
	case <-h.done:
		return Stats{}, false
	}
	select {
	case s := <-reply:
		return s, true
	case <-ctx.Done():
		return Stats{}, false
	}
}
