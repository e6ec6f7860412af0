package core

import (
	"time"
)

// ticket is a matchmaking queue entry. Consumed at most once: matching and
// timeout both check the flag and the waiter's liveness on the hub loop.
type ticket struct {
	connID   string
	name     string
	settings Settings
	enqueued time.Time
	consumed bool
}

const botName = "Sketch Bot"

// handleFindRandom matches the caller with the oldest live waiter, or
// enqueues them. FIFO: the earliest waiter is matched first.
func (h *Hub) handleFindRandom(c *Client, cmd *Command) {
	if _, inRoom := h.memberOf[c.ID]; inRoom {
		h.sendError(c.ID, gameError(ErrCodeInvalidState, "already in a room"))
		return
	}
	if cmd.Name != "" {
		c.Name = cmd.Name
	}
	// A repeated find_random replaces the caller's earlier ticket.
	h.dropTicket(c.ID)

	if waiter := h.takeWaiter(c.ID); waiter != nil {
		room := newRoom(h.newRoomCode(), waiter.connID, waiter.name, waiter.settings)
		if gerr := room.AddPlayer(c.ID, c.Name, false); gerr != nil {
			// Cannot happen with default settings; fall back to waiting.
			h.enqueueTicket(c, cmd.Settings)
			return
		}
		h.rooms[room.Code] = room
		h.memberOf[waiter.connID] = room.Code
		h.memberOf[c.ID] = room.Code

		h.log.Info().
			Str("room", room.Code).
			Str("owner", waiter.connID).
			Str("joiner", c.ID).
			Msg("random match")
		h.broadcastToRoom(room, &Event{Kind: EventMatched, Room: room.Code, Snapshot: room.Snapshot()})
		h.broadcastToRoom(room, &Event{Kind: EventRoomUpdate, Room: room.Code, Snapshot: room.Snapshot()})
		return
	}

	h.enqueueTicket(c, cmd.Settings)
}

func (h *Hub) enqueueTicket(c *Client, settings Settings) {
	t := &ticket{
		connID:   c.ID,
		name:     c.Name,
		settings: settings,
		enqueued: time.Now(),
	}
	h.queue = append(h.queue, t)
	h.sendToConnection(c.ID, &Event{Kind: EventWaiting})
	h.log.Debug().Str("client_id", c.ID).Msg("matchmaking: enqueued")

	if h.opts.MatchTimeout > 0 {
		timeout := h.opts.MatchTimeout
		time.AfterFunc(timeout, func() {
			h.post(func() { h.expireTicket(t) })
		})
	}
}

// takeWaiter pops the oldest still-valid ticket, skipping waiters that have
// disconnected or found a room since enqueueing. The requester's own ticket
// is never matched against itself.
func (h *Hub) takeWaiter(requesterID string) *ticket {
	for len(h.queue) > 0 {
		t := h.queue[0]
		h.queue = h.queue[1:]
		if t.consumed || t.connID == requesterID {
			continue
		}
		t.consumed = true
		if _, connected := h.clients[t.connID]; !connected {
			continue
		}
		if _, inRoom := h.memberOf[t.connID]; inRoom {
			continue
		}
		return t
	}
	return nil
}

// expireTicket upgrades a waiter who never found a partner into a room with
// a filler bot opponent, so nobody waits forever.
func (h *Hub) expireTicket(t *ticket) {
	if t.consumed {
		return
	}
	t.consumed = true
	for i, queued := range h.queue {
		if queued == t {
			h.queue = append(h.queue[:i], h.queue[i+1:]...)
			break
		}
	}
	if _, connected := h.clients[t.connID]; !connected {
		return
	}
	if _, inRoom := h.memberOf[t.connID]; inRoom {
		return
	}

	room := newRoom(h.newRoomCode(), t.connID, t.name, t.settings)
	room.addPlayer("bot:"+room.Code, botName, true)
	h.rooms[room.Code] = room
	h.memberOf[t.connID] = room.Code

	h.log.Info().Str("room", room.Code).Str("owner", t.connID).Msg("matchmaking: timeout, filled with bot")
	h.broadcastToRoom(room, &Event{Kind: EventMatched, Room: room.Code, Snapshot: room.Snapshot()})
	h.broadcastToRoom(room, &Event{Kind: EventRoomUpdate, Room: room.Code, Snapshot: room.Snapshot()})
}

// dropTicket invalidates any queued ticket for a connection that joined a
// room or disconnected.
func (h *Hub) dropTicket(connID string) {
	for i, t := range h.queue {
		if t.connID == connID && !t.consumed {
			t.consumed = true
			h.queue = append(h.queue[:i], h.queue[i+1:]...)
			return
		}
	}
}
