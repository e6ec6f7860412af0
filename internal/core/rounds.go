package core

import "strings"

// Round lifecycle: LOBBY -> CHOOSING_WORD -> DRAWING -> ROUND_END ->
// (CHOOSING_WORD | GAME_OVER). Every transition runs on the hub loop;
// time-driven transitions re-enter through scheduleRoomTask and are
// generation-checked.

// beginChoosing opens a turn: samples candidate words, offers them privately
// to the drawer and announces the turn to everyone else.
func (h *Hub) beginChoosing(room *Room) {
	room.bumpGen()
	room.cancelTimer()
	room.State = StateChoosingWord
	room.CurrentWord = ""
	room.GuessedBy = make(map[string]struct{})
	room.WordChoices = h.bank.Pick(h.opts.WordChoices)

	drawerID := room.DrawerID()
	drawer := room.Players[drawerID]

	h.log.Debug().
		Str("room", room.Code).
		Int("round", room.Round).
		Str("drawer", drawerID).
		Msg("choosing word")

	h.broadcastToRoom(room, &Event{
		Kind:       EventRoundStarted,
		Room:       room.Code,
		Round:      room.Round,
		DrawerID:   drawerID,
		DrawerName: drawer.Name,
		TimeBudget: room.Settings.DrawTimeSeconds,
	})

	if _, connected := h.clients[drawerID]; !connected {
		// Bot drawer (or a connection that vanished between events): pick
		// the first candidate so the round still runs.
		h.lockWord(room, room.WordChoices[0])
		return
	}
	h.sendToConnection(drawerID, &Event{
		Kind:  EventChooseWord,
		Room:  room.Code,
		Words: room.WordChoices,
	})
}

// handleChooseWord honors only the current drawer's choice, and only one of
// the offered candidates.
func (h *Hub) handleChooseWord(c *Client, cmd *Command) {
	room := h.roomOf(c.ID)
	if room == nil || room.State != StateChoosingWord {
		return
	}
	if room.DrawerID() != c.ID {
		return
	}
	word := strings.ToLower(strings.TrimSpace(cmd.Word))
	offered := false
	for _, w := range room.WordChoices {
		if strings.ToLower(w) == word {
			offered = true
			break
		}
	}
	if !offered {
		return
	}
	h.lockWord(room, word)
}

// lockWord stores the normalized secret word and starts the draw countdown.
func (h *Hub) lockWord(room *Room, word string) {
	room.bumpGen()
	room.cancelTimer()
	room.CurrentWord = strings.ToLower(word)
	room.WordChoices = nil
	room.GuessedBy = make(map[string]struct{})
	room.State = StateDrawing

	h.log.Debug().
		Str("room", room.Code).
		Int("round", room.Round).
		Int("word_len", len(room.CurrentWord)).
		Msg("drawing started")

	h.broadcastToRoom(room, &Event{
		Kind:       EventDrawingStarted,
		Room:       room.Code,
		Round:      room.Round,
		WordLength: len(room.CurrentWord),
	})
	h.broadcastToRoom(room, &Event{
		Kind:    EventTimer,
		Room:    room.Code,
		Seconds: room.Settings.DrawTimeSeconds,
	})
	h.scheduleTick(room, room.Settings.DrawTimeSeconds-1)
}

// scheduleTick arms the next 1-second countdown broadcast.
func (h *Hub) scheduleTick(room *Room, remaining int) {
	h.scheduleRoomTask(room, h.opts.TickInterval, func(r *Room) {
		if r.State != StateDrawing {
			return
		}
		h.broadcastToRoom(r, &Event{Kind: EventTimer, Room: r.Code, Seconds: remaining})
		if remaining <= 0 {
			// Nobody guessed in time.
			h.endRound(r)
			return
		}
		h.scheduleTick(r, remaining-1)
	})
}

// handleGuess evaluates a guess during DRAWING. Correct guesses score once
// and end the round; everything else is room chat.
func (h *Hub) handleGuess(c *Client, cmd *Command) {
	room := h.roomOf(c.ID)
	if room == nil {
		return
	}
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return
	}

	if room.State == StateDrawing && strings.ToLower(text) == room.CurrentWord {
		if c.ID == room.DrawerID() {
			// The drawer knows the word; ignore rather than leak it as chat.
			return
		}
		if _, already := room.GuessedBy[c.ID]; already {
			return
		}
		room.GuessedBy[c.ID] = struct{}{}
		room.Players[c.ID].Score += h.opts.GuessAward

		h.log.Info().
			Str("room", room.Code).
			Str("client_id", c.ID).
			Str("word", room.CurrentWord).
			Msg("correct guess")

		h.broadcastToRoom(room, &Event{
			Kind:       EventCorrectGuess,
			Room:       room.Code,
			From:       c.ID,
			FromName:   c.Name,
			Word:       room.CurrentWord,
			Scoreboard: room.Scoreboard(),
		})
		// First correct guess ends the round.
		h.endRound(room)
		return
	}

	h.broadcastToRoom(room, &Event{
		Kind:     EventChat,
		Room:     room.Code,
		From:     c.ID,
		FromName: c.Name,
		Text:     text,
	})
}

// endRound reveals the word and schedules the next turn after a short pause.
func (h *Hub) endRound(room *Room) {
	room.bumpGen()
	room.cancelTimer()
	word := room.CurrentWord
	room.State = StateRoundEnd
	room.CurrentWord = ""

	h.broadcastToRoom(room, &Event{
		Kind:       EventRoundEnded,
		Room:       room.Code,
		Round:      room.Round,
		Word:       word,
		Scoreboard: room.Scoreboard(),
	})
	h.scheduleRoomTask(room, h.opts.RoundEndDelay, func(r *Room) {
		r.AdvanceDrawer()
		h.nextTurnOrGameOver(r)
	})
}

// abandonRound runs when the active drawer departs mid-round: rotation
// already points at the next player, so only the turn counter moves.
func (h *Hub) abandonRound(room *Room) {
	room.bumpGen()
	room.cancelTimer()
	room.CurrentWord = ""
	room.Round++
	h.nextTurnOrGameOver(room)
}

func (h *Hub) nextTurnOrGameOver(room *Room) {
	if room.Round > room.Settings.Rounds {
		h.gameOver(room)
		return
	}
	h.beginChoosing(room)
}

// gameOver is terminal; the room lingers in the store so the owner can start
// a fresh game, and is destroyed when the last player leaves.
func (h *Hub) gameOver(room *Room) {
	room.bumpGen()
	room.cancelTimer()
	room.State = StateGameOver
	room.CurrentWord = ""

	h.log.Info().Str("room", room.Code).Msg("game over")
	h.broadcastToRoom(room, &Event{
		Kind:       EventGameOver,
		Room:       room.Code,
		Scoreboard: room.Scoreboard(),
	})
}
