package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/vovakirdan/drawparty-server/internal/proto"
)

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketGameFlow(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connA := dialWS(t, ctx, ts)
	connB := dialWS(t, ctx, ts)

	// Alice creates a room.
	sendInbound(t, ctx, connA, proto.InboundTypeCreateRoom, proto.CreateRoomData{
		Name:     "alice",
		Settings: proto.SettingsData{MaxPlayers: 4, Rounds: 1, DrawTimeSeconds: 30},
	})
	var created proto.RoomStateData
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventRoomCreated), &created); err != nil {
		t.Fatalf("unmarshal room_created: %v", err)
	}
	if created.Code == "" || created.Owner == "" {
		t.Fatalf("incomplete room snapshot: %+v", created)
	}

	// Bob joins by code and both see the updated room.
	sendInbound(t, ctx, connB, proto.InboundTypeJoinRoom, proto.JoinRoomData{Room: created.Code, Name: "bob"})
	var room proto.RoomStateData
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventRoomUpdate), &room); err != nil {
		t.Fatalf("unmarshal room_update: %v", err)
	}
	if len(room.Players) != 2 {
		t.Fatalf("expected 2 players, got %+v", room.Players)
	}

	// Owner starts; alice draws first and gets a private word offer.
	sendInbound(t, ctx, connA, proto.InboundTypeStartGame, struct{}{})

	var roundStarted proto.RoundStartedData
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventRoundStarted), &roundStarted); err != nil {
		t.Fatalf("unmarshal round_started: %v", err)
	}
	if roundStarted.Round != 1 || roundStarted.Drawer != created.Owner {
		t.Fatalf("unexpected round start: %+v", roundStarted)
	}

	var choices proto.WordChoicesData
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventChooseWord), &choices); err != nil {
		t.Fatalf("unmarshal choose_word: %v", err)
	}
	if len(choices.Words) != 2 {
		t.Fatalf("expected 2 word choices, got %v", choices.Words)
	}

	sendInbound(t, ctx, connA, proto.InboundTypeChooseWord, proto.ChooseWordData{Word: choices.Words[0]})

	var drawing proto.DrawingStartedData
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventDrawingStarted), &drawing); err != nil {
		t.Fatalf("unmarshal drawing_started: %v", err)
	}
	if drawing.WordLength != len(choices.Words[0]) {
		t.Fatalf("unexpected word length: %+v", drawing)
	}

	// A stroke from alice reaches bob untouched.
	stroke := json.RawMessage(`{"x":1,"y":2}`)
	sendInbound(t, ctx, connA, proto.InboundTypeDraw, stroke)
	relayed := readEvent(t, ctx, connB, proto.EventDraw)
	if string(relayed) != string(stroke) {
		t.Fatalf("stroke altered in relay: %s", relayed)
	}

	// Bob guesses the word and wins the round; single round means game over.
	sendInbound(t, ctx, connB, proto.InboundTypeGuess, proto.GuessData{Text: choices.Words[0]})

	var correct proto.CorrectGuessData
	if err := json.Unmarshal(readEvent(t, ctx, connA, proto.EventCorrectGuess), &correct); err != nil {
		t.Fatalf("unmarshal correct_guess: %v", err)
	}
	if correct.GuesserName != "bob" {
		t.Fatalf("unexpected guesser: %+v", correct)
	}

	var over proto.GameOverData
	if err := json.Unmarshal(readEvent(t, ctx, connB, proto.EventGameOver), &over); err != nil {
		t.Fatalf("unmarshal game_over: %v", err)
	}
	if len(over.Scoreboard) != 2 || over.Scoreboard[0].Score != 100 {
		t.Fatalf("unexpected final scoreboard: %+v", over.Scoreboard)
	}
}

func TestWebSocketJoinUnknownRoom(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	sendInbound(t, ctx, conn, proto.InboundTypeJoinRoom, proto.JoinRoomData{Room: "NOPE42", Name: "bob"})

	protoErr := readError(t, ctx, conn)
	if protoErr.Code != "room_not_found" {
		t.Fatalf("expected room_not_found, got %+v", protoErr)
	}
}

func TestWebSocketRejectsMalformedInbound(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts)
	sendInbound(t, ctx, conn, "bogus_type", struct{}{})

	protoErr := readError(t, ctx, conn)
	if protoErr.Code != "invalid_message" {
		t.Fatalf("expected invalid_message, got %+v", protoErr)
	}

	// Missing required fields are rejected before reaching the core.
	sendInbound(t, ctx, conn, proto.InboundTypeCreateRoom, proto.CreateRoomData{})
	protoErr = readError(t, ctx, conn)
	if protoErr.Code != "bad_request" {
		t.Fatalf("expected bad_request, got %+v", protoErr)
	}
}
