package core

import (
	"context"
	"testing"
	"time"
)

// testOptions shrink timing so full games run in milliseconds.
func testOptions() Options {
	return Options{
		GuessAward:    100,
		WordChoices:   2,
		RoundEndDelay: 20 * time.Millisecond,
		MatchTimeout:  0,
		TickInterval:  10 * time.Millisecond,
		CodeLength:    6,
	}
}

func startTestHub(t *testing.T, opts Options) *Hub {
	t.Helper()

	hub := NewHub(nil, opts, nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind, within time.Duration) {
	t.Helper()

	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}
}

// createRoom drives a client through room creation and returns the code.
func createRoom(t *testing.T, hub *Hub, c *Client, name string, settings Settings) string {
	t.Helper()

	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandCreateRoom, Name: name, Settings: settings}
	ev := mustEvent(t, c.Events, EventRoomCreated)
	if ev.Snapshot == nil || ev.Snapshot.Code == "" {
		t.Fatalf("room created without snapshot: %+v", ev)
	}
	return ev.Snapshot.Code
}

func joinRoom(t *testing.T, hub *Hub, c *Client, code, name string) {
	t.Helper()

	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandJoinRoom, RoomCode: code, Name: name}
	ev := mustEvent(t, c.Events, EventRoomUpdate)
	if ev.Snapshot == nil || ev.Snapshot.Code != code {
		t.Fatalf("unexpected join snapshot: %+v", ev)
	}
}

func score(entries []ScoreEntry, id string) int {
	for _, e := range entries {
		if e.ID == id {
			return e.Score
		}
	}
	return -1
}
