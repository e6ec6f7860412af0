package core

import (
	"context"
	"testing"
	"time"
)

func TestFindRandomMatchesOldestWaiter(t *testing.T) {
	hub := startTestHub(t, testOptions())

	alice := NewClient("a", "")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandFindRandom, Name: "alice", Settings: Settings{MaxPlayers: 2, Rounds: 1, DrawTimeSeconds: 30}}
	mustEvent(t, alice.Events, EventWaiting)

	bob := NewClient("b", "")
	hub.RegisterClient(bob)
	bob.Commands <- &Command{Kind: CommandFindRandom, Name: "bob"}

	matchedA := mustEvent(t, alice.Events, EventMatched)
	matchedB := mustEvent(t, bob.Events, EventMatched)
	if matchedA.Snapshot.Code != matchedB.Snapshot.Code {
		t.Fatalf("players matched into different rooms: %s vs %s", matchedA.Snapshot.Code, matchedB.Snapshot.Code)
	}
	// The earlier waiter owns the room and draws first.
	if matchedB.Snapshot.OwnerID != "a" {
		t.Fatalf("expected alice as owner, got %s", matchedB.Snapshot.OwnerID)
	}
	if len(matchedB.Snapshot.Players) != 2 {
		t.Fatalf("expected 2 players, got %+v", matchedB.Snapshot.Players)
	}
	if matchedB.Snapshot.Players[0].Name != "alice" {
		t.Fatalf("owner name lost in matching: %+v", matchedB.Snapshot.Players)
	}
}

func TestMatchTimeoutFillsWithBot(t *testing.T) {
	opts := testOptions()
	opts.MatchTimeout = 30 * time.Millisecond
	hub := startTestHub(t, opts)

	alice := NewClient("a", "")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandFindRandom, Name: "alice", Settings: Settings{MaxPlayers: 4, Rounds: 1, DrawTimeSeconds: 30}}
	mustEvent(t, alice.Events, EventWaiting)

	matched := mustEvent(t, alice.Events, EventMatched)
	if matched.Snapshot.OwnerID != "a" || len(matched.Snapshot.Players) != 2 {
		t.Fatalf("expected bot-filled room owned by alice, got %+v", matched.Snapshot)
	}
	if matched.Snapshot.Players[0].Name != "alice" {
		t.Fatalf("owner name lost on timeout upgrade: %+v", matched.Snapshot.Players)
	}

	// The room is playable: the game starts and alice draws round 1.
	alice.Commands <- &Command{Kind: CommandStartGame}
	started := mustEvent(t, alice.Events, EventRoundStarted)
	if started.DrawerID != "a" || started.Round != 1 {
		t.Fatalf("unexpected round start: %+v", started)
	}
	mustEvent(t, alice.Events, EventChooseWord)
}

func TestRepeatedFindRandomKeepsSingleTicket(t *testing.T) {
	hub := startTestHub(t, testOptions())

	alice := NewClient("a", "")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandFindRandom, Name: "alice"}
	mustEvent(t, alice.Events, EventWaiting)

	// Asking again replaces the first ticket instead of stacking a second
	// one with its own timeout.
	alice.Commands <- &Command{Kind: CommandFindRandom, Name: "alice"}
	mustEvent(t, alice.Events, EventWaiting)

	stats, ok := hub.CurrentStats(context.Background())
	if !ok || stats.Waiting != 1 {
		t.Fatalf("expected a single live ticket, got %+v ok=%v", stats, ok)
	}
}

func TestDisconnectedWaiterNeverMatched(t *testing.T) {
	hub := startTestHub(t, testOptions())

	alice := NewClient("a", "")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandFindRandom, Name: "alice"}
	mustEvent(t, alice.Events, EventWaiting)

	hub.UnregisterClient(alice)

	bob := NewClient("b", "")
	hub.RegisterClient(bob)
	bob.Commands <- &Command{Kind: CommandFindRandom, Name: "bob"}

	mustEvent(t, bob.Events, EventWaiting)
	mustNoEvent(t, bob.Events, EventMatched, 100*time.Millisecond)
}

func TestWaiterJoiningRoomInvalidatesTicket(t *testing.T) {
	hub := startTestHub(t, testOptions())

	alice := NewClient("a", "")
	hub.RegisterClient(alice)
	alice.Commands <- &Command{Kind: CommandFindRandom, Name: "alice"}
	mustEvent(t, alice.Events, EventWaiting)

	// Alice gives up on matchmaking and creates a private room instead.
	alice.Commands <- &Command{Kind: CommandCreateRoom, Name: "alice", Settings: Settings{MaxPlayers: 4, Rounds: 1, DrawTimeSeconds: 30}}
	mustEvent(t, alice.Events, EventRoomCreated)

	bob := NewClient("b", "")
	hub.RegisterClient(bob)
	bob.Commands <- &Command{Kind: CommandFindRandom, Name: "bob"}

	mustEvent(t, bob.Events, EventWaiting)
	mustNoEvent(t, bob.Events, EventMatched, 100*time.Millisecond)
}
