// Command ws_smoke exercises the game protocol against a running server:
// it creates a room, starts a solo game, picks the first offered word, and
// prints every event it receives until the timeout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/drawparty-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	name := flag.String("name", "tester", "display name")
	timeout := flag.Duration("timeout", 10*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(msgType string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return err
		}
		return wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload})
	}

	if err := send(proto.InboundTypeCreateRoom, proto.CreateRoomData{
		Name:     *name,
		Settings: proto.SettingsData{MaxPlayers: 4, Rounds: 1, DrawTimeSeconds: 10},
	}); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	if err := send(proto.InboundTypeStartGame, struct{}{}); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	for {
		var outbound struct {
			Type  string          `json:"type"`
			Event string          `json:"event,omitempty"`
			Data  json.RawMessage `json:"data,omitempty"`
			Error *proto.Error    `json:"error,omitempty"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("%s %s %s\n", outbound.Type, outbound.Event, outbound.Data)

		if outbound.Type == proto.OutboundTypeError && outbound.Error != nil {
			return fmt.Errorf("server error: %s (%s)", outbound.Error.Msg, outbound.Error.Code)
		}
		if outbound.Event == proto.EventChooseWord {
			var choices proto.WordChoicesData
			if err := json.Unmarshal(outbound.Data, &choices); err != nil {
				return fmt.Errorf("unmarshal word choices: %w", err)
			}
			if err := send(proto.InboundTypeChooseWord, proto.ChooseWordData{Word: choices.Words[0]}); err != nil {
				return fmt.Errorf("choose word: %w", err)
			}
		}
		if outbound.Event == proto.EventGameOver {
			return nil
		}
	}
}
