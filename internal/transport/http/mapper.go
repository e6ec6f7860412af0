package http

import (
	"encoding/json"

	"github.com/vovakirdan/drawparty-server/internal/core"
	"github.com/vovakirdan/drawparty-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeCreateRoom:
		var create proto.CreateRoomData
		if err := json.Unmarshal(inbound.Data, &create); err != nil {
			return nil, nil, err
		}
		if create.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandCreateRoom,
			Name:     create.Name,
			Settings: settingsFromData(create.Settings),
		}, nil, nil
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}, nil
		}
		if join.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			RoomCode: join.Room,
			Name:     join.Name,
		}, nil, nil
	case proto.InboundTypeFindRandom:
		var find proto.FindRandomData
		if err := json.Unmarshal(inbound.Data, &find); err != nil {
			return nil, nil, err
		}
		if find.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{
			Kind:     core.CommandFindRandom,
			Name:     find.Name,
			Settings: settingsFromData(find.Settings),
		}, nil, nil
	case proto.InboundTypeStartGame:
		return &core.Command{Kind: core.CommandStartGame}, nil, nil
	case proto.InboundTypeChooseWord:
		var choose proto.ChooseWordData
		if err := json.Unmarshal(inbound.Data, &choose); err != nil {
			return nil, nil, err
		}
		if choose.Word == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "word is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandChooseWord,
			Word: choose.Word,
		}, nil, nil
	case proto.InboundTypeGuess:
		var guess proto.GuessData
		if err := json.Unmarshal(inbound.Data, &guess); err != nil {
			return nil, nil, err
		}
		if guess.Text == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandGuess,
			Text: guess.Text,
		}, nil, nil
	case proto.InboundTypeDraw:
		// Stroke payload stays opaque: whatever the client sent is relayed.
		return &core.Command{
			Kind:   core.CommandDraw,
			Stroke: inbound.Data,
		}, nil, nil
	case proto.InboundTypeLeave:
		return &core.Command{Kind: core.CommandLeaveRoom}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func settingsFromData(data proto.SettingsData) core.Settings {
	return core.Settings{
		MaxPlayers:      data.MaxPlayers,
		Rounds:          data.Rounds,
		DrawTimeSeconds: data.DrawTimeSeconds,
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomCreated:
		return eventOutbound(proto.EventRoomCreated, snapshotData(event.Snapshot))
	case core.EventRoomUpdate:
		return eventOutbound(proto.EventRoomUpdate, snapshotData(event.Snapshot))
	case core.EventWaiting:
		return eventOutbound(proto.EventWaiting, nil)
	case core.EventMatched:
		return eventOutbound(proto.EventMatched, snapshotData(event.Snapshot))
	case core.EventRoundStarted:
		return eventOutbound(proto.EventRoundStarted, proto.RoundStartedData{
			Round:      event.Round,
			Drawer:     event.DrawerID,
			DrawerName: event.DrawerName,
			TimeBudget: event.TimeBudget,
		})
	case core.EventChooseWord:
		return eventOutbound(proto.EventChooseWord, proto.WordChoicesData{Words: event.Words})
	case core.EventDrawingStarted:
		return eventOutbound(proto.EventDrawingStarted, proto.DrawingStartedData{
			Round:      event.Round,
			WordLength: event.WordLength,
		})
	case core.EventTimer:
		return eventOutbound(proto.EventTimer, proto.TimerData{Seconds: event.Seconds})
	case core.EventCorrectGuess:
		return eventOutbound(proto.EventCorrectGuess, proto.CorrectGuessData{
			Guesser:     event.From,
			GuesserName: event.FromName,
			Word:        event.Word,
			Scoreboard:  scoreboardData(event.Scoreboard),
		})
	case core.EventChat:
		return eventOutbound(proto.EventChat, proto.ChatData{
			From: event.From,
			Name: event.FromName,
			Text: event.Text,
		})
	case core.EventRoundEnded:
		return eventOutbound(proto.EventRoundEnded, proto.RoundEndedData{
			Round:      event.Round,
			Word:       event.Word,
			Scoreboard: scoreboardData(event.Scoreboard),
		})
	case core.EventGameOver:
		return eventOutbound(proto.EventGameOver, proto.GameOverData{
			Scoreboard: scoreboardData(event.Scoreboard),
		})
	case core.EventDraw:
		return eventOutbound(proto.EventDraw, json.RawMessage(event.Stroke))
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func eventOutbound(name string, data any) proto.Outbound {
	return proto.Outbound{Type: proto.OutboundTypeEvent, Event: name, Data: data}
}

func snapshotData(snap *core.RoomSnapshot) proto.RoomStateData {
	if snap == nil {
		return proto.RoomStateData{}
	}
	return proto.RoomStateData{
		Code:  snap.Code,
		Owner: snap.OwnerID,
		Settings: proto.SettingsData{
			MaxPlayers:      snap.Settings.MaxPlayers,
			Rounds:          snap.Settings.Rounds,
			DrawTimeSeconds: snap.Settings.DrawTimeSeconds,
		},
		Players: scoreboardData(snap.Players),
		Started: snap.Started,
		State:   snap.State,
		Round:   snap.Round,
		Drawer:  snap.DrawerID,
	}
}

func scoreboardData(entries []core.ScoreEntry) []proto.PlayerData {
	players := make([]proto.PlayerData, 0, len(entries))
	for _, e := range entries {
		players = append(players, proto.PlayerData{ID: e.ID, Name: e.Name, Score: e.Score})
	}
	return players
}
