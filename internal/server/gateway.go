package server

import (
	"errors"
	"fmt"
	"log"
)

// handleClientMessage maps each inbound event to exactly one store call and
// broadcasts the outcome to the room's channel. Rejections go back to the
// requesting connection only.
func (s *Server) handleClientMessage(client *wsClient, msg clientMessage) {
	switch msg.Type {
	case "room:create":
		s.createRoom(client, msg)
	case "room:join":
		s.joinRoom(client, msg)
	case "room:updateSettings":
		s.updateSettings(client, msg)
	case "room:leave":
		s.leaveCurrentRoom(client)
	case "room:kickPlayer":
		s.kickPlayer(client, msg)
	case "room:transferHost":
		s.transferHost(client, msg)
	case "room:regenerateCode":
		s.regenerateCode(client)
	case "game:start":
		s.startGame(client)
	case "game:vote":
		s.vote(client, msg)
	case "game:nextQuestion":
		s.nextQuestion(client)
	case "game:backToLobby":
		s.backToLobby(client)
	case "custom:addQuestion":
		s.addCustomQuestion(client, msg)
	case "custom:removeQuestion":
		s.removeCustomQuestion(client, msg)
	case "custom:startGame":
		s.startGameWithCustomQuestions(client)
	default:
		client.send(serverMessage{Type: "room:error", Error: "unknown message type"})
	}
}

func (s *Server) createRoom(client *wsClient, msg clientMessage) {
	name, err := validateName(msg.Name)
	if err != nil {
		s.reject(client, err)
		return
	}
	avatar, err := validateAvatar(msg.Avatar)
	if err != nil {
		s.reject(client, err)
		return
	}
	prevCode := s.store.CodeForPlayer(client.id)
	room := s.store.CreateRoom(client.id, name, avatar, s.defaultSettings())
	s.detachFromPrevious(client, prevCode, room.Code)
	s.hub.Join(room.Code, client)
	log.Printf("room created room_id=%s code=%s host=%s", room.ID, room.Code, client.id)
	client.send(serverMessage{Type: "room:joined", Room: s.store.Snapshot(room)})
}

func (s *Server) joinRoom(client *wsClient, msg clientMessage) {
	name, err := validateName(msg.Name)
	if err != nil {
		s.reject(client, err)
		return
	}
	avatar, err := validateAvatar(msg.Avatar)
	if err != nil {
		s.reject(client, err)
		return
	}
	prevCode := s.store.CodeForPlayer(client.id)
	room, err := s.store.JoinRoom(msg.Code, client.id, name, avatar)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.detachFromPrevious(client, prevCode, room.Code)
	s.hub.Join(room.Code, client)
	log.Printf("player joined room code=%s player_id=%s", room.Code, client.id)
	client.send(serverMessage{Type: "room:joined", Room: s.store.Snapshot(room)})
	s.broadcastRoom(room)
}

// detachFromPrevious finishes an implicit departure: the store has already
// removed the player from their old room, but the old channel subscription
// and the old room's members still need the same treatment as an explicit
// leave.
func (s *Server) detachFromPrevious(client *wsClient, prevCode, newCode string) {
	if prevCode == "" || prevCode == newCode {
		return
	}
	s.hub.Leave(prevCode, client.id)
	old, ok := s.store.GetRoom(prevCode)
	if !ok {
		log.Printf("room destroyed code=%s reason=empty", prevCode)
		return
	}
	s.broadcastRoom(old)
	s.finalizeIfComplete(prevCode)
}

func (s *Server) updateSettings(client *wsClient, msg clientMessage) {
	if msg.Settings == nil {
		client.send(serverMessage{Type: "room:error", Error: "settings are required"})
		return
	}
	settings, err := validateSettings(*msg.Settings)
	if err != nil {
		s.reject(client, err)
		return
	}
	room, err := s.store.UpdateSettings(client.id, settings)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.broadcastRoom(room)
}

// leaveCurrentRoom serves both the explicit leave event and connection
// drops. A departure mid-round can complete the vote set, so the
// everyone-voted check runs here too.
func (s *Server) leaveCurrentRoom(client *wsClient) {
	room, code, deleted := s.store.LeaveRoom(client.id)
	if code == "" {
		return
	}
	s.hub.Leave(code, client.id)
	if deleted {
		log.Printf("room destroyed code=%s reason=empty", code)
		return
	}
	s.broadcastRoom(room)
	s.finalizeIfComplete(code)
}

func (s *Server) kickPlayer(client *wsClient, msg clientMessage) {
	room, err := s.store.KickPlayer(client.id, msg.TargetID)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.hub.SendTo(msg.TargetID, serverMessage{Type: "room:kicked"})
	s.hub.Leave(room.Code, msg.TargetID)
	log.Printf("player kicked code=%s player_id=%s by=%s", room.Code, msg.TargetID, client.id)
	s.broadcastRoom(room)
	s.finalizeIfComplete(room.Code)
}

func (s *Server) transferHost(client *wsClient, msg clientMessage) {
	room, err := s.store.TransferHost(client.id, msg.TargetID)
	if err != nil {
		s.reject(client, err)
		return
	}
	log.Printf("host transferred code=%s from=%s to=%s", room.Code, client.id, msg.TargetID)
	s.broadcastRoom(room)
}

func (s *Server) regenerateCode(client *wsClient) {
	room, oldCode, err := s.store.RegenerateCode(client.id)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.hub.MoveRoom(oldCode, room.Code)
	log.Printf("room code regenerated old=%s new=%s", oldCode, room.Code)
	s.broadcastRoom(room)
}

func (s *Server) startGame(client *wsClient) {
	room, question, err := s.store.StartGame(client.id)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.broadcastRoom(room)
	if question != nil {
		log.Printf("game started code=%s", room.Code)
		s.hub.Broadcast(room.Code, serverMessage{Type: "game:question", Question: question})
		s.startRoundTimer(room.Code)
		return
	}
	log.Printf("collecting custom questions code=%s", room.Code)
}

func (s *Server) vote(client *wsClient, msg clientMessage) {
	room, err := s.store.Vote(client.id, msg.TargetID)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.broadcastRoom(room)
	s.finalizeIfComplete(room.Code)
}

func (s *Server) nextQuestion(client *wsClient) {
	room, question, finished, err := s.store.NextQuestion(client.id)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.broadcastRoom(room)
	if finished {
		results := s.store.ResultsSnapshot(room)
		log.Printf("game finished code=%s rounds=%d", room.Code, len(results))
		s.hub.Broadcast(room.Code, serverMessage{Type: "game:finished", Results: results})
		return
	}
	s.hub.Broadcast(room.Code, serverMessage{Type: "game:question", Question: question})
	s.startRoundTimer(room.Code)
}

func (s *Server) backToLobby(client *wsClient) {
	room, err := s.store.ResetRoom(client.id)
	if err != nil {
		s.reject(client, err)
		return
	}
	log.Printf("room reset code=%s", room.Code)
	s.broadcastRoom(room)
}

func (s *Server) addCustomQuestion(client *wsClient, msg clientMessage) {
	adjective, err := validateAdjective(msg.Adjective)
	if err != nil {
		s.reject(client, err)
		return
	}
	room, questions, err := s.store.AddCustomQuestion(client.id, adjective)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.broadcastRoom(room)
	s.hub.Broadcast(room.Code, serverMessage{Type: "custom:questionsUpdated", CustomQuestions: questions})
}

func (s *Server) removeCustomQuestion(client *wsClient, msg clientMessage) {
	room, questions, err := s.store.RemoveCustomQuestion(client.id, msg.Index)
	if err != nil {
		s.reject(client, err)
		return
	}
	s.broadcastRoom(room)
	s.hub.Broadcast(room.Code, serverMessage{Type: "custom:questionsUpdated", CustomQuestions: questions})
}

func (s *Server) startGameWithCustomQuestions(client *wsClient) {
	room, question, err := s.store.StartGameWithCustomQuestions(client.id)
	if err != nil {
		s.reject(client, err)
		return
	}
	log.Printf("custom game started code=%s", room.Code)
	s.broadcastRoom(room)
	s.hub.Broadcast(room.Code, serverMessage{Type: "game:question", Question: question})
	s.startRoundTimer(room.Code)
}

// startRoundTimer wires the per-room countdown to the broadcast channel.
// Expiry finalizes the round with whatever votes are in.
func (s *Server) startRoundTimer(code string) {
	s.store.StartRoundTimer(code,
		func() {
			s.hub.Broadcast(code, serverMessage{Type: "game:timeExpired"})
			s.finishRound(code)
		},
		func(remaining int) {
			value := remaining
			s.hub.Broadcast(code, serverMessage{Type: "game:timerUpdate", TimeRemaining: &value})
		},
	)
}

func (s *Server) finalizeIfComplete(code string) {
	if !s.store.RoundComplete(code) {
		return
	}
	s.finishRound(code)
}

// finishRound is called from both the everyone-voted path and the timer
// expiry path; CalculateResults guarantees only one of them lands.
func (s *Server) finishRound(code string) {
	room, result, err := s.store.CalculateResults(code)
	if err != nil {
		return
	}
	log.Printf("round finished code=%s question=%q", room.Code, result.Question.Adjective)
	s.hub.Broadcast(room.Code, serverMessage{Type: "game:results", Result: resultPayload(*result)})
	s.broadcastRoom(room)
}

func (s *Server) broadcastRoom(room *Room) {
	s.hub.Broadcast(room.Code, serverMessage{Type: "room:updated", Room: s.store.Snapshot(room)})
}

func (s *Server) reject(client *wsClient, err error) {
	client.send(serverMessage{Type: "room:error", Error: s.userMessage(err)})
}

func (s *Server) userMessage(err error) string {
	switch {
	case errors.Is(err, errRoomNotFound):
		return "Room not found"
	case errors.Is(err, errNotHost):
		return "Only the host can do that"
	case errors.Is(err, errWrongStatus):
		return "That action is not available right now"
	case errors.Is(err, errInvalidTarget):
		return "That player is not in the room"
	case errors.Is(err, errNotEnoughPlayers):
		return fmt.Sprintf("At least %d players are required", s.cfg.MinPlayers)
	case errors.Is(err, errQuestionLimitReached):
		return "The question list is already full"
	case errors.Is(err, errNotEnoughQuestions):
		return "Not enough questions to start the game"
	case errors.Is(err, errIndexOutOfRange):
		return "No such question"
	case errors.Is(err, errNoActiveQuestion):
		return "No active question"
	default:
		return err.Error()
	}
}
