package server

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Store owns every room and the player -> room index. All mutations happen
// under s.mu, including round timer ticks, so per-room transitions are
// totally ordered by lock acquisition.
type Store struct {
	mu          sync.Mutex
	minPlayers  int
	rooms       map[string]*Room  // room code -> room
	playerRooms map[string]string // player id -> room code
	timers      map[string]*roomTimer
	timerSeq    int
}

func NewStore(minPlayers int) *Store {
	if minPlayers < 2 {
		minPlayers = 2
	}
	return &Store{
		minPlayers:  minPlayers,
		rooms:       make(map[string]*Room),
		playerRooms: make(map[string]string),
		timers:      make(map[string]*roomTimer),
	}
}

// CreateRoom never fails. The caller becomes the sole player and host. A
// caller already sitting in another room is removed from it first so the
// player index always maps each identity to at most one room.
func (s *Store) CreateRoom(playerID, name, avatar string, settings RoomSettings) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removePlayerLocked(playerID)

	room := &Room{
		ID:            uuid.NewString(),
		Code:          s.newRoomCodeLocked(),
		HostID:        playerID,
		Players:       []Player{{ID: playerID, Name: name, Avatar: avatar, IsHost: true}},
		Settings:      settings,
		Votes:         make(map[string]string),
		Status:        statusLobby,
		UsedQuestions: make(map[string]struct{}),
	}
	s.rooms[room.Code] = room
	s.playerRooms[playerID] = room.Code
	return room
}

// JoinRoom is idempotent: rejoining with the same identity returns the room
// unchanged. Lookup is case-insensitive.
func (s *Store) JoinRoom(code, playerID, name, avatar string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[normalizeCode(code)]
	if !ok {
		return nil, errRoomNotFound
	}
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			return room, nil
		}
	}

	s.removePlayerLocked(playerID)
	room.Players = append(room.Players, Player{ID: playerID, Name: name, Avatar: avatar})
	s.playerRooms[playerID] = room.Code
	return room, nil
}

func (s *Store) GetRoom(code string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[normalizeCode(code)]
	return room, ok
}

func (s *Store) RoomForPlayer(playerID string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.roomForPlayerLocked(playerID)
	return room, room != nil
}

// CodeForPlayer resolves just the current room code, read under the lock.
func (s *Store) CodeForPlayer(playerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room := s.roomForPlayerLocked(playerID); room != nil {
		return room.Code
	}
	return ""
}

// LeaveRoom removes the player wherever they are. It returns the updated
// room and the code the player was removed from; the room is nil and the
// deleted flag set when the departure emptied the room and destroyed it.
// The code is captured under the same lock as the removal, so it is exact
// even if the room's code is regenerated right after.
func (s *Store) LeaveRoom(playerID string) (*Room, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(playerID)
	if room == nil {
		return nil, "", false
	}
	code := room.Code
	if deleted := s.removePlayerLocked(playerID); deleted {
		return nil, code, true
	}
	return room, code, false
}

// KickPlayer behaves like a leave for the target. Rejected when the caller
// is not the host, the target is unknown, or the target is the host.
func (s *Store) KickPlayer(hostID, targetID string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(hostID)
	if room == nil {
		return nil, errRoomNotFound
	}
	if room.HostID != hostID {
		return nil, errNotHost
	}
	if targetID == hostID || findPlayer(room, targetID) == nil {
		return nil, errInvalidTarget
	}
	s.removePlayerLocked(targetID)
	return room, nil
}

func (s *Store) TransferHost(hostID, newHostID string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(hostID)
	if room == nil {
		return nil, errRoomNotFound
	}
	if room.HostID != hostID {
		return nil, errNotHost
	}
	target := findPlayer(room, newHostID)
	if target == nil {
		return nil, errInvalidTarget
	}
	if current := findPlayer(room, hostID); current != nil {
		current.IsHost = false
	}
	target.IsHost = true
	room.HostID = newHostID
	return room, nil
}

// RegenerateCode swaps the room onto a fresh code and rewrites the player
// index in the same critical section, so no stale association survives. The
// returned old code lets the gateway migrate channel membership. Only
// allowed from the lobby so in-flight round timers never hold a dead code.
func (s *Store) RegenerateCode(hostID string) (*Room, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(hostID)
	if room == nil {
		return nil, "", errRoomNotFound
	}
	if room.HostID != hostID {
		return nil, "", errNotHost
	}
	if room.Status != statusLobby {
		return nil, "", errWrongStatus
	}

	oldCode := room.Code
	delete(s.rooms, oldCode)
	room.Code = s.newRoomCodeLocked()
	s.rooms[room.Code] = room
	for _, player := range room.Players {
		s.playerRooms[player.ID] = room.Code
	}
	return room, oldCode, nil
}

func (s *Store) UpdateSettings(playerID string, settings RoomSettings) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(playerID)
	if room == nil {
		return nil, errRoomNotFound
	}
	if room.HostID != playerID {
		return nil, errNotHost
	}
	room.Settings = settings
	return room, nil
}

func (s *Store) roomForPlayerLocked(playerID string) *Room {
	code, ok := s.playerRooms[playerID]
	if !ok {
		return nil
	}
	return s.rooms[code]
}

// removePlayerLocked takes the player out of whichever room they occupy,
// scrubs their vote and any votes cast for them, reassigns the host flag to
// the next player in join order when needed, and destroys the room (and its
// timer) when it empties. Reports whether the room was destroyed.
func (s *Store) removePlayerLocked(playerID string) bool {
	room := s.roomForPlayerLocked(playerID)
	if room == nil {
		delete(s.playerRooms, playerID)
		return false
	}

	players := room.Players[:0]
	for _, player := range room.Players {
		if player.ID != playerID {
			players = append(players, player)
		}
	}
	room.Players = players
	delete(s.playerRooms, playerID)

	delete(room.Votes, playerID)
	for voterID, targetID := range room.Votes {
		if targetID == playerID {
			delete(room.Votes, voterID)
		}
	}

	if len(room.Players) == 0 {
		s.stopTimerLocked(room)
		delete(s.rooms, room.Code)
		return true
	}

	if room.HostID == playerID {
		room.Players[0].IsHost = true
		room.HostID = room.Players[0].ID
	}
	return false
}

func (s *Store) newRoomCodeLocked() string {
	for {
		code := newRoomCode()
		if _, taken := s.rooms[code]; !taken {
			return code
		}
	}
}

func findPlayer(room *Room, playerID string) *Player {
	for i := range room.Players {
		if room.Players[i].ID == playerID {
			return &room.Players[i]
		}
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
