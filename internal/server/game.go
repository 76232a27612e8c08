package server

import "sort"

// StartGame moves a lobby into play. When the selected categories include
// the custom marker the room collects player-submitted questions instead,
// and no question is produced yet.
func (s *Store) StartGame(hostID string) (*Room, *Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(hostID)
	if room == nil {
		return nil, nil, errRoomNotFound
	}
	if room.HostID != hostID {
		return nil, nil, errNotHost
	}
	if len(room.Players) < s.minPlayers {
		return nil, nil, errNotEnoughPlayers
	}

	if containsCategory(room.Settings.Categories, categoryCustom) {
		room.Status = statusCustomQuestions
		room.CustomQuestions = []CustomQuestion{}
		return room, nil, nil
	}

	sources, resetNeeded := sampleQuestions(room.Settings.Categories, room.Settings.NumberOfQuestions, room.UsedQuestions)
	if resetNeeded {
		room.UsedQuestions = make(map[string]struct{})
		sources, _ = sampleQuestions(room.Settings.Categories, room.Settings.NumberOfQuestions, room.UsedQuestions)
	}
	if len(sources) == 0 {
		return nil, nil, errNotEnoughQuestions
	}

	question := beginGameLocked(room, sources)
	return room, question, nil
}

// AddCustomQuestion appends a (adjective, author) pair while the room is
// collecting. Capped at the configured questions-per-game. The returned list
// is a copy the caller may hand off without holding the lock.
func (s *Store) AddCustomQuestion(playerID, adjective string) (*Room, []CustomQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(playerID)
	if room == nil {
		return nil, nil, errRoomNotFound
	}
	if room.Status != statusCustomQuestions {
		return nil, nil, errWrongStatus
	}
	if len(room.CustomQuestions) >= room.Settings.NumberOfQuestions {
		return nil, nil, errQuestionLimitReached
	}
	room.CustomQuestions = append(room.CustomQuestions, CustomQuestion{Adjective: adjective, PlayerID: playerID})
	return room, copyCustomQuestions(room.CustomQuestions), nil
}

func (s *Store) RemoveCustomQuestion(playerID string, index int) (*Room, []CustomQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(playerID)
	if room == nil {
		return nil, nil, errRoomNotFound
	}
	if room.Status != statusCustomQuestions {
		return nil, nil, errWrongStatus
	}
	if index < 0 || index >= len(room.CustomQuestions) {
		return nil, nil, errIndexOutOfRange
	}
	room.CustomQuestions = append(room.CustomQuestions[:index], room.CustomQuestions[index+1:]...)
	return room, copyCustomQuestions(room.CustomQuestions), nil
}

func copyCustomQuestions(questions []CustomQuestion) []CustomQuestion {
	list := make([]CustomQuestion, len(questions))
	copy(list, questions)
	return list
}

// StartGameWithCustomQuestions converts the collected adjectives into the
// per-game question list and proceeds exactly like StartGame's tail.
func (s *Store) StartGameWithCustomQuestions(hostID string) (*Room, *Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(hostID)
	if room == nil {
		return nil, nil, errRoomNotFound
	}
	if room.HostID != hostID {
		return nil, nil, errNotHost
	}
	if room.Status != statusCustomQuestions {
		return nil, nil, errWrongStatus
	}
	if len(room.CustomQuestions) < room.Settings.NumberOfQuestions {
		return nil, nil, errNotEnoughQuestions
	}

	sources := make([]questionSource, 0, len(room.CustomQuestions))
	for _, custom := range room.CustomQuestions {
		sources = append(sources, questionSource{Adjective: custom.Adjective, Category: categoryCustom})
	}
	question := beginGameLocked(room, sources)
	return room, question, nil
}

// beginGameLocked resets the round state, merges the chosen adjectives into
// the room's lifetime history and serves the first question.
func beginGameLocked(room *Room, sources []questionSource) *Question {
	for _, source := range sources {
		room.UsedQuestions[source.Adjective] = struct{}{}
	}
	room.Generated = sources
	room.CurrentQuestionIndex = 0
	room.Votes = make(map[string]string)
	room.Results = nil
	room.Status = statusPlaying
	// Seed the clock so the first broadcast shows the full round time even
	// before the timer's first tick.
	room.TimeRemaining = room.Settings.QuestionTime

	question := makeQuestion(sources[0])
	room.CurrentQuestion = &question
	return &question
}

// Vote records or overwrites the voter's choice. Allowed only while the
// room is playing and the target is a current player.
func (s *Store) Vote(voterID, targetID string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(voterID)
	if room == nil {
		return nil, errRoomNotFound
	}
	if room.Status != statusPlaying {
		return nil, errWrongStatus
	}
	if findPlayer(room, targetID) == nil {
		return nil, errInvalidTarget
	}
	room.Votes[voterID] = targetID
	return room, nil
}

// HasEveryoneVoted recomputes on demand; membership can shrink mid-round.
func (s *Store) HasEveryoneVoted(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[normalizeCode(code)]
	if !ok {
		return false
	}
	return everyoneVotedLocked(room)
}

// RoundComplete reports whether an open round has collected a vote from
// every current player. Both conditions are read under one lock so the
// caller never has to inspect room fields itself.
func (s *Store) RoundComplete(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[normalizeCode(code)]
	if !ok || room.Status != statusPlaying {
		return false
	}
	return everyoneVotedLocked(room)
}

func everyoneVotedLocked(room *Room) bool {
	for _, player := range room.Players {
		if _, voted := room.Votes[player.ID]; !voted {
			return false
		}
	}
	return true
}

// CalculateResults finalizes the current round. Stopping the timer happens
// first and inside the same critical section, so a round closed by the
// everyone-voted path can never be re-finalized by a stale expiry. The
// status guard makes the two finalization paths mutually exclusive.
func (s *Store) CalculateResults(code string) (*Room, *QuestionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[normalizeCode(code)]
	if !ok {
		return nil, nil, errRoomNotFound
	}
	if room.Status != statusPlaying || room.CurrentQuestion == nil {
		return nil, nil, errNoActiveQuestion
	}
	s.stopTimerLocked(room)

	counts := make(map[string]int, len(room.Players))
	for _, player := range room.Players {
		counts[player.ID] = 0
	}
	for _, targetID := range room.Votes {
		counts[targetID]++
	}

	ranking := make([]RankEntry, 0, len(room.Players))
	for _, player := range room.Players {
		ranking = append(ranking, RankEntry{Player: player, Votes: counts[player.ID]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Votes > ranking[j].Votes
	})

	result := QuestionResult{
		Question: *room.CurrentQuestion,
		Votes:    counts,
		Ranking:  ranking,
	}
	room.Results = append(room.Results, result)
	room.Status = statusResults
	return room, &result, nil
}

// NextQuestion advances the round, or marks the game finished once the
// generated list is exhausted. The index never moves past the last
// question; a game of N questions finishes on exactly the Nth call.
func (s *Store) NextQuestion(hostID string) (*Room, *Question, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(hostID)
	if room == nil {
		return nil, nil, false, errRoomNotFound
	}
	if room.HostID != hostID {
		return nil, nil, false, errNotHost
	}

	s.stopTimerLocked(room)
	room.Votes = make(map[string]string)

	next := room.CurrentQuestionIndex + 1
	if next >= len(room.Generated) {
		room.Status = statusFinished
		room.CurrentQuestion = nil
		return room, nil, true, nil
	}

	room.CurrentQuestionIndex = next
	question := makeQuestion(room.Generated[next])
	room.CurrentQuestion = &question
	room.Status = statusPlaying
	room.TimeRemaining = room.Settings.QuestionTime
	return room, &question, false, nil
}

// ResetRoom returns the room to the lobby for a replay. UsedQuestions
// deliberately survives so repeat games keep avoiding asked adjectives
// until the pool is exhausted.
func (s *Store) ResetRoom(hostID string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.roomForPlayerLocked(hostID)
	if room == nil {
		return nil, errRoomNotFound
	}
	if room.HostID != hostID {
		return nil, errNotHost
	}

	s.stopTimerLocked(room)
	room.Status = statusLobby
	room.CurrentQuestionIndex = 0
	room.CurrentQuestion = nil
	room.Votes = make(map[string]string)
	room.Results = nil
	room.CustomQuestions = nil
	room.Generated = nil
	return room, nil
}

func containsCategory(categories []string, id string) bool {
	for _, category := range categories {
		if category == id {
			return true
		}
	}
	return false
}
