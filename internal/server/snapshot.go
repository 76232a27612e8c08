package server

// Snapshot builds a room's broadcast payload under the store lock, so a
// concurrent timer tick never mutates the room mid-read.
func (s *Store) Snapshot(room *Room) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return roomPayload(room)
}

func (s *Store) ResultsSnapshot(room *Room) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return resultPayloads(room.Results)
}

// roomPayload is the broadcast shape of a room. Fields tied to an active
// round appear only while the status warrants them. Every slice and map is
// copied: the payload is marshaled after the lock is released, and the live
// room keeps mutating underneath it.
func roomPayload(room *Room) map[string]any {
	players := make([]Player, len(room.Players))
	copy(players, room.Players)

	settings := room.Settings
	settings.Categories = make([]string, len(room.Settings.Categories))
	copy(settings.Categories, room.Settings.Categories)

	votes := make(map[string]string, len(room.Votes))
	for voterID, targetID := range room.Votes {
		votes[voterID] = targetID
	}

	payload := map[string]any{
		"id":                room.ID,
		"code":              room.Code,
		"hostId":            room.HostID,
		"players":           players,
		"settings":          settings,
		"status":            room.Status,
		"votes":             votes,
		"results":           resultPayloads(room.Results),
		"usedQuestionCount": len(room.UsedQuestions),
	}
	if room.Status == statusPlaying || room.Status == statusResults {
		payload["currentQuestionIndex"] = room.CurrentQuestionIndex
		var question *Question
		if room.CurrentQuestion != nil {
			q := *room.CurrentQuestion
			question = &q
		}
		payload["currentQuestion"] = question
	}
	if room.Status == statusPlaying {
		payload["timeRemaining"] = room.TimeRemaining
	}
	if room.CustomQuestions != nil {
		custom := make([]CustomQuestion, len(room.CustomQuestions))
		copy(custom, room.CustomQuestions)
		payload["customQuestions"] = custom
	}
	return payload
}

func resultPayloads(results []QuestionResult) []map[string]any {
	payloads := make([]map[string]any, 0, len(results))
	for _, result := range results {
		payloads = append(payloads, resultPayload(result))
	}
	return payloads
}

func resultPayload(result QuestionResult) map[string]any {
	ranking := make([]map[string]any, 0, len(result.Ranking))
	for i, entry := range result.Ranking {
		ranking = append(ranking, map[string]any{
			"player": entry.Player,
			"votes":  entry.Votes,
			"rank":   rankForIndex(result.Ranking, i),
		})
	}
	return map[string]any{
		"question": result.Question,
		"votes":    result.Votes,
		"ranking":  ranking,
	}
}

// rankForIndex derives the 1-based dense rank for position i of a ranking
// sorted by votes descending: tied players share a rank, and each drop in
// vote count opens the next one.
func rankForIndex(ranking []RankEntry, i int) int {
	rank := 1
	for j := 1; j <= i && j < len(ranking); j++ {
		if ranking[j].Votes < ranking[j-1].Votes {
			rank++
		}
	}
	return rank
}
