package server

import "time"

// roomTimer drives one room's round countdown. Timers are keyed by the
// room's immutable ID; the seq guard makes a cancelled timer's
// already-scheduled fire a no-op even if it was racing for the lock.
type roomTimer struct {
	seq       int
	remaining int
	timer     *time.Timer
	onExpired func()
	onTick    func(remaining int)
}

// StartRoundTimer cancels any timer already running for the room, then
// ticks once per second until expiry. Callbacks run outside the store lock.
func (s *Store) StartRoundTimer(code string, onExpired func(), onTick func(remaining int)) {
	s.mu.Lock()
	room, ok := s.rooms[normalizeCode(code)]
	if !ok {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked(room)

	s.timerSeq++
	t := &roomTimer{
		seq:       s.timerSeq,
		remaining: room.Settings.QuestionTime,
		onExpired: onExpired,
		onTick:    onTick,
	}
	room.TimeRemaining = t.remaining
	t.timer = time.AfterFunc(time.Second, func() { s.tickRoundTimer(room, t.seq) })
	s.timers[room.ID] = t
	s.mu.Unlock()
}

// StopRoundTimer is idempotent; stopping a room with no running timer is a
// no-op.
func (s *Store) StopRoundTimer(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if room, ok := s.rooms[normalizeCode(code)]; ok {
		s.stopTimerLocked(room)
	}
}

func (s *Store) stopTimerLocked(room *Room) {
	t, ok := s.timers[room.ID]
	if !ok {
		return
	}
	t.timer.Stop()
	delete(s.timers, room.ID)
	room.TimeRemaining = 0
}

func (s *Store) tickRoundTimer(room *Room, seq int) {
	s.mu.Lock()
	t, ok := s.timers[room.ID]
	if !ok || t.seq != seq {
		s.mu.Unlock()
		return
	}
	t.remaining--
	room.TimeRemaining = t.remaining

	remaining := t.remaining
	onTick := t.onTick
	var onExpired func()
	if remaining <= 0 {
		// Grab the callback before clearing the bookkeeping so the final
		// fire is not dropped by its own cleanup.
		onExpired = t.onExpired
		delete(s.timers, room.ID)
	} else {
		t.timer = time.AfterFunc(time.Second, func() { s.tickRoundTimer(room, seq) })
	}
	s.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	if onExpired != nil {
		onExpired()
	}
}
