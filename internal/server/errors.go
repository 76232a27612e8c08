package server

import "errors"

var (
	errRoomNotFound         = errors.New("room not found")
	errNotHost              = errors.New("not the host")
	errWrongStatus          = errors.New("wrong room status")
	errInvalidTarget        = errors.New("player not in room")
	errNotEnoughPlayers     = errors.New("not enough players")
	errQuestionLimitReached = errors.New("custom question limit reached")
	errNotEnoughQuestions   = errors.New("not enough questions")
	errIndexOutOfRange      = errors.New("index out of range")
	errNoActiveQuestion     = errors.New("no active question")
)
