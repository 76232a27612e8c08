package server

// clientMessage is the envelope for every inbound gateway message. The
// event names mirror the client protocol: room:create, room:join,
// room:updateSettings, room:leave, room:kickPlayer, room:transferHost,
// room:regenerateCode, game:start, game:vote, game:nextQuestion,
// game:backToLobby, custom:addQuestion, custom:removeQuestion,
// custom:startGame.
type clientMessage struct {
	Type      string        `json:"type"`
	Name      string        `json:"name,omitempty"`
	Avatar    string        `json:"avatar,omitempty"`
	Code      string        `json:"code,omitempty"`
	Settings  *RoomSettings `json:"settings,omitempty"`
	TargetID  string        `json:"targetId,omitempty"`
	Adjective string        `json:"adjective,omitempty"`
	Index     int           `json:"index,omitempty"`
}

type serverMessage struct {
	Type            string           `json:"type"`
	PlayerID        string           `json:"playerId,omitempty"`
	Room            map[string]any   `json:"room,omitempty"`
	Question        *Question        `json:"question,omitempty"`
	Result          map[string]any   `json:"result,omitempty"`
	Results         []map[string]any `json:"results,omitempty"`
	CustomQuestions []CustomQuestion `json:"customQuestions,omitempty"`
	TimeRemaining   *int             `json:"timeRemaining,omitempty"`
	Error           string           `json:"error,omitempty"`
}
