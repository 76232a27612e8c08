package server

const (
	statusLobby           = "lobby"
	statusCustomQuestions = "custom-questions"
	statusPlaying         = "playing"
	statusResults         = "results"
	statusFinished        = "finished"
)

// categoryCustom is the settings marker that routes a game through the
// player-submitted question collection instead of the static catalog.
const categoryCustom = "custom"

type RoomSettings struct {
	NumberOfQuestions int      `json:"numberOfQuestions"`
	Categories        []string `json:"categories"`
	QuestionTime      int      `json:"questionTime"`
}

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	IsHost bool   `json:"isHost"`
}

type CustomQuestion struct {
	Adjective string `json:"adjective"`
	PlayerID  string `json:"playerId"`
}

type Question struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Adjective string `json:"adjective"`
	Category  string `json:"category"`
}

type RankEntry struct {
	Player Player `json:"player"`
	Votes  int    `json:"votes"`
}

// QuestionResult stores the ranking sorted by votes descending with ties
// left in player join order; presentation ranks are derived on demand.
type QuestionResult struct {
	Question Question       `json:"question"`
	Votes    map[string]int `json:"votes"`
	Ranking  []RankEntry    `json:"ranking"`
}

// questionSource is one sampled (adjective, category) pair. The full
// per-game list lives on the room for the lifetime of a single game.
type questionSource struct {
	Adjective string
	Category  string
}

type Room struct {
	ID                   string
	Code                 string
	HostID               string
	Players              []Player
	Settings             RoomSettings
	CurrentQuestionIndex int
	CurrentQuestion      *Question
	Votes                map[string]string
	Results              []QuestionResult
	Status               string
	CustomQuestions      []CustomQuestion
	TimeRemaining        int
	UsedQuestions        map[string]struct{}
	Generated            []questionSource
}
