package server

import (
	"net/http"

	"most-likely/internal/config"
)

type Server struct {
	store *Store
	hub   *wsHub
	cfg   config.Config
}

func New(cfg config.Config) *Server {
	return &Server{
		store: NewStore(cfg.MinPlayers),
		hub:   newWSHub(),
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("GET /api/rooms/{code}/qr", s.handleRoomQR)
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	return mux
}

// defaultSettings is what a freshly created room starts with; the host can
// change it from the lobby.
func (s *Server) defaultSettings() RoomSettings {
	return RoomSettings{
		NumberOfQuestions: s.cfg.QuestionsPerGame,
		Categories:        []string{"classic"},
		QuestionTime:      s.cfg.QuestionTimeSeconds,
	}
}
