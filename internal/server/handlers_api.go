package server

import (
	"encoding/json"
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := make([]map[string]any, 0, len(questionCatalog)+1)
	for _, id := range catalogCategoryIDs() {
		categories = append(categories, map[string]any{
			"id":         id,
			"adjectives": len(questionCatalog[id]),
		})
	}
	categories = append(categories, map[string]any{
		"id":         categoryCustom,
		"adjectives": 0,
	})
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// handleRoomQR renders the join link for a room as a PNG QR code, for the
// host screen to put up while people trickle in.
func (s *Server) handleRoomQR(w http.ResponseWriter, r *http.Request) {
	room, ok := s.store.GetRoom(r.PathValue("code"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	joinURL := strings.TrimSuffix(s.cfg.PublicURL, "/") + "/join/" + room.Code
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrImageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate qr code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}
