package handler

import (
	"net/http"

	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/notify"
)

type StatsHandler struct {
	sessions Sessions
}

func NewStatsHandler(sessions Sessions) *StatsHandler {
	return &StatsHandler{
		sessions: sessions,
	}
}

type statsResponse struct {
	Goals         model.GoalStats       `json:"goals"`
	Activities    model.ActivityStats   `json:"activities"`
	Notifications []notify.Notification `json:"notifications"`
}

// Stats summarizes the lists currently held by the session.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	writeJSON(w, http.StatusOK, statsResponse{
		Goals:         s.Goals.Stats(),
		Activities:    s.Activities.Stats(),
		Notifications: s.Queue.Drain(),
	})
}
