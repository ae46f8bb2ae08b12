package handler

import (
	"net/http"

	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/notify"
	"github.com/templui/studytrack/internal/session"
	"github.com/templui/studytrack/internal/syncstore"
)

type GoalHandler struct {
	sessions Sessions
}

func NewGoalHandler(sessions Sessions) *GoalHandler {
	return &GoalHandler{
		sessions: sessions,
	}
}

type goalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetDate  string `json:"target_date"`
}

type goalsResponse struct {
	Goals         []model.Goal          `json:"goals"`
	Notifications []notify.Notification `json:"notifications"`
}

type goalFormResponse struct {
	Form          syncstore.GoalForm    `json:"form"`
	Notifications []notify.Notification `json:"notifications"`
}

func (h *GoalHandler) respond(w http.ResponseWriter, s *session.Session, status int) {
	writeJSON(w, status, goalsResponse{
		Goals:         s.Goals.Goals(),
		Notifications: s.Queue.Drain(),
	})
}

// List returns the goal list. ?refresh=1 refetches it first.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	var err error
	if r.URL.Query().Get("refresh") == "1" {
		err = s.Goals.Fetch(r.Context())
	}

	h.respond(w, s, statusFor(err))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, false)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, true)
}

func (h *GoalHandler) save(w http.ResponseWriter, r *http.Request, isEdit bool) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	var req goalRequest
	if !decode(r, s, &req) {
		h.respond(w, s, http.StatusBadRequest)
		return
	}

	targetDate, ok := parseDate(s, req.TargetDate)
	if !ok {
		h.respond(w, s, http.StatusBadRequest)
		return
	}

	err := s.Goals.Save(r.Context(), model.Goal{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  targetDate,
	}, isEdit, r.PathValue("id"))

	status := statusFor(err)
	if err == nil && !isEdit {
		w.Header().Set("Location", "/api/goals")
		status = http.StatusCreated
	}

	h.respond(w, s, status)
}

func (h *GoalHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	err := s.Goals.ToggleCompleted(r.Context(), r.PathValue("id"))
	h.respond(w, s, statusFor(err))
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	err := s.Goals.Delete(r.Context(), r.PathValue("id"))
	h.respond(w, s, statusFor(err))
}

// RequestEdit loads a listed goal into the edit form and returns the form.
func (h *GoalHandler) RequestEdit(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	id := r.PathValue("id")
	for _, goal := range s.Goals.Goals() {
		if goal.ID == id {
			s.Goals.RequestEdit(goal)
			writeJSON(w, http.StatusOK, goalFormResponse{
				Form:          s.Goals.Form(),
				Notifications: s.Queue.Drain(),
			})
			return
		}
	}

	h.respond(w, s, http.StatusNotFound)
}
