package handler

import (
	"net/http"

	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/notify"
	"github.com/templui/studytrack/internal/session"
	"github.com/templui/studytrack/internal/syncstore"
)

type ActivityHandler struct {
	sessions Sessions
}

func NewActivityHandler(sessions Sessions) *ActivityHandler {
	return &ActivityHandler{
		sessions: sessions,
	}
}

type activityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	TargetDate  string `json:"target_date"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type statusRequest struct {
	Status model.ActivityStatus `json:"status"`
}

type activitiesResponse struct {
	Activities    []model.Activity      `json:"activities"`
	Notifications []notify.Notification `json:"notifications"`
}

type activityFormResponse struct {
	Form          syncstore.ActivityForm `json:"form"`
	Notifications []notify.Notification  `json:"notifications"`
}

func (h *ActivityHandler) respond(w http.ResponseWriter, s *session.Session, status int) {
	writeJSON(w, status, activitiesResponse{
		Activities:    s.Activities.Activities(),
		Notifications: s.Queue.Drain(),
	})
}

// List returns the activity list. ?refresh=1 refetches it first.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	var err error
	if r.URL.Query().Get("refresh") == "1" {
		err = s.Activities.Fetch(r.Context())
	}

	h.respond(w, s, statusFor(err))
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, false)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, true)
}

func (h *ActivityHandler) save(w http.ResponseWriter, r *http.Request, isEdit bool) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	var req activityRequest
	if !decode(r, s, &req) {
		h.respond(w, s, http.StatusBadRequest)
		return
	}

	targetDate, ok := parseDate(s, req.TargetDate)
	if !ok {
		h.respond(w, s, http.StatusBadRequest)
		return
	}

	err := s.Activities.Save(r.Context(), model.Activity{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		TargetDate:  targetDate,
		Icon:        req.Icon,
		Color:       req.Color,
	}, isEdit, r.PathValue("id"))

	status := statusFor(err)
	if err == nil && !isEdit {
		w.Header().Set("Location", "/api/activities")
		status = http.StatusCreated
	}

	h.respond(w, s, status)
}

func (h *ActivityHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	var req statusRequest
	if !decode(r, s, &req) {
		h.respond(w, s, http.StatusBadRequest)
		return
	}

	err := s.Activities.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	h.respond(w, s, statusFor(err))
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	err := s.Activities.Delete(r.Context(), r.PathValue("id"))
	h.respond(w, s, statusFor(err))
}

// RequestEdit loads a listed activity into the edit form and returns the form.
func (h *ActivityHandler) RequestEdit(w http.ResponseWriter, r *http.Request) {
	s, release := currentSession(w, r, h.sessions)
	if s == nil {
		return
	}
	defer release()

	id := r.PathValue("id")
	for _, activity := range s.Activities.Activities() {
		if activity.ID == id {
			s.Activities.RequestEdit(activity)
			writeJSON(w, http.StatusOK, activityFormResponse{
				Form:          s.Activities.Form(),
				Notifications: s.Queue.Drain(),
			})
			return
		}
	}

	h.respond(w, s, http.StatusNotFound)
}
