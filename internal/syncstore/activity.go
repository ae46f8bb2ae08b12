package syncstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/dates"
	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/notify"
	"github.com/templui/studytrack/internal/repository"
	"github.com/templui/studytrack/internal/validation"
)

// ActivityForm is the state of the create/edit form.
type ActivityForm struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	TargetDate  time.Time `json:"target_date"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	IsEdit      bool      `json:"is_edit"`
	EditID      string    `json:"edit_id,omitempty"`
}

func emptyActivityForm() ActivityForm {
	return ActivityForm{
		Icon:  model.DefaultActivityIcon,
		Color: model.DefaultActivityColor,
	}
}

type ActivityStore struct {
	repo     repository.ActivityRepository
	auth     auth.Provider
	notifier notify.Notifier
	now      func() time.Time

	mu         sync.RWMutex
	activities []model.Activity
	fetched    bool
	form       ActivityForm

	loading loading
	opens   OpenRequests
}

func NewActivityStore(repo repository.ActivityRepository, provider auth.Provider, notifier notify.Notifier) *ActivityStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &ActivityStore{
		repo:       repo,
		auth:       provider,
		notifier:   notifier,
		now:        time.Now,
		activities: []model.Activity{},
		form:       emptyActivityForm(),
	}
}

// Activities returns a copy of the current list.
func (s *ActivityStore) Activities() []model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activities := make([]model.Activity, len(s.activities))
	copy(activities, s.activities)
	return activities
}

func (s *ActivityStore) Loading() bool { return s.loading.active() }

func (s *ActivityStore) Fetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}

func (s *ActivityStore) Stats() model.ActivityStats {
	return model.NewActivityStats(s.Activities())
}

func (s *ActivityStore) userID() (string, error) {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		s.notifier.Notify(notify.Warning(msgSignInRequired))
		return "", ErrUnauthenticated
	}
	return userID, nil
}

// Fetch replaces the list with every remote activity, newest first.
func (s *ActivityStore) Fetch(ctx context.Context) error {
	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	activities, err := s.repo.Activities(ctx, userID)
	if err != nil {
		slog.Error("failed to fetch activities", "error", err, "user_id", userID)
		s.notifier.Notify(notify.Error("Could not load your activities. Try again."))
		return fmt.Errorf("fetch activities: %w", err)
	}

	model.SortActivities(activities)

	s.mu.Lock()
	s.activities = activities
	s.fetched = true
	s.mu.Unlock()

	return nil
}

func (s *ActivityStore) EnsureFetched(ctx context.Context) error {
	if s.Fetched() {
		return nil
	}
	return s.Fetch(ctx)
}

// Save creates an activity, or updates editID when isEdit is set, then refetches.
// New activities start in progress with the default icon and color when none is given.
func (s *ActivityStore) Save(ctx context.Context, activity model.Activity, isEdit bool, editID string) error {
	if err := validation.ValidateForm(activity.Title, activity.Description, activity.TargetDate); err != nil {
		s.notifier.Notify(notify.Warning(msgFillAllFields))
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	activity.TargetDate = dates.Normalize(activity.TargetDate)
	if activity.Icon == "" {
		activity.Icon = model.DefaultActivityIcon
	}
	if activity.Color == "" {
		activity.Color = model.DefaultActivityColor
	}

	if isEdit && editID != "" {
		activity.ID = editID
		err = s.repo.Update(ctx, userID, &activity)
		if err != nil {
			slog.Error("failed to update activity", "error", err, "user_id", userID, "activity_id", editID)
			s.notifier.Notify(notify.Error("Could not save the activity. Try again."))
			return fmt.Errorf("save activity: %w", err)
		}
		s.notifier.Notify(notify.Success("Activity updated successfully!"))
	} else {
		activity.ID = ""
		activity.Status = model.ActivityStatusInProgress
		activity.ActualCompletionDate = nil
		if activity.CreatedAt.IsZero() {
			activity.CreatedAt = s.now()
		}

		err = s.repo.Create(ctx, userID, &activity)
		if err != nil {
			slog.Error("failed to create activity", "error", err, "user_id", userID)
			s.notifier.Notify(notify.Error("Could not save the activity. Try again."))
			return fmt.Errorf("save activity: %w", err)
		}

		s.mu.Lock()
		s.activities = append([]model.Activity{activity}, s.activities...)
		s.mu.Unlock()

		s.notifier.Notify(notify.Success("Activity saved successfully!"))
	}

	s.ResetForm()

	if err := s.Fetch(ctx); err != nil {
		slog.Warn("refetch after activity save failed", "error", err, "user_id", userID)
	}

	return nil
}

// Delete removes the activity remotely and rebuilds the list with a full refetch.
func (s *ActivityStore) Delete(ctx context.Context, id string) error {
	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, userID, id)
	if err != nil {
		slog.Error("failed to delete activity", "error", err, "user_id", userID, "activity_id", id)
		s.notifier.Notify(notify.Error("Could not delete the activity. Try again."))
		return fmt.Errorf("delete activity: %w", err)
	}

	s.notifier.Notify(notify.Success("Activity deleted successfully!"))

	if err := s.Fetch(ctx); err != nil {
		slog.Warn("refetch after activity delete failed", "error", err, "user_id", userID)
	}

	return nil
}

// UpdateStatus moves an activity to status. Moving to completed stamps the completion
// date with the current time; any other move leaves the stored date untouched, so a
// reopened activity keeps its old, now stale, completion date. Any transition is allowed.
func (s *ActivityStore) UpdateStatus(ctx context.Context, id string, status model.ActivityStatus) error {
	if !status.Valid() {
		s.notifier.Notify(notify.Warning(fmt.Sprintf("Unknown status %q.", status)))
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	if _, ok := s.find(id); !ok {
		slog.Warn("status change requested for activity not in list", "user_id", userID, "activity_id", id)
		return ErrActivityNotFound
	}

	var completedAt *time.Time
	if status == model.ActivityStatusCompleted {
		now := s.now()
		completedAt = &now
	}

	err = s.repo.SetStatus(ctx, userID, id, status, completedAt)
	if err != nil {
		slog.Error("failed to update activity status", "error", err, "user_id", userID, "activity_id", id)
		s.notifier.Notify(notify.Error("Could not update the activity status. Try again."))
		return fmt.Errorf("update activity status: %w", err)
	}

	s.mu.Lock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities[i].Status = status
			if completedAt != nil {
				s.activities[i].ActualCompletionDate = completedAt
			}
		}
	}
	s.mu.Unlock()

	if err := s.Fetch(ctx); err != nil {
		slog.Warn("refetch after activity status change failed", "error", err, "user_id", userID)
	}

	return nil
}

func (s *ActivityStore) find(id string) (model.Activity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.activities {
		if a.ID == id {
			return a, true
		}
	}
	return model.Activity{}, false
}

// RequestEdit loads activity into the form in edit mode and asks the form to open.
func (s *ActivityStore) RequestEdit(activity model.Activity) {
	s.mu.Lock()
	s.form = ActivityForm{
		Title:       activity.Title,
		Description: activity.Description,
		Subject:     activity.Subject,
		TargetDate:  activity.TargetDate,
		Icon:        activity.Icon,
		Color:       activity.Color,
		IsEdit:      true,
		EditID:      activity.ID,
	}
	s.mu.Unlock()

	s.opens.Request()
}

func (s *ActivityStore) RequestCreate() {
	s.ResetForm()
	s.opens.Request()
}

func (s *ActivityStore) OnOpenRequest(fn func()) (unsubscribe func()) {
	return s.opens.Subscribe(fn)
}

func (s *ActivityStore) Form() ActivityForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

func (s *ActivityStore) ResetForm() {
	s.mu.Lock()
	s.form = emptyActivityForm()
	s.mu.Unlock()
}

// SaveForm saves the current form contents, honoring its edit mode.
func (s *ActivityStore) SaveForm(ctx context.Context) error {
	form := s.Form()
	return s.Save(ctx, model.Activity{
		Title:       form.Title,
		Description: form.Description,
		Subject:     form.Subject,
		TargetDate:  form.TargetDate,
		Icon:        form.Icon,
		Color:       form.Color,
	}, form.IsEdit, form.EditID)
}

// EditForm applies fn to the form fields. Edit mode and target id are kept.
func (s *ActivityStore) EditForm(fn func(*ActivityForm)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := s.form
	fn(&form)
	form.IsEdit = s.form.IsEdit
	form.EditID = s.form.EditID
	s.form = form
}
