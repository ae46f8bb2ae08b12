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

// GoalForm is the state of the create/edit form.
type GoalForm struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	TargetDate           time.Time  `json:"target_date"`
	ActualCompletionDate *time.Time `json:"actual_completion_date,omitempty"`
	IsEdit               bool       `json:"is_edit"`
	EditID               string     `json:"edit_id,omitempty"`
}

type GoalStore struct {
	repo     repository.GoalRepository
	auth     auth.Provider
	notifier notify.Notifier
	now      func() time.Time

	mu      sync.RWMutex
	goals   []model.Goal
	fetched bool
	form    GoalForm

	loading loading
	opens   OpenRequests
}

func NewGoalStore(repo repository.GoalRepository, provider auth.Provider, notifier notify.Notifier) *GoalStore {
	if notifier == nil {
		notifier = notify.Discard
	}
	return &GoalStore{
		repo:     repo,
		auth:     provider,
		notifier: notifier,
		now:      time.Now,
		goals:    []model.Goal{},
	}
}

// Goals returns a copy of the current list.
func (s *GoalStore) Goals() []model.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	goals := make([]model.Goal, len(s.goals))
	copy(goals, s.goals)
	return goals
}

func (s *GoalStore) Loading() bool { return s.loading.active() }

// Fetched reports whether the list was loaded from the remote store at least once.
func (s *GoalStore) Fetched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetched
}

func (s *GoalStore) Stats() model.GoalStats {
	return model.NewGoalStats(s.Goals())
}

func (s *GoalStore) userID() (string, error) {
	userID, ok := s.auth.CurrentUserID()
	if !ok {
		s.notifier.Notify(notify.Warning(msgSignInRequired))
		return "", ErrUnauthenticated
	}
	return userID, nil
}

// Fetch replaces the list with every remote goal, incomplete first, newest first.
// Anything held only locally is discarded.
func (s *GoalStore) Fetch(ctx context.Context) error {
	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	goals, err := s.repo.Goals(ctx, userID)
	if err != nil {
		slog.Error("failed to fetch goals", "error", err, "user_id", userID)
		s.notifier.Notify(notify.Error("Could not load your goals. Try again."))
		return fmt.Errorf("fetch goals: %w", err)
	}

	model.SortGoals(goals)

	s.mu.Lock()
	s.goals = goals
	s.fetched = true
	s.mu.Unlock()

	return nil
}

// EnsureFetched fetches once per store lifetime.
func (s *GoalStore) EnsureFetched(ctx context.Context) error {
	if s.Fetched() {
		return nil
	}
	return s.Fetch(ctx)
}

// Save creates a goal, or updates editID when isEdit is set, then refetches.
// Missing title, description or target date aborts before any remote call.
func (s *GoalStore) Save(ctx context.Context, goal model.Goal, isEdit bool, editID string) error {
	if err := validation.ValidateForm(goal.Title, goal.Description, goal.TargetDate); err != nil {
		s.notifier.Notify(notify.Warning(msgFillAllFields))
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	goal.TargetDate = dates.Normalize(goal.TargetDate)

	if isEdit && editID != "" {
		goal.ID = editID
		err = s.repo.Update(ctx, userID, &goal)
		if err != nil {
			slog.Error("failed to update goal", "error", err, "user_id", userID, "goal_id", editID)
			s.notifier.Notify(notify.Error("Could not save the goal. Try again."))
			return fmt.Errorf("save goal: %w", err)
		}
		s.notifier.Notify(notify.Success("Goal updated successfully!"))
	} else {
		goal.ID = ""
		if goal.CreatedAt.IsZero() {
			goal.CreatedAt = s.now()
		}
		// New goals always start incomplete.
		goal.Completed = false
		goal.ActualCompletionDate = nil

		err = s.repo.Create(ctx, userID, &goal)
		if err != nil {
			slog.Error("failed to create goal", "error", err, "user_id", userID)
			s.notifier.Notify(notify.Error("Could not save the goal. Try again."))
			return fmt.Errorf("save goal: %w", err)
		}

		s.mu.Lock()
		s.goals = append([]model.Goal{goal}, s.goals...)
		s.mu.Unlock()

		s.notifier.Notify(notify.Success("Goal saved successfully!"))
	}

	s.ResetForm()

	// The save already succeeded; a failed refetch is reported by Fetch itself.
	if err := s.Fetch(ctx); err != nil {
		slog.Warn("refetch after goal save failed", "error", err, "user_id", userID)
	}

	return nil
}

// Delete removes the goal remotely, then drops it from the list without refetching.
func (s *GoalStore) Delete(ctx context.Context, id string) error {
	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	err = s.repo.Delete(ctx, userID, id)
	if err != nil {
		slog.Error("failed to delete goal", "error", err, "user_id", userID, "goal_id", id)
		s.notifier.Notify(notify.Error("Could not delete the goal. Try again."))
		return fmt.Errorf("delete goal: %w", err)
	}

	s.mu.Lock()
	kept := make([]model.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	s.goals = kept
	s.mu.Unlock()

	s.notifier.Notify(notify.Success("Goal deleted successfully!"))
	return nil
}

// ToggleCompleted flips the completed flag of a goal in the current list.
// Completing stamps the completion date; reopening clears it. The list is patched
// and then refetched. An id missing from the list is logged and ignored.
func (s *GoalStore) ToggleCompleted(ctx context.Context, id string) error {
	done := s.loading.start()
	defer done()

	userID, err := s.userID()
	if err != nil {
		return err
	}

	current, ok := s.find(id)
	if !ok {
		slog.Warn("toggle requested for goal not in list", "user_id", userID, "goal_id", id)
		return ErrGoalNotFound
	}

	completed := !current.Completed
	var completedAt *time.Time
	if completed {
		now := s.now()
		completedAt = &now
	}

	err = s.repo.SetCompleted(ctx, userID, id, completed, completedAt)
	if err != nil {
		slog.Error("failed to update goal status", "error", err, "user_id", userID, "goal_id", id)
		s.notifier.Notify(notify.Error("Could not update the goal status. Try again."))
		return fmt.Errorf("update goal status: %w", err)
	}

	s.mu.Lock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].Completed = completed
			s.goals[i].ActualCompletionDate = completedAt
		}
	}
	s.mu.Unlock()

	if err := s.Fetch(ctx); err != nil {
		slog.Warn("refetch after goal toggle failed", "error", err, "user_id", userID)
	}

	return nil
}

func (s *GoalStore) find(id string) (model.Goal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.Goal{}, false
}

// RequestEdit loads goal into the form in edit mode and asks the form to open.
func (s *GoalStore) RequestEdit(goal model.Goal) {
	s.mu.Lock()
	s.form = GoalForm{
		Title:                goal.Title,
		Description:          goal.Description,
		TargetDate:           goal.TargetDate,
		ActualCompletionDate: goal.ActualCompletionDate,
		IsEdit:               true,
		EditID:               goal.ID,
	}
	s.mu.Unlock()

	s.opens.Request()
}

// RequestCreate clears the form and asks it to open.
func (s *GoalStore) RequestCreate() {
	s.ResetForm()
	s.opens.Request()
}

// OnOpenRequest subscribes fn to form open requests.
func (s *GoalStore) OnOpenRequest(fn func()) (unsubscribe func()) {
	return s.opens.Subscribe(fn)
}

func (s *GoalStore) Form() GoalForm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

func (s *GoalStore) ResetForm() {
	s.mu.Lock()
	s.form = GoalForm{}
	s.mu.Unlock()
}

// SaveForm saves the current form contents, honoring its edit mode.
func (s *GoalStore) SaveForm(ctx context.Context) error {
	form := s.Form()
	return s.Save(ctx, model.Goal{
		Title:       form.Title,
		Description: form.Description,
		TargetDate:  form.TargetDate,
	}, form.IsEdit, form.EditID)
}

// EditForm applies fn to the form fields. Edit mode and target id are kept.
func (s *GoalStore) EditForm(fn func(*GoalForm)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := s.form
	fn(&form)
	form.IsEdit = s.form.IsEdit
	form.EditID = s.form.EditID
	s.form = form
}
