package repository

import (
	"context"
	"errors"
	"time"

	"github.com/templui/studytrack/internal/dates"
	"github.com/templui/studytrack/internal/docstore"
	"github.com/templui/studytrack/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalRepository reads and writes the users/{uid}/goals collection.
type GoalRepository interface {
	Goals(ctx context.Context, userID string) ([]model.Goal, error)
	Create(ctx context.Context, userID string, goal *model.Goal) error
	Update(ctx context.Context, userID string, goal *model.Goal) error
	SetCompleted(ctx context.Context, userID, goalID string, completed bool, completedAt *time.Time) error
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewGoalRepository(store docstore.Store) GoalRepository {
	return &goalRepository{store: store, now: time.Now}
}

func goalCollection(userID string) string {
	return docstore.UserCollection(userID, docstore.CollectionGoals)
}

// Goals returns every goal of the user in store order.
func (r *goalRepository) Goals(ctx context.Context, userID string) ([]model.Goal, error) {
	docs, err := r.store.List(ctx, goalCollection(userID))
	if err != nil {
		return nil, err
	}

	now := r.now()
	goals := make([]model.Goal, 0, len(docs))
	for _, doc := range docs {
		goals = append(goals, model.Goal{
			ID:                   doc.ID,
			Title:                stringField(doc.Fields, fieldTitle),
			Description:          stringField(doc.Fields, fieldDescription),
			TargetDate:           dateField(doc.Fields, fieldTargetDate, doc.ID),
			ActualCompletionDate: optionalTimestampField(doc.Fields, fieldActualCompletionDate, doc.ID),
			Completed:            boolField(doc.Fields, fieldCompleted),
			CreatedAt:            createdAtField(doc.Fields, doc.ID, now),
		})
	}

	return goals, nil
}

// Create stores a new goal and sets goal.ID to the id assigned by the store.
func (r *goalRepository) Create(ctx context.Context, userID string, goal *model.Goal) error {
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = r.now()
	}

	id, err := r.store.Add(ctx, goalCollection(userID), docstore.Fields{
		fieldTitle:                goal.Title,
		fieldDescription:          goal.Description,
		fieldTargetDate:           dates.Format(goal.TargetDate),
		fieldActualCompletionDate: optionalTimestamp(goal.ActualCompletionDate),
		fieldCompleted:            goal.Completed,
		fieldCreatedAt:            dates.FormatTimestamp(goal.CreatedAt),
	})
	if err != nil {
		return err
	}

	goal.ID = id
	return nil
}

// Update writes the user-editable fields. Completion state is changed only by SetCompleted.
func (r *goalRepository) Update(ctx context.Context, userID string, goal *model.Goal) error {
	err := r.store.Update(ctx, goalCollection(userID), goal.ID, docstore.Fields{
		fieldTitle:       goal.Title,
		fieldDescription: goal.Description,
		fieldTargetDate:  dates.Format(goal.TargetDate),
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

func (r *goalRepository) SetCompleted(ctx context.Context, userID, goalID string, completed bool, completedAt *time.Time) error {
	err := r.store.Update(ctx, goalCollection(userID), goalID, docstore.Fields{
		fieldCompleted:            completed,
		fieldActualCompletionDate: optionalTimestamp(completedAt),
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	err := r.store.Delete(ctx, goalCollection(userID), goalID)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}
