package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/templui/studytrack/internal/dates"
	"github.com/templui/studytrack/internal/docstore"
	"github.com/templui/studytrack/internal/model"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
)

// ActivityRepository reads and writes the users/{uid}/activities collection.
type ActivityRepository interface {
	Activities(ctx context.Context, userID string) ([]model.Activity, error)
	Create(ctx context.Context, userID string, activity *model.Activity) error
	Update(ctx context.Context, userID string, activity *model.Activity) error
	SetStatus(ctx context.Context, userID, activityID string, status model.ActivityStatus, completedAt *time.Time) error
	Delete(ctx context.Context, userID, activityID string) error
}

type activityRepository struct {
	store docstore.Store
	now   func() time.Time
}

func NewActivityRepository(store docstore.Store) ActivityRepository {
	return &activityRepository{store: store, now: time.Now}
}

func activityCollection(userID string) string {
	return docstore.UserCollection(userID, docstore.CollectionActivities)
}

func (r *activityRepository) Activities(ctx context.Context, userID string) ([]model.Activity, error) {
	docs, err := r.store.List(ctx, activityCollection(userID))
	if err != nil {
		return nil, err
	}

	now := r.now()
	activities := make([]model.Activity, 0, len(docs))
	for _, doc := range docs {
		status := model.ActivityStatus(stringField(doc.Fields, fieldStatus))
		if !status.Valid() {
			slog.Warn("unknown activity status, treating as in progress", "status", status, "doc_id", doc.ID)
			status = model.ActivityStatusInProgress
		}

		activities = append(activities, model.Activity{
			ID:                   doc.ID,
			Title:                stringField(doc.Fields, fieldTitle),
			Description:          stringField(doc.Fields, fieldDescription),
			Subject:              stringField(doc.Fields, fieldSubject),
			TargetDate:           dateField(doc.Fields, fieldTargetDate, doc.ID),
			Icon:                 stringField(doc.Fields, fieldIcon),
			Color:                stringField(doc.Fields, fieldColor),
			Status:               status,
			ActualCompletionDate: optionalTimestampField(doc.Fields, fieldActualCompletionDate, doc.ID),
			CreatedAt:            createdAtField(doc.Fields, doc.ID, now),
		})
	}

	return activities, nil
}

// Create stores a new activity and sets activity.ID to the id assigned by the store.
func (r *activityRepository) Create(ctx context.Context, userID string, activity *model.Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = r.now()
	}

	id, err := r.store.Add(ctx, activityCollection(userID), docstore.Fields{
		fieldTitle:                activity.Title,
		fieldDescription:          activity.Description,
		fieldSubject:              activity.Subject,
		fieldTargetDate:           dates.Format(activity.TargetDate),
		fieldIcon:                 activity.Icon,
		fieldColor:                activity.Color,
		fieldStatus:               string(activity.Status),
		fieldActualCompletionDate: optionalTimestamp(activity.ActualCompletionDate),
		fieldCreatedAt:            dates.FormatTimestamp(activity.CreatedAt),
	})
	if err != nil {
		return err
	}

	activity.ID = id
	return nil
}

// Update writes the user-editable fields. Status is changed only by SetStatus.
func (r *activityRepository) Update(ctx context.Context, userID string, activity *model.Activity) error {
	err := r.store.Update(ctx, activityCollection(userID), activity.ID, docstore.Fields{
		fieldTitle:       activity.Title,
		fieldDescription: activity.Description,
		fieldSubject:     activity.Subject,
		fieldTargetDate:  dates.Format(activity.TargetDate),
		fieldIcon:        activity.Icon,
		fieldColor:       activity.Color,
	})
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrActivityNotFound
	}
	return err
}

// SetStatus writes the status. The completion date is written only when completedAt
// is non-nil; otherwise the stored value is left as it is.
func (r *activityRepository) SetStatus(ctx context.Context, userID, activityID string, status model.ActivityStatus, completedAt *time.Time) error {
	fields := docstore.Fields{
		fieldStatus: string(status),
	}
	if completedAt != nil {
		fields[fieldActualCompletionDate] = dates.FormatTimestamp(*completedAt)
	}

	err := r.store.Update(ctx, activityCollection(userID), activityID, fields)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrActivityNotFound
	}
	return err
}

func (r *activityRepository) Delete(ctx context.Context, userID, activityID string) error {
	err := r.store.Delete(ctx, activityCollection(userID), activityID)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrActivityNotFound
	}
	return err
}
