package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/studytrack/internal/docstore"
	"github.com/templui/studytrack/internal/model"
)

func TestGoalRepository_CreateAndList(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewGoalRepository(store)

	target := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	goal := &model.Goal{Title: "Finish chapter 3", Description: "Algebra", TargetDate: target}

	require.NoError(t, repo.Create(ctx, "u1", goal))
	require.NotEmpty(t, goal.ID)
	assert.False(t, goal.CreatedAt.IsZero())

	goals, err := repo.Goals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)

	got := goals[0]
	assert.Equal(t, goal.ID, got.ID)
	assert.Equal(t, "Finish chapter 3", got.Title)
	assert.Equal(t, "2024-12-01", got.TargetDate.Format("2006-01-02"))
	assert.False(t, got.Completed)
	assert.Nil(t, got.ActualCompletionDate)
	assert.True(t, goal.CreatedAt.Equal(got.CreatedAt))

	other, err := repo.Goals(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGoalRepository_ReadsLegacyDocuments(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := &goalRepository{
		store: store,
		now:   func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) },
	}

	_, err := store.Add(ctx, goalCollection("u1"), docstore.Fields{
		"title":      "Old",
		"targetDate": "15/06/2024",
	})
	require.NoError(t, err)

	goals, err := repo.Goals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, time.June, goals[0].TargetDate.Month())
	assert.Equal(t, 15, goals[0].TargetDate.Day())
	assert.Equal(t, 2030, goals[0].CreatedAt.Year(), "missing createdAt falls back to now")
}

func TestGoalRepository_UpdateKeepsCompletion(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(docstore.NewMemoryStore())

	goal := &model.Goal{Title: "a", Description: "b", TargetDate: time.Now()}
	require.NoError(t, repo.Create(ctx, "u1", goal))

	now := time.Now()
	require.NoError(t, repo.SetCompleted(ctx, "u1", goal.ID, true, &now))

	goal.Title = "renamed"
	require.NoError(t, repo.Update(ctx, "u1", goal))

	goals, err := repo.Goals(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "renamed", goals[0].Title)
	assert.True(t, goals[0].Completed)
	require.NotNil(t, goals[0].ActualCompletionDate)
}

func TestGoalRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(docstore.NewMemoryStore())

	assert.ErrorIs(t, repo.Update(ctx, "u1", &model.Goal{ID: "nope"}), ErrGoalNotFound)
	assert.ErrorIs(t, repo.SetCompleted(ctx, "u1", "nope", true, nil), ErrGoalNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u1", "nope"), ErrGoalNotFound)
}

func TestActivityRepository_StatusKeepsCompletionDate(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(docstore.NewMemoryStore())

	activity := &model.Activity{
		Title:      "Lab report",
		Subject:    "Chemistry",
		TargetDate: time.Now(),
		Status:     model.ActivityStatusInProgress,
	}
	require.NoError(t, repo.Create(ctx, "u1", activity))

	done := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetStatus(ctx, "u1", activity.ID, model.ActivityStatusCompleted, &done))
	require.NoError(t, repo.SetStatus(ctx, "u1", activity.ID, model.ActivityStatusPaused, nil))

	activities, err := repo.Activities(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityStatusPaused, activities[0].Status)
	require.NotNil(t, activities[0].ActualCompletionDate)
	assert.True(t, done.Equal(*activities[0].ActualCompletionDate))
	assert.Equal(t, "Chemistry", activities[0].Subject)
}

func TestActivityRepository_UnknownStatus(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewActivityRepository(store)

	_, err := store.Add(ctx, activityCollection("u1"), docstore.Fields{"title": "x", "status": "archived"})
	require.NoError(t, err)

	activities, err := repo.Activities(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, model.ActivityStatusInProgress, activities[0].Status)
}
