package syncstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/docstore"
	"github.com/templui/studytrack/internal/model"
	"github.com/templui/studytrack/internal/notify"
	"github.com/templui/studytrack/internal/repository"
)

var errBackend = errors.New("backend unavailable")

type goalFixture struct {
	store   *GoalStore
	remote  *docstore.Faulty
	queue   *notify.Queue
	session *auth.Session
}

func newGoalFixture(t *testing.T) *goalFixture {
	t.Helper()

	remote := docstore.NewFaulty(docstore.NewMemoryStore())
	queue := &notify.Queue{}
	session := auth.NewSession("u1")

	store := NewGoalStore(repository.NewGoalRepository(remote), session, queue)

	clock := time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	return &goalFixture{store: store, remote: remote, queue: queue, session: session}
}

func (f *goalFixture) create(t *testing.T, title string) model.Goal {
	t.Helper()

	err := f.store.Save(context.Background(), model.Goal{
		Title:       title,
		Description: "desc " + title,
		TargetDate:  time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
	}, false, "")
	require.NoError(t, err)

	for _, g := range f.store.Goals() {
		if g.Title == title {
			return g
		}
	}
	t.Fatalf("goal %q not in list after save", title)
	return model.Goal{}
}

func kinds(items []notify.Notification) []notify.Kind {
	out := make([]notify.Kind, 0, len(items))
	for _, n := range items {
		out = append(out, n.Kind)
	}
	return out
}

func TestGoalStore_CreateScenario(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	goal := f.create(t, "Finish chapter 3")

	assert.NotEmpty(t, goal.ID)
	assert.False(t, goal.Completed)
	assert.Nil(t, goal.ActualCompletionDate)
	assert.Equal(t, "2024-12-01", goal.TargetDate.Format("2006-01-02"))
	assert.Equal(t, []notify.Kind{notify.KindSuccess}, kinds(f.queue.Drain()))
	assert.Equal(t, 1, f.remote.Calls(docstore.OpAdd))
	assert.Equal(t, 1, f.remote.Calls(docstore.OpList), "create ends with a refetch")

	other := f.create(t, "Read notes")

	require.NoError(t, f.store.ToggleCompleted(ctx, goal.ID))

	goals := f.store.Goals()
	require.Len(t, goals, 2)
	assert.Equal(t, other.ID, goals[0].ID, "incomplete goals come first")
	assert.Equal(t, goal.ID, goals[1].ID)
	assert.True(t, goals[1].Completed)
	assert.NotNil(t, goals[1].DisplayCompletionDate())
}

func TestGoalStore_CreateIgnoresCompleted(t *testing.T) {
	f := newGoalFixture(t)
	done := time.Now()

	err := f.store.Save(context.Background(), model.Goal{
		Title:                "t",
		Description:          "d",
		TargetDate:           time.Now(),
		Completed:            true,
		ActualCompletionDate: &done,
	}, false, "")
	require.NoError(t, err)

	goals := f.store.Goals()
	require.Len(t, goals, 1)
	assert.False(t, goals[0].Completed)
	assert.Nil(t, goals[0].ActualCompletionDate)
}

func TestGoalStore_SortOrder(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	a := f.create(t, "a")
	b := f.create(t, "b")
	c := f.create(t, "c")
	d := f.create(t, "d")

	require.NoError(t, f.store.ToggleCompleted(ctx, a.ID))
	require.NoError(t, f.store.ToggleCompleted(ctx, c.ID))

	var ids []string
	for _, g := range f.store.Goals() {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{d.ID, b.ID, c.ID, a.ID}, ids)
}

func TestGoalStore_SaveValidation(t *testing.T) {
	date := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		goal model.Goal
	}{
		{"empty title", model.Goal{Description: "d", TargetDate: date}},
		{"empty description", model.Goal{Title: "t", TargetDate: date}},
		{"missing target date", model.Goal{Title: "t", Description: "d"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newGoalFixture(t)
			existing := f.create(t, "existing")
			f.queue.Drain()
			before := f.store.Goals()
			calls := f.remote.TotalCalls()

			err := f.store.Save(context.Background(), tc.goal, false, "")

			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, calls, f.remote.TotalCalls(), "no remote call on validation failure")
			assert.Equal(t, before, f.store.Goals())
			assert.Equal(t, existing.ID, f.store.Goals()[0].ID)
			assert.Equal(t, []notify.Kind{notify.KindWarning}, kinds(f.queue.Drain()))
		})
	}
}

func TestGoalStore_Edit(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	goal := f.create(t, "Draft")
	require.NoError(t, f.store.ToggleCompleted(ctx, goal.ID))
	f.queue.Drain()

	err := f.store.Save(ctx, model.Goal{
		Title:       "Final",
		Description: "rewritten",
		TargetDate:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}, true, goal.ID)
	require.NoError(t, err)

	goals := f.store.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, goal.ID, goals[0].ID)
	assert.Equal(t, "Final", goals[0].Title)
	assert.Equal(t, "2025-01-15", goals[0].TargetDate.Format("2006-01-02"))
	assert.True(t, goals[0].Completed, "editing keeps completion state")
	assert.Equal(t, 1, f.remote.Calls(docstore.OpAdd), "edit does not create")
	assert.Equal(t, []notify.Kind{notify.KindSuccess}, kinds(f.queue.Drain()))
}

func TestGoalStore_EditWithoutIDCreates(t *testing.T) {
	f := newGoalFixture(t)

	err := f.store.Save(context.Background(), model.Goal{
		Title: "t", Description: "d", TargetDate: time.Now(),
	}, true, "")
	require.NoError(t, err)

	assert.Equal(t, 1, f.remote.Calls(docstore.OpAdd))
	assert.Equal(t, 0, f.remote.Calls(docstore.OpUpdate))
	assert.Len(t, f.store.Goals(), 1)
}

func TestGoalStore_SaveFailureLeavesList(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	f.create(t, "kept")
	f.queue.Drain()
	before := f.store.Goals()

	f.remote.Fail(docstore.OpAdd, errBackend)
	err := f.store.Save(ctx, model.Goal{Title: "t", Description: "d", TargetDate: time.Now()}, false, "")

	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, before, f.store.Goals())
	assert.Equal(t, []notify.Kind{notify.KindError}, kinds(f.queue.Drain()))
}

func TestGoalStore_Delete(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	goal := f.create(t, "doomed")
	kept := f.create(t, "kept")
	lists := f.remote.Calls(docstore.OpList)
	f.queue.Drain()

	require.NoError(t, f.store.Delete(ctx, goal.ID))

	goals := f.store.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, kept.ID, goals[0].ID)
	assert.Equal(t, lists, f.remote.Calls(docstore.OpList), "goal delete does not refetch")
	assert.Equal(t, []notify.Kind{notify.KindSuccess}, kinds(f.queue.Drain()))

	err := f.store.Delete(ctx, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
	assert.Equal(t, goals, f.store.Goals(), "second delete leaves the list intact")
	assert.Equal(t, []notify.Kind{notify.KindError}, kinds(f.queue.Drain()))
}

func TestGoalStore_DeleteFailure(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	goal := f.create(t, "stays")
	before := f.store.Goals()

	f.remote.Fail(docstore.OpDelete, errBackend)
	err := f.store.Delete(ctx, goal.ID)

	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, before, f.store.Goals())
}

func TestGoalStore_ToggleTwiceRestores(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	goal := f.create(t, "flip")

	require.NoError(t, f.store.ToggleCompleted(ctx, goal.ID))
	require.NoError(t, f.store.ToggleCompleted(ctx, goal.ID))

	goals := f.store.Goals()
	require.Len(t, goals, 1)
	assert.False(t, goals[0].Completed)
	assert.Nil(t, goals[0].DisplayCompletionDate())
	assert.Equal(t, 2, f.remote.Calls(docstore.OpUpdate))
}

func TestGoalStore_ToggleUnknownIsSilent(t *testing.T) {
	f := newGoalFixture(t)

	f.create(t, "present")
	f.queue.Drain()
	calls := f.remote.TotalCalls()

	err := f.store.ToggleCompleted(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.Equal(t, calls, f.remote.TotalCalls())
	assert.Empty(t, f.queue.Drain(), "not surfaced to the user")
}

func TestGoalStore_ToggleFailure(t *testing.T) {
	f := newGoalFixture(t)

	goal := f.create(t, "x")
	f.queue.Drain()

	f.remote.Fail(docstore.OpUpdate, errBackend)
	err := f.store.ToggleCompleted(context.Background(), goal.ID)

	assert.ErrorIs(t, err, errBackend)
	assert.False(t, f.store.Goals()[0].Completed)
	assert.Equal(t, []notify.Kind{notify.KindError}, kinds(f.queue.Drain()))
}

func TestGoalStore_FetchIdempotent(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	f.create(t, "one")
	f.create(t, "two")

	require.NoError(t, f.store.Fetch(ctx))
	first := f.store.Goals()
	require.NoError(t, f.store.Fetch(ctx))

	assert.Equal(t, first, f.store.Goals())
}

func TestGoalStore_FetchFailureKeepsList(t *testing.T) {
	f := newGoalFixture(t)

	f.create(t, "one")
	f.queue.Drain()
	before := f.store.Goals()

	f.remote.Fail(docstore.OpList, errBackend)
	err := f.store.Fetch(context.Background())

	assert.ErrorIs(t, err, errBackend)
	assert.Equal(t, before, f.store.Goals())
	assert.Equal(t, []notify.Kind{notify.KindError}, kinds(f.queue.Drain()))
	assert.False(t, f.store.Loading())
}

func TestGoalStore_Unauthenticated(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	goal := f.create(t, "mine")
	f.queue.Drain()
	before := f.store.Goals()
	calls := f.remote.TotalCalls()

	f.session.SignOut()

	ops := map[string]func() error{
		"fetch":  func() error { return f.store.Fetch(ctx) },
		"save":   func() error { return f.store.Save(ctx, model.Goal{Title: "t", Description: "d", TargetDate: time.Now()}, false, "") },
		"delete": func() error { return f.store.Delete(ctx, goal.ID) },
		"toggle": func() error { return f.store.ToggleCompleted(ctx, goal.ID) },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, op(), ErrUnauthenticated)
			assert.Equal(t, []notify.Kind{notify.KindWarning}, kinds(f.queue.Drain()))
		})
	}

	assert.Equal(t, calls, f.remote.TotalCalls())
	assert.Equal(t, before, f.store.Goals())
	assert.False(t, f.store.Loading())
}

func TestGoalStore_RequestEditOpensForm(t *testing.T) {
	f := newGoalFixture(t)

	goal := f.create(t, "editable")

	opened := 0
	unsubscribe := f.store.OnOpenRequest(func() { opened++ })

	f.store.RequestEdit(goal)

	form := f.store.Form()
	assert.Equal(t, 1, opened)
	assert.True(t, form.IsEdit)
	assert.Equal(t, goal.ID, form.EditID)
	assert.Equal(t, goal.Title, form.Title)
	assert.Equal(t, goal.Description, form.Description)
	assert.True(t, goal.TargetDate.Equal(form.TargetDate))

	unsubscribe()
	f.store.RequestCreate()
	assert.Equal(t, 1, opened, "unsubscribed listeners are not called")
	assert.Equal(t, GoalForm{}, f.store.Form())
}

func TestGoalStore_SaveFormUsesEditMode(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	goal := f.create(t, "before")
	f.store.RequestEdit(goal)
	f.store.EditForm(func(form *GoalForm) {
		form.Title = "after"
		form.IsEdit = false
	})

	require.NoError(t, f.store.SaveForm(ctx))

	goals := f.store.Goals()
	require.Len(t, goals, 1)
	assert.Equal(t, "after", goals[0].Title)
	assert.Equal(t, GoalForm{}, f.store.Form(), "form resets after save")
}

func TestGoalStore_EnsureFetched(t *testing.T) {
	f := newGoalFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.EnsureFetched(ctx))
	require.NoError(t, f.store.EnsureFetched(ctx))

	assert.True(t, f.store.Fetched())
	assert.Equal(t, 1, f.remote.Calls(docstore.OpList))
}

func TestGoalStore_Stats(t *testing.T) {
	f := newGoalFixture(t)

	a := f.create(t, "a")
	f.create(t, "b")
	require.NoError(t, f.store.ToggleCompleted(context.Background(), a.ID))

	assert.Equal(t, model.GoalStats{Total: 2, Completed: 1, Pending: 1}, f.store.Stats())
}
