package model

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type ActivityStatus string

const (
	ActivityStatusInProgress ActivityStatus = "in_progress"
	ActivityStatusPaused     ActivityStatus = "paused"
	ActivityStatusCompleted  ActivityStatus = "completed"
)

const (
	DefaultActivityIcon  = "home"
	DefaultActivityColor = "#00FF00"
)

// ActivityStatuses lists every status in display order.
var ActivityStatuses = []ActivityStatus{
	ActivityStatusInProgress,
	ActivityStatusPaused,
	ActivityStatusCompleted,
}

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityStatusInProgress, ActivityStatusPaused, ActivityStatusCompleted:
		return true
	}
	return false
}

// Label returns a human readable form, e.g. "In Progress".
func (s ActivityStatus) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "_", " "))
}

type Activity struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Description          string         `json:"description"`
	Subject              string         `json:"subject"`
	TargetDate           time.Time      `json:"target_date"`
	Icon                 string         `json:"icon"`
	Color                string         `json:"color"`
	Status               ActivityStatus `json:"status"`
	ActualCompletionDate *time.Time     `json:"actual_completion_date,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
}

// DisplayCompletionDate returns the completion date only while the activity is completed.
func (a *Activity) DisplayCompletionDate() *time.Time {
	if a.Status != ActivityStatusCompleted {
		return nil
	}
	return a.ActualCompletionDate
}

// SortActivities orders activities newest first.
func SortActivities(activities []Activity) {
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
}
