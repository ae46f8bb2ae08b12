package model

import (
	"sort"
	"time"
)

type Goal struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	TargetDate           time.Time  `json:"target_date"`
	ActualCompletionDate *time.Time `json:"actual_completion_date,omitempty"`
	Completed            bool       `json:"completed"`
	CreatedAt            time.Time  `json:"created_at"`
}

// DisplayCompletionDate returns the completion date only while the goal is completed.
// A stored date on an incomplete goal is stale and never shown.
func (g *Goal) DisplayCompletionDate() *time.Time {
	if !g.Completed {
		return nil
	}
	return g.ActualCompletionDate
}

// SortGoals orders incomplete goals before completed ones, newest first within each group.
func SortGoals(goals []Goal) {
	sort.SliceStable(goals, func(i, j int) bool {
		if goals[i].Completed != goals[j].Completed {
			return !goals[i].Completed
		}
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
}
