package model

type GoalStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type ActivityStats struct {
	Total    int                    `json:"total"`
	ByStatus map[ActivityStatus]int `json:"by_status"`
}

func NewGoalStats(goals []Goal) GoalStats {
	stats := GoalStats{Total: len(goals)}
	for _, g := range goals {
		if g.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

func NewActivityStats(activities []Activity) ActivityStats {
	stats := ActivityStats{
		Total:    len(activities),
		ByStatus: make(map[ActivityStatus]int, len(ActivityStatuses)),
	}
	for _, s := range ActivityStatuses {
		stats.ByStatus[s] = 0
	}
	for _, a := range activities {
		stats.ByStatus[a.Status]++
	}
	return stats
}
