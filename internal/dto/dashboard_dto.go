package dto

import "github.com/sainanduk/problemsolving-go/internal/repository"

// DifficultyBreakdown counts solved questions per difficulty level.
type DifficultyBreakdown struct {
	Easy   int64 `json:"easy"`
	Medium int64 `json:"medium"`
	Hard   int64 `json:"hard"`
}

// DashboardResponse summarises a user's progress across the catalog.
type DashboardResponse struct {
	Solved       int64                         `json:"solved"`
	Attempted    int64                         `json:"attempted"`
	NotAttempted int64                         `json:"not_attempted"`
	Difficulty   DifficultyBreakdown           `json:"difficulty"`
	Tags         []repository.NamedSolvedCount `json:"tags"`
	Companies    []repository.NamedSolvedCount `json:"companies"`
}

// ActivityResponse is the per-day submission count series.
type ActivityResponse struct {
	Submissions []repository.DailySubmissionCount `json:"submissions"`
}
