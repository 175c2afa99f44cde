package domain

import "time"

// TrainingCycle is a multi-week block (mesocycle) with a single goal.
// CurrentWeek stays within [1, TotalWeeks].
type TrainingCycle struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Goal           string    `json:"goal"`
	TotalWeeks     int       `json:"totalWeeks"`
	CurrentWeek    int       `json:"currentWeek"`
	StartDate      time.Time `json:"startDate"`
	MacroPhaseLink string    `json:"macroPhaseLink,omitempty"` // optional link to an annual phase
}
