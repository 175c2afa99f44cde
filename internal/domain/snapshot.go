package domain

import "time"

// Snapshot is the full-state export document.
type Snapshot struct {
	History     []Workout      `json:"history"`
	ActiveCycle *TrainingCycle `json:"activeCycle"`
	AnnualPlan  *AnnualPlan    `json:"annualPlan,omitempty"`
	Equipment   []Equipment    `json:"equipment"`
	Benchmarks  []Benchmark    `json:"benchmarks"`
	ExportDate  time.Time      `json:"exportDate"`
}
