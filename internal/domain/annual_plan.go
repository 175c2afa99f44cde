package domain

// Intensity of an annual phase.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
	IntensityPeak   Intensity = "Peak"
)

// Valid reports whether i is a known intensity level.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityLow, IntensityMedium, IntensityHigh, IntensityPeak:
		return true
	}
	return false
}

// Percent is the relative load used when charting a plan.
func (i Intensity) Percent() int {
	switch i {
	case IntensityLow:
		return 25
	case IntensityMedium:
		return 50
	case IntensityHigh:
		return 75
	case IntensityPeak:
		return 100
	}
	return 0
}

// AnnualPhase is the outline for one calendar month.
type AnnualPhase struct {
	Month     string    `json:"month"`
	Goal      string    `json:"goal"`
	Intensity Intensity `json:"intensity"`
	Focus     string    `json:"focus"`
}

// AnnualPlan (macrocycle) holds exactly 12 phases, January first.
type AnnualPlan struct {
	ID     string        `json:"id"`
	Year   int           `json:"year"`
	Name   string        `json:"name"`
	Phases []AnnualPhase `json:"phases"`
}

// MonthsPerPlan is the number of phases in every plan.
const MonthsPerPlan = 12
