package domain

// BenchmarkCategory classifies a benchmark workout or lift.
type BenchmarkCategory string

const (
	BenchmarkGirl   BenchmarkCategory = "Girl"
	BenchmarkHero   BenchmarkCategory = "Hero"
	BenchmarkLift   BenchmarkCategory = "Lift"
	BenchmarkCustom BenchmarkCategory = "Custom"
)

func (c BenchmarkCategory) Valid() bool {
	switch c {
	case BenchmarkGirl, BenchmarkHero, BenchmarkLift, BenchmarkCustom:
		return true
	}
	return false
}

// Benchmark is a reference test the studio tracks over time.
type Benchmark struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    BenchmarkCategory `json:"category"`
	Description string            `json:"description"`
}
