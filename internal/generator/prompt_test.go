package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/locale"
)

func testBuilder() PromptBuilder {
	return PromptBuilder{Locale: locale.New("en"), ClassSize: 12}
}

var targetDate = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC) // Monday

func TestBuild_MinimalRequest(t *testing.T) {
	p := testBuilder().Build(Request{ClassType: domain.ClassEndurance, TargetDate: targetDate})

	assert.Contains(t, p, "PROGRAM THE SESSION FOR: MONDAY 2 MARCH")
	assert.Contains(t, p, "CLASS TYPE: Endurance")
	assert.Contains(t, p, "Phase: general maintenance")
	assert.Contains(t, p, "Design a balanced and fun session.")
	assert.Contains(t, p, "12 people per class.")
	assert.Contains(t, p, "No recent data.")
	assert.Contains(t, p, "Standard equipment")
	assert.NotContains(t, p, "STUDIO BENCHMARKS")
	assert.NotContains(t, p, "ANNUAL PLAN")
}

func TestBuild_FullContext(t *testing.T) {
	phases := make([]domain.AnnualPhase, 12)
	for i := range phases {
		phases[i] = domain.AnnualPhase{Goal: "General Maintenance", Intensity: domain.IntensityMedium, Focus: "Balanced"}
	}
	phases[2] = domain.AnnualPhase{Goal: "Strength", Intensity: domain.IntensityHigh, Focus: "Posterior chain"}

	req := Request{
		ClassType:  domain.ClassStrongman,
		Focus:      "  sled and carries ",
		TargetDate: targetDate,
		Context: ContextBundle{
			RecentHistory: []domain.Workout{
				{DisplayDate: "Sun, 1", ClassType: domain.ClassHybrid, Content: "# Upper Body Pump\nbody"},
				{DisplayDate: "Sat, 28", ClassType: domain.ClassPilates, Content: "\n\n**Core Flow**"},
				{DisplayDate: "Fri, 27", ClassType: domain.ClassEndurance, Content: ""},
				{DisplayDate: "Thu, 26", ClassType: domain.ClassHybrid, Content: "Too old to mention"},
			},
			Cycle:      &domain.TrainingCycle{Name: "Base", Goal: "Aerobic base", TotalWeeks: 6, CurrentWeek: 2},
			Plan:       &domain.AnnualPlan{Name: "Macrocycle 2026", Phases: phases},
			Phase:      &phases[2],
			Equipment:  []domain.Equipment{{Name: "Rower", Quantity: 2}, {Name: "Kettlebells", Quantity: 5}},
			Benchmarks: []domain.Benchmark{{Name: "Fran", Category: domain.BenchmarkGirl, Description: "21-15-9"}},
		},
	}

	p := testBuilder().Build(req)

	assert.Contains(t, p, "CURRENT CYCLE: Base (week 2/6). Goal: Aerobic base")
	assert.Contains(t, p, "FOCUS OF THE DAY: sled and carries")
	assert.Contains(t, p, "Use the available inventory wisely")
	assert.Contains(t, p, "ANNUAL PLAN (Macrocycle 2026, March): goal Strength, intensity High, focus Posterior chain")
	assert.Contains(t, p, "- Sun, 1 (Functional Hybrid): Upper Body Pump")
	assert.Contains(t, p, "- Sat, 28 (Pilates Mat / Yoga): Core Flow")
	assert.Contains(t, p, "- Fri, 27 (Endurance): no summary")
	assert.NotContains(t, p, "Too old to mention")
	assert.Contains(t, p, "Rower (2 units), Kettlebells (5 units)")
	assert.Contains(t, p, "- Fran [Girl]: 21-15-9")
}

func TestBuild_Deterministic(t *testing.T) {
	req := Request{ClassType: domain.ClassHybrid, Focus: "legs", TargetDate: targetDate}
	assert.Equal(t, testBuilder().Build(req), testBuilder().Build(req))
}

func TestBuild_PlanWithoutPhaseIgnored(t *testing.T) {
	req := Request{
		ClassType:  domain.ClassHybrid,
		TargetDate: targetDate,
		Context:    ContextBundle{Plan: &domain.AnnualPlan{Name: "Broken"}},
	}
	assert.False(t, strings.Contains(testBuilder().Build(req), "ANNUAL PLAN"))
}
