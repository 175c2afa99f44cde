package generator

import (
	"fmt"
	"strings"

	"functionallab/coach-os/internal/locale"
)

// SystemInstruction frames every workout request.
const SystemInstruction = `You are the head coach and programmer of a functional training studio.
Design the perfect class: profitable, fun, safe and aesthetic.

1. IDENTITY: WE ARE NOT CROSSFIT
   - Forbidden: snatches, overhead squats, technical jerks, muscle-ups, handstand walks.
   - The olympic bar is a STRENGTH tool, never a cardio tool. Allowed: back/front squat,
     deadlift, bench and strict/push press, barbell rows. Power cleans only when simple.
   - Focus on functional bodybuilding: strong people with good body composition who move well.

2. SMART LOGISTICS
   - The class is full and the floor is finite. Never put everyone on the same scarce equipment.
   - Use stations and rotations (strength, engine, accessories/core). Avoid bottlenecks.

3. PROGRAMMING INTELLIGENCE
   - Read the recent history: do not repeat the same muscular patterns on consecutive days.
   - Vary the format: EMOM, AMRAP, TABATA, intervals. Not everything is "for time".

OUTPUT (MARKDOWN):
1. Concept of the day: a catchy title.
2. Warm-up (flow): 8-10 min of mobility specific to what follows.
3. Main block: stations, work/rest times and rotations.
4. Stimulus: which muscles or energy system we target.
5. Scaling: options for beginners.`

// ChatInstruction frames the coach assistant.
const ChatInstruction = `You are the head coach of a functional training studio. Your style is direct,
technical but accessible. You dislike unnecessary risk in exercises. Your priority is that
the client comes back tomorrow: uninjured and having had fun. Answer concisely.`

// PromptBuilder renders a Request as the user prompt. Output depends only on
// the request and the builder's settings.
type PromptBuilder struct {
	Locale    locale.Locale
	ClassSize int
}

// historyMentions bounds how many recent sessions are spelled out.
const historyMentions = 3

// Build renders the prompt for req.
func (b PromptBuilder) Build(req Request) string {
	var sb strings.Builder
	ctx := req.Context

	fmt.Fprintf(&sb, "PROGRAM THE SESSION FOR: %s\n", b.Locale.Upper(b.Locale.LongDate(req.TargetDate)))
	fmt.Fprintf(&sb, "CLASS TYPE: %s\n\n", req.ClassType)

	sb.WriteString("KEY INSTRUCTIONS FOR TODAY:\n")
	if c := ctx.Cycle; c != nil {
		fmt.Fprintf(&sb, "1. CURRENT CYCLE: %s (week %d/%d). Goal: %s\n", c.Name, c.CurrentWeek, c.TotalWeeks, c.Goal)
	} else {
		sb.WriteString("1. Phase: general maintenance\n")
	}
	focus := strings.TrimSpace(req.Focus)
	if focus == "" {
		focus = "Design a balanced and fun session."
	}
	fmt.Fprintf(&sb, "2. FOCUS OF THE DAY: %s\n", focus)
	fmt.Fprintf(&sb, "3. LOGISTICS: %d people per class.", b.ClassSize)
	if len(ctx.Equipment) > 0 {
		sb.WriteString(" Use the available inventory wisely (circuits/rotations).")
	}
	sb.WriteString("\n")

	if ph := ctx.Phase; ph != nil {
		name := "annual plan"
		if ctx.Plan != nil {
			name = ctx.Plan.Name
		}
		fmt.Fprintf(&sb, "4. ANNUAL PLAN (%s, %s): goal %s, intensity %s, focus %s\n",
			name, b.Locale.MonthName(req.TargetDate.Month()), ph.Goal, ph.Intensity, ph.Focus)
	}

	sb.WriteString("\n")
	if len(ctx.RecentHistory) == 0 {
		sb.WriteString("No recent data.\n")
	} else {
		sb.WriteString("RECENT HISTORY (IMPORTANT - AVOID MUSCULAR REPETITION):\n")
		for i, w := range ctx.RecentHistory {
			if i == historyMentions {
				break
			}
			fmt.Fprintf(&sb, "- %s (%s): %s\n", w.DisplayDate, w.ClassType, headline(w.Content))
		}
	}

	sb.WriteString("\nAVAILABLE INVENTORY:\n")
	if len(ctx.Equipment) == 0 {
		sb.WriteString("Standard equipment\n")
	} else {
		items := make([]string, 0, len(ctx.Equipment))
		for _, e := range ctx.Equipment {
			items = append(items, fmt.Sprintf("%s (%d units)", e.Name, e.Quantity))
		}
		sb.WriteString(strings.Join(items, ", "))
		sb.WriteString("\n")
	}

	if len(ctx.Benchmarks) > 0 {
		sb.WriteString("\nSTUDIO BENCHMARKS (retest when it fits the cycle):\n")
		for _, bm := range ctx.Benchmarks {
			fmt.Fprintf(&sb, "- %s [%s]: %s\n", bm.Name, bm.Category, bm.Description)
		}
	}

	sb.WriteString("\nREMEMBER: no complex CrossFit. Prioritize health, aesthetics and fun. " +
		"If you use the bar, keep it basic (squat/deadlift/press).\n")
	return sb.String()
}

// headline returns the first non-empty line of markdown without heading marks.
func headline(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#*"))
		line = strings.TrimSpace(strings.TrimRight(line, "*"))
		if line != "" {
			return line
		}
	}
	return "no summary"
}
