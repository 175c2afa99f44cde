package domain

// ClassType is one of the studio's class formats.
type ClassType string

const (
	ClassHybrid    ClassType = "Functional Hybrid"
	ClassStrongman ClassType = "Strongman Focus"
	ClassEndurance ClassType = "Endurance"
	ClassPilates   ClassType = "Pilates Mat / Yoga"
)

// ClassTypes lists every class type in display order.
var ClassTypes = []ClassType{ClassHybrid, ClassStrongman, ClassEndurance, ClassPilates}

// Valid reports whether c is one of the enumerated class types.
func (c ClassType) Valid() bool {
	for _, ct := range ClassTypes {
		if c == ct {
			return true
		}
	}
	return false
}

// Workout is one generated training session.
// Timestamp (epoch ms) is fixed at creation; edits only replace Content.
type Workout struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"` // markdown
	ClassType    ClassType `json:"classType"`
	DisplayDate  string    `json:"displayDate"` // e.g. "Mon, 20"
	Timestamp    int64     `json:"timestamp"`
	LastEditedAt *int64    `json:"lastEditedAt,omitempty"`
}
