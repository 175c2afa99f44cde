package domain

// Role type to distinguish API callers.
type Role string

const RoleCoach Role = "coach"

// Coach is the single account allowed to use the API when auth is enabled.
// Credentials come from configuration, not from a slot.
type Coach struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
