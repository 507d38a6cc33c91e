package models

// BadgeTypeStreak marks badges earned from the consecutive-submission
// counter. Any other badge type names a procedure and is earned from the
// completed-case count.
const BadgeTypeStreak = "streak"

// Badge is an entry of the immutable, process-wide badge catalog.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Requirement int    `json:"requirement"`
	Type        string `json:"type"`
}
