package models

import "time"

type ResearchType string

const (
	ResearchTypeProject ResearchType = "project"
	ResearchTypePatent  ResearchType = "patent"
	ResearchTypeYukti   ResearchType = "yukti"
	ResearchTypePaper   ResearchType = "research-paper"
)

func IsValidResearchType(researchType string) bool {
	switch researchType {
	case "project", "patent", "yukti", "research-paper":
		return true
	default:
		return false
	}
}

type ResearchStatus string

const (
	ResearchStatusOngoing   ResearchStatus = "ongoing"
	ResearchStatusCompleted ResearchStatus = "completed"
	ResearchStatusPublished ResearchStatus = "published"
)

func IsValidResearchStatus(status string) bool {
	switch status {
	case "ongoing", "completed", "published":
		return true
	default:
		return false
	}
}

// Research is a research entry owned by a user. It never affects quota,
// streaks or badges.
type Research struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        ResearchType   `json:"type"`
	Description string         `json:"description,omitempty"`
	Status      ResearchStatus `json:"status"`
	Validated   bool           `json:"validated"`
	ClientRef   string         `json:"clientRef,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
