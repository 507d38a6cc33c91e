package models

import "time"

type Procedure string

const (
	ProcedureCavity     Procedure = "cavity"
	ProcedureScaling    Procedure = "scaling"
	ProcedureExtraction Procedure = "extraction"
	ProcedureCrown      Procedure = "crown"
)

func (p Procedure) String() string {
	return string(p)
}

func IsValidProcedure(procedure string) bool {
	switch procedure {
	case "cavity", "scaling", "extraction", "crown":
		return true
	default:
		return false
	}
}

// Case is a clinical case submitted by a student. Validated is settable
// only by a teacher. ClientRef is an optional client-minted idempotency
// token used to deduplicate offline replays.
type Case struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	Procedure  Procedure `json:"procedure"`
	PatientAge int       `json:"patientAge,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Validated  bool      `json:"validated"`
	ClientRef  string    `json:"clientRef,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
