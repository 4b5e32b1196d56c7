package models

import (
	"time"

	"github.com/google/uuid"
)

// SimulationStatus tracks the linear progression of an audit simulation.
type SimulationStatus string

const (
	SimulationStatusDraft     SimulationStatus = "draft"
	SimulationStatusActive    SimulationStatus = "active"
	SimulationStatusCompleted SimulationStatus = "completed"
)

// ValidSimulationStatuses contains all valid status values.
var ValidSimulationStatuses = []SimulationStatus{
	SimulationStatusDraft,
	SimulationStatusActive,
	SimulationStatusCompleted,
}

// IsValidSimulationStatus checks if the given status is valid.
func IsValidSimulationStatus(s SimulationStatus) bool {
	for _, v := range ValidSimulationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
// Progression is strictly draft -> active -> completed.
func (s SimulationStatus) CanTransitionTo(next SimulationStatus) bool {
	switch s {
	case SimulationStatusDraft:
		return next == SimulationStatusActive
	case SimulationStatusActive:
		return next == SimulationStatusCompleted
	default:
		return false
	}
}

// FindingSeverity classifies an audit finding.
type FindingSeverity string

const (
	SeverityMinor    FindingSeverity = "minor"
	SeverityMajor    FindingSeverity = "major"
	SeverityCritical FindingSeverity = "critical"
)

// ValidFindingSeverities contains all valid severity values.
var ValidFindingSeverities = []FindingSeverity{
	SeverityMinor,
	SeverityMajor,
	SeverityCritical,
}

// IsValidFindingSeverity checks if the given severity is valid.
func IsValidFindingSeverity(s FindingSeverity) bool {
	for _, v := range ValidFindingSeverities {
		if v == s {
			return true
		}
	}
	return false
}

// AuditSimulation is a user-authored practice audit scenario tied to one
// standard from the catalog.
type AuditSimulation struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Standard    string           `json:"standard"`
	Status      SimulationStatus `json:"status"`
	Findings    []AuditFinding   `json:"findings"`
	CreatedAt   time.Time        `json:"created_at"`
}

// AuditFinding is an issue recorded against a simulation. Findings are
// owned by their parent simulation and are only ever appended.
// Section references a section ID within the simulation's standard; the
// reference is not validated (caller responsibility).
type AuditFinding struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    FindingSeverity `json:"severity"`
	Section     string          `json:"section"`
	Evidence    string          `json:"evidence,omitempty"`
}
