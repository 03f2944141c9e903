package models

import "time"

const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on-hold"
)

type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	// EndDate is nil until the project has a planned end.
	EndDate   *time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusPlanning, ProjectStatusActive,
		ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}
