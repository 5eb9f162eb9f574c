package model

import (
	"time"
)

type Challenge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   string    `json:"startDate"` // YYYY-MM-DD
	EndDate     string    `json:"endDate"`   // YYYY-MM-DD
	ShareToken  string    `json:"shareToken"`
	AdminToken  string    `json:"adminToken,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ChallengeWithMetrics struct {
	Challenge
	Metrics []Metric `json:"metrics"`
}

// AdminView regroupe tout ce que la page admin affiche
type AdminView struct {
	Challenge    Challenge     `json:"challenge"`
	Metrics      []Metric      `json:"metrics"`
	Participants []Participant `json:"participants"`
}

// NewChallengeRequest est le payload de création d'un challenge (wizard)
type NewChallengeRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Metrics     []NewMetricRequest `json:"metrics"`
}

type NewMetricRequest struct {
	Name          string   `json:"name"`
	Unit          string   `json:"unit"`
	PointsPerUnit float64  `json:"pointsPerUnit"`
	DailyMax      *float64 `json:"dailyMax,omitempty"`
}
