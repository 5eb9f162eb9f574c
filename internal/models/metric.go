package model

import (
	"time"
)

// Metric est une dimension scorée d'un challenge.
// Immutable après création pour préserver les logs existants.
type Metric struct {
	ID            string    `json:"id"`
	ChallengeID   string    `json:"challengeId"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit"`
	PointsPerUnit float64   `json:"pointsPerUnit"`
	DailyMax      *float64  `json:"dailyMax,omitempty"` // nil = pas de plafond
	SortOrder     int       `json:"sortOrder"`
	CreatedAt     time.Time `json:"createdAt"`
}
