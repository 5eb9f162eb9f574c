package model

import (
	"time"
)

// DateLayout est le format calendaire utilisé partout (colonne DATE, clés dailyLogs)
const DateLayout = "2006-01-02"

// Log est la valeur enregistrée par un participant pour une métrique un jour donné.
// Contrainte d'unicité sur (participant_id, metric_id, log_date): un nouvel
// enregistrement du même triplet remplace la valeur (upsert), il ne s'additionne pas.
type Log struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participantId"`
	MetricID      string    `json:"metricId"`
	Value         float64   `json:"value"`
	LogDate       string    `json:"logDate"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"createdAt"`
}

// LogEntryRequest est une valeur d'un batch d'upsert
type LogEntryRequest struct {
	MetricID string  `json:"metricId"`
	Value    float64 `json:"value"`
}

// LogBatchRequest regroupe les valeurs d'un participant pour une date
type LogBatchRequest struct {
	LogDate string            `json:"logDate,omitempty"` // défaut: aujourd'hui
	Entries []LogEntryRequest `json:"entries"`
}
