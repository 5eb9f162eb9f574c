package scanner

import (
	"database/sql"
	"time"

	model "github.com/djwooster/agora-leaderboard/internal/models"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

// Row est satisfait par pgx.Row et pgx.Rows
type Row interface {
	Scan(dest ...interface{}) error
}

// ScanChallenge scanne une ligne SQL vers un Challenge
// Colonnes attendues: id, name, description, start_date, end_date,
// share_token, admin_token, is_active, created_at
func ScanChallenge(row Row) (*model.Challenge, error) {
	var c model.Challenge
	var description sql.NullString
	var startDate, endDate time.Time

	err := row.Scan(
		&c.ID, &c.Name, &description, &startDate, &endDate,
		&c.ShareToken, &c.AdminToken, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	c.Description = utils.NullStringToPointer(description)
	c.StartDate = startDate.Format(model.DateLayout)
	c.EndDate = endDate.Format(model.DateLayout)

	return &c, nil
}

// ScanMetric scanne une ligne SQL vers un Metric
func ScanMetric(row Row) (*model.Metric, error) {
	var m model.Metric
	var dailyMax sql.NullFloat64

	err := row.Scan(
		&m.ID, &m.ChallengeID, &m.Name, &m.Unit,
		&m.PointsPerUnit, &dailyMax, &m.SortOrder, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.DailyMax = utils.NullFloat64ToPointer(dailyMax)

	return &m, nil
}

// ScanParticipant scanne une ligne SQL vers un Participant
func ScanParticipant(row Row) (*model.Participant, error) {
	var p model.Participant

	err := row.Scan(
		&p.ID, &p.ChallengeID, &p.Name, &p.AvatarEmoji, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// ScanLog scanne une ligne SQL vers un Log
func ScanLog(row Row) (*model.Log, error) {
	var l model.Log
	var logDate time.Time

	err := row.Scan(
		&l.ID, &l.ParticipantID, &l.MetricID, &l.Value, &logDate, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.LogDate = logDate.Format(model.DateLayout)

	return &l, nil
}
