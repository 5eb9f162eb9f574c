package scanner

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow rejoue des valeurs dans l'ordre des colonnes attendues
type fakeRow struct {
	values []interface{}
}

func (f fakeRow) Scan(dest ...interface{}) error {
	for i, d := range dest {
		switch v := d.(type) {
		case *string:
			*v = f.values[i].(string)
		case *bool:
			*v = f.values[i].(bool)
		case *int:
			*v = f.values[i].(int)
		case *float64:
			*v = f.values[i].(float64)
		case *time.Time:
			*v = f.values[i].(time.Time)
		case *sql.NullString:
			*v = f.values[i].(sql.NullString)
		case *sql.NullFloat64:
			*v = f.values[i].(sql.NullFloat64)
		}
	}
	return nil
}

func TestScanChallenge(t *testing.T) {
	created := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	row := fakeRow{values: []interface{}{
		"ch1", "January Blitz",
		sql.NullString{String: "30 days", Valid: true},
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		"abc123defg", "admintoken", true, created,
	}}

	c, err := ScanChallenge(row)
	require.NoError(t, err)
	assert.Equal(t, "ch1", c.ID)
	assert.Equal(t, "2026-01-01", c.StartDate)
	assert.Equal(t, "2026-01-31", c.EndDate)
	require.NotNil(t, c.Description)
	assert.Equal(t, "30 days", *c.Description)
}

func TestScanChallengeNullDescription(t *testing.T) {
	row := fakeRow{values: []interface{}{
		"ch1", "January Blitz", sql.NullString{},
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		"abc123defg", "admintoken", true, time.Now(),
	}}

	c, err := ScanChallenge(row)
	require.NoError(t, err)
	assert.Nil(t, c.Description)
}

func TestScanMetric(t *testing.T) {
	row := fakeRow{values: []interface{}{
		"m1", "ch1", "Steps", "steps", 0.001,
		sql.NullFloat64{Float64: 20000, Valid: true}, 1, time.Now(),
	}}

	m, err := ScanMetric(row)
	require.NoError(t, err)
	assert.Equal(t, 0.001, m.PointsPerUnit)
	require.NotNil(t, m.DailyMax)
	assert.Equal(t, 20000.0, *m.DailyMax)
}

func TestScanMetricNoCap(t *testing.T) {
	row := fakeRow{values: []interface{}{
		"m1", "ch1", "Workouts", "sessions", 10.0, sql.NullFloat64{}, 0, time.Now(),
	}}

	m, err := ScanMetric(row)
	require.NoError(t, err)
	assert.Nil(t, m.DailyMax)
}

func TestScanLog(t *testing.T) {
	row := fakeRow{values: []interface{}{
		"l1", "p1", "m1", 25000.0,
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), time.Now(),
	}}

	l, err := ScanLog(row)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-15", l.LogDate)
	assert.Equal(t, 25000.0, l.Value)
}
