package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/djwooster/agora-leaderboard/internal/models"
)

var today = time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

func day(offset int) string {
	return today.AddDate(0, 0, offset).Format(model.DateLayout)
}

func participant(id, name string) model.Participant {
	return model.Participant{ID: id, ChallengeID: "ch1", Name: name, AvatarEmoji: "💪"}
}

func metric(id string, pointsPerUnit float64, dailyMax *float64) model.Metric {
	return model.Metric{ID: id, ChallengeID: "ch1", Name: id, Unit: "u", PointsPerUnit: pointsPerUnit, DailyMax: dailyMax}
}

func log(participantID, metricID string, value float64, date string) model.Log {
	return model.Log{ParticipantID: participantID, MetricID: metricID, Value: value, LogDate: date}
}

func f(v float64) *float64 { return &v }

func TestComputeEmptyParticipants(t *testing.T) {
	entries := Compute(nil, []model.Metric{metric("m1", 10, nil)}, nil, today)
	assert.Empty(t, entries)
}

func TestComputeNoMetrics(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		nil,
		[]model.Log{log("p1", "m1", 5, day(0))},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 0.0, entries[0].TotalPoints)
	assert.Equal(t, 1, entries[0].Rank)
	// le log existe quand même: todayLogged reste vrai
	assert.True(t, entries[0].TodayLogged)
}

func TestUncappedMetric(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 10, nil)},
		[]model.Log{log("p1", "m1", 3, day(0))},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 30.0, entries[0].TotalPoints)
	assert.Equal(t, 30.0, entries[0].TodayPoints)
}

func TestDailyMaxCapsBeforeRate(t *testing.T) {
	// 25000 pas plafonnés à 20000, à 0.001 pt/pas -> 20.0
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("steps", 0.001, f(20000))},
		[]model.Log{log("p1", "steps", 25000, day(0))},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 20.0, entries[0].TotalPoints)
}

func TestCapIsPerDayPerMetric(t *testing.T) {
	// Le plafond ne s'étend ni sur plusieurs jours ni sur d'autres métriques
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("steps", 0.001, f(20000)), metric("workouts", 10, nil)},
		[]model.Log{
			log("p1", "steps", 30000, day(-1)),
			log("p1", "steps", 30000, day(0)),
			log("p1", "workouts", 30000, day(0)),
		},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 20.0+20.0+300000.0, entries[0].TotalPoints)
	assert.Equal(t, 20.0+300000.0, entries[0].TodayPoints)
}

func TestUnknownMetricSkipped(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 10, nil)},
		[]model.Log{
			log("p1", "m1", 2, day(0)),
			log("p1", "deleted-metric", 100, day(0)),
		},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 20.0, entries[0].TotalPoints)
	// la valeur brute reste visible dans la vue dailyLogs
	assert.Equal(t, 100.0, entries[0].DailyLogs[day(0)]["deleted-metric"])
}

func TestRoundingToOneDecimal(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 0.001, nil)},
		[]model.Log{log("p1", "m1", 12345, day(0))},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 12.3, entries[0].TotalPoints)
}

func TestTotalsIncludeLogsOutsideChallengeWindow(t *testing.T) {
	// Politique héritée: tout l'historique compte, borné à aucune fenêtre
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 5, day(-400)),
			log("p1", "m1", 5, day(0)),
		},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 10.0, entries[0].TotalPoints)
	assert.Equal(t, 5.0, entries[0].TodayPoints)
}

func TestNegativeValuesFlowThrough(t *testing.T) {
	// Le moteur ne valide pas: une valeur négative produit des points négatifs
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 10, nil)},
		[]model.Log{log("p1", "m1", -2, day(0))},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, -20.0, entries[0].TotalPoints)
}

func TestCompetitionRanking(t *testing.T) {
	// Scores [100, 100, 80] -> rangs [1, 1, 3]
	entries := Compute(
		[]model.Participant{participant("p1", "Alex"), participant("p2", "Brie"), participant("p3", "Caro")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 100, day(0)),
			log("p2", "m1", 100, day(0)),
			log("p3", "m1", 80, day(0)),
		},
		today,
	)
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestTieBreakKeepsInputOrder(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex"), participant("p2", "Brie")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 50, day(0)),
			log("p2", "m1", 50, day(0)),
		},
		today,
	)
	require.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].Participant.ID)
	assert.Equal(t, "p2", entries[1].Participant.ID)
}

func TestRankingMonotonic(t *testing.T) {
	entries := Compute(
		[]model.Participant{
			participant("p1", "Alex"), participant("p2", "Brie"),
			participant("p3", "Caro"), participant("p4", "Dani"),
		},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 10, day(0)),
			log("p2", "m1", 70, day(0)),
			log("p3", "m1", 70, day(-1)),
			log("p4", "m1", 40, day(0)),
		},
		today,
	)
	require.Len(t, entries, 4)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].TotalPoints, entries[i].TotalPoints)
		if entries[i].TotalPoints == entries[i-1].TotalPoints {
			assert.Equal(t, entries[i-1].Rank, entries[i].Rank)
		} else {
			assert.Equal(t, i+1, entries[i].Rank)
		}
	}
}

func TestStreakConsecutiveIncludingToday(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 1, day(-2)),
			log("p1", "m1", 1, day(-1)),
			log("p1", "m1", 1, day(0)),
		},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Streak)
}

func TestStreakSurvivesMissingToday(t *testing.T) {
	// Pas encore loggé aujourd'hui: le streak se calcule depuis hier
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 1, day(-2)),
			log("p1", "m1", 1, day(-1)),
		},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Streak)
	assert.False(t, entries[0].TodayLogged)
}

func TestStreakBreaksAfterTwoMissedDays(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 1, day(-4)),
			log("p1", "m1", 1, day(-3)),
			log("p1", "m1", 1, day(-2)),
		},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].Streak)
}

func TestStreakGapResetsCount(t *testing.T) {
	// Trou à D-2: seuls D-1 et D comptent
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 1, day(-4)),
			log("p1", "m1", 1, day(-3)),
			log("p1", "m1", 1, day(-1)),
			log("p1", "m1", 1, day(0)),
		},
		today,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Streak)
}

func TestZeroValueLogCountsAsLoggedButNotStreak(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 10, nil)},
		[]model.Log{log("p1", "m1", 0, day(0))},
		today,
	)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].TodayLogged)
	assert.Equal(t, 0, entries[0].Streak)
	assert.Equal(t, 0.0, entries[0].TotalPoints)
}

func TestStreakZeroIffNoPositiveLog(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex"), participant("p2", "Brie")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 0, day(-1)),
			log("p1", "m1", 0, day(0)),
			log("p2", "m1", 0.5, day(0)),
		},
		today,
	)
	require.Len(t, entries, 2)
	byID := map[string]model.LeaderboardEntry{}
	for _, e := range entries {
		byID[e.Participant.ID] = e
	}
	assert.Equal(t, 0, byID["p1"].Streak)
	assert.Equal(t, 1, byID["p2"].Streak)
}

func TestStreakCrossesMonthBoundary(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("m1", 1, nil)},
		[]model.Log{
			log("p1", "m1", 1, "2026-02-27"),
			log("p1", "m1", 1, "2026-02-28"),
			log("p1", "m1", 1, "2026-03-01"),
			log("p1", "m1", 1, "2026-03-02"),
		},
		at,
	)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Streak)
}

func TestDeterministic(t *testing.T) {
	participants := []model.Participant{participant("p1", "Alex"), participant("p2", "Brie")}
	metrics := []model.Metric{metric("m1", 2.5, f(10))}
	logs := []model.Log{
		log("p1", "m1", 4, day(-1)),
		log("p1", "m1", 12, day(0)),
		log("p2", "m1", 7, day(0)),
	}

	first := Compute(participants, metrics, logs, today)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(participants, metrics, logs, today))
	}
}

// L'addition flottante n'est pas associative: si les jours ou les métriques
// étaient sommés dans l'ordre d'itération des maps, le dernier bit du total
// varierait d'une exécution à l'autre et une égalité de rang pourrait sauter.
func TestDeterministicSummationOrder(t *testing.T) {
	participants := []model.Participant{participant("p1", "Alex"), participant("p2", "Brie")}

	// 0.1 n'est pas représentable exactement: ces sommes exposent l'ordre
	metrics := []model.Metric{
		metric("m1", 0.1, nil),
		metric("m2", 0.7, nil),
		metric("m3", 0.3, nil),
	}
	logs := []model.Log{}
	for offset := -30; offset <= 0; offset++ {
		for _, m := range []string{"m1", "m2", "m3"} {
			logs = append(logs, log("p1", m, 1.1, day(offset)))
			logs = append(logs, log("p2", m, 1.1, day(offset)))
		}
	}

	first := Compute(participants, metrics, logs, today)
	for i := 0; i < 50; i++ {
		entries := Compute(participants, metrics, logs, today)
		require.Equal(t, first, entries)
		// scores strictement identiques: rang partagé, ordre d'entrée conservé
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, 1, entries[1].Rank)
		assert.Equal(t, "Alex", entries[0].Participant.Name)
	}
}

func TestDailyLogsViewKeepsRawValues(t *testing.T) {
	entries := Compute(
		[]model.Participant{participant("p1", "Alex")},
		[]model.Metric{metric("steps", 0.001, f(20000))},
		[]model.Log{log("p1", "steps", 25000, day(0))},
		today,
	)
	require.Len(t, entries, 1)
	// la vue drill-down expose la valeur loggée, pas la valeur plafonnée
	assert.Equal(t, 25000.0, entries[0].DailyLogs[day(0)]["steps"])
}
