// Package leaderboard contient le moteur de scoring: fonction pure, sans
// état ni I/O, relancée intégralement sur chaque snapshot frais.
package leaderboard

import (
	"math"
	"sort"
	"time"

	model "github.com/djwooster/agora-leaderboard/internal/models"
)

// Compute calcule le classement d'un challenge à partir d'un snapshot complet.
// Déterministe pour un même (participants, metrics, logs, today); les entrées
// vides ne provoquent jamais d'erreur. L'ordre d'entrée des participants sert
// de départage en cas d'égalité parfaite (ordre de création côté serveur).
func Compute(participants []model.Participant, metrics []model.Metric, logs []model.Log, today time.Time) []model.LeaderboardEntry {
	todayStr := today.Format(model.DateLayout)

	// Lookup: participantId -> date -> metricId -> valeur
	logMap := make(map[string]model.DailyLogs)
	for _, l := range logs {
		if logMap[l.ParticipantID] == nil {
			logMap[l.ParticipantID] = model.DailyLogs{}
		}
		if logMap[l.ParticipantID][l.LogDate] == nil {
			logMap[l.ParticipantID][l.LogDate] = map[string]float64{}
		}
		logMap[l.ParticipantID][l.LogDate][l.MetricID] = l.Value
	}

	metricMap := make(map[string]model.Metric, len(metrics))
	for _, m := range metrics {
		metricMap[m.ID] = m
	}

	entries := make([]model.LeaderboardEntry, 0, len(participants))
	for _, p := range participants {
		dailyLogs := logMap[p.ID]
		if dailyLogs == nil {
			dailyLogs = model.DailyLogs{}
		}

		// Total sur tout l'historique de logs. Les dates sont sommées en
		// ordre trié: l'addition flottante n'est pas associative, et l'ordre
		// d'itération d'une map changerait le dernier bit d'une exécution à
		// l'autre.
		var totalPoints float64
		for _, date := range sortedDates(dailyLogs) {
			totalPoints += dayPoints(dailyLogs[date], metricMap)
		}

		todayLog := dailyLogs[todayStr]
		todayPoints := dayPoints(todayLog, metricMap)

		entries = append(entries, model.LeaderboardEntry{
			Participant: p,
			TotalPoints: roundTenth(totalPoints),
			TodayPoints: roundTenth(todayPoints),
			TodayLogged: len(todayLog) > 0, // une valeur à 0 compte comme loggé
			Streak:      computeStreak(dailyLogs, today),
			DailyLogs:   dailyLogs,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})

	// Classement "competition": les ex aequo partagent le rang,
	// le rang suivant saute du nombre d'ex aequo
	currentRank := 1
	for i := range entries {
		if i > 0 && entries[i].TotalPoints < entries[i-1].TotalPoints {
			currentRank = i + 1
		}
		entries[i].Rank = currentRank
	}

	return entries
}

func sortedDates(dailyLogs model.DailyLogs) []string {
	dates := make([]string, 0, len(dailyLogs))
	for date := range dailyLogs {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// dayPoints applique le barème sur les valeurs d'une journée, métriques en
// ordre trié pour une somme reproductible. Le plafond DailyMax s'applique
// avant le taux, indépendamment par (métrique, jour). Une métrique inconnue
// est ignorée (tolérance: sa contribution vaut zéro).
func dayPoints(metricValues map[string]float64, metricMap map[string]model.Metric) float64 {
	metricIDs := make([]string, 0, len(metricValues))
	for metricID := range metricValues {
		metricIDs = append(metricIDs, metricID)
	}
	sort.Strings(metricIDs)

	var points float64
	for _, metricID := range metricIDs {
		m, ok := metricMap[metricID]
		if !ok {
			continue
		}
		capped := metricValues[metricID]
		if m.DailyMax != nil {
			capped = math.Min(capped, *m.DailyMax)
		}
		points += capped * m.PointsPerUnit
	}
	return points
}

// computeStreak compte les jours actifs consécutifs se terminant aujourd'hui,
// ou hier si rien n'est encore loggé aujourd'hui (le streak survit à une
// journée en cours). Un jour est actif s'il a au moins une valeur > 0:
// un log à zéro marque todayLogged mais n'alimente pas le streak.
func computeStreak(dailyLogs model.DailyLogs, today time.Time) int {
	activeDates := make(map[string]bool)
	for date, metricValues := range dailyLogs {
		for _, v := range metricValues {
			if v > 0 {
				activeDates[date] = true
				break
			}
		}
	}

	if len(activeDates) == 0 {
		return 0
	}

	date := today
	if !activeDates[date.Format(model.DateLayout)] {
		date = date.AddDate(0, 0, -1)
	}

	streak := 0
	for activeDates[date.Format(model.DateLayout)] {
		streak++
		date = date.AddDate(0, 0, -1)
	}
	return streak
}

// roundTenth arrondit au dixième (round half away from zero)
func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
