package model

// DailyLogs est la vue brute des logs d'un participant: date -> metricId -> valeur
type DailyLogs map[string]map[string]float64

// LeaderboardEntry est une projection calculée, jamais persistée.
// Recalculée intégralement à chaque changement de snapshot.
type LeaderboardEntry struct {
	Participant Participant `json:"participant"`
	TotalPoints float64     `json:"totalPoints"` // arrondi à une décimale
	TodayPoints float64     `json:"todayPoints"` // arrondi à une décimale
	TodayLogged bool        `json:"todayLogged"`
	Streak      int         `json:"streak"`
	Rank        int         `json:"rank"` // 1-based, les ex aequo partagent le rang
	DailyLogs   DailyLogs   `json:"dailyLogs"`
}
