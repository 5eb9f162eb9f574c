package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/djwooster/agora-leaderboard/internal/database"
	"github.com/djwooster/agora-leaderboard/internal/leaderboard"
	model "github.com/djwooster/agora-leaderboard/internal/models"
	"github.com/djwooster/agora-leaderboard/internal/scanner"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

// GetChallengeLeaderboard recharge un snapshot complet et recalcule le
// classement. Pas d'agrégat incrémental: N reste petit, le recalcul
// intégral est toujours assez rapide.
func GetChallengeLeaderboard(w http.ResponseWriter, r *http.Request) {
	shareToken := mux.Vars(r)["shareToken"]
	ctx := r.Context()

	challenge, err := loadChallenge(ctx, shareToken)
	if err != nil {
		if err == pgx.ErrNoRows {
			utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load challenge", err)
		return
	}

	participants, metrics, logs, err := loadSnapshot(ctx, challenge.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load snapshot", err)
		return
	}

	entries := leaderboard.Compute(participants, metrics, logs, time.Now())

	utils.Success(w, entries)
}

// loadSnapshot fournit les trois collections du moteur de scoring.
// Les participants sortent triés par date de création: cet ordre est
// le départage des ex aequo.
func loadSnapshot(ctx context.Context, challengeID string) ([]model.Participant, []model.Metric, []model.Log, error) {
	participants, err := loadParticipants(ctx, challengeID)
	if err != nil {
		return nil, nil, nil, err
	}

	metrics, err := loadMetrics(ctx, challengeID)
	if err != nil {
		return nil, nil, nil, err
	}

	rows, err := database.DB.Query(ctx, `
		SELECT l.id, l.participant_id, l.metric_id, l.value, l.log_date, l.created_at
		FROM logs l
		JOIN participants p ON l.participant_id = p.id
		WHERE p.challenge_id = $1
	`, challengeID)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rows.Close()

	logs := []model.Log{}
	for rows.Next() {
		l, err := scanner.ScanLog(rows)
		if err != nil {
			return nil, nil, nil, err
		}
		logs = append(logs, *l)
	}

	return participants, metrics, logs, rows.Err()
}
