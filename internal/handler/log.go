package handler

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/djwooster/agora-leaderboard/internal/database"
	model "github.com/djwooster/agora-leaderboard/internal/models"
	"github.com/djwooster/agora-leaderboard/internal/scanner"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

// validateLogBatch retourne un message d'erreur utilisateur, ou "".
// Les valeurs passent validées au moteur: négatifs, NaN, Inf et métriques
// d'un autre challenge sont rejetés ici, à la frontière.
func validateLogBatch(entries []model.LogEntryRequest, metricIDs map[string]bool) string {
	for _, entry := range entries {
		if !metricIDs[entry.MetricID] {
			return "metric does not belong to this challenge"
		}
		if entry.Value < 0 || math.IsNaN(entry.Value) || math.IsInf(entry.Value, 0) {
			return "values must be zero or positive"
		}
	}
	return ""
}

// UpsertLogs enregistre les valeurs d'un participant pour une date (défaut:
// aujourd'hui). Un log existant pour le même (participant, métrique, jour)
// est remplacé, pas cumulé.
func UpsertLogs(w http.ResponseWriter, r *http.Request) {
	participantID := mux.Vars(r)["id"]
	ctx := r.Context()

	participant, err := loadParticipant(ctx, participantID)
	if err != nil {
		if err == pgx.ErrNoRows {
			utils.ErrorSimple(w, http.StatusNotFound, "participant not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load participant", err)
		return
	}

	var req model.LogBatchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	logDate := req.LogDate
	if logDate == "" {
		logDate = time.Now().Format(model.DateLayout)
	}
	if _, err := time.Parse(model.DateLayout, logDate); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "logDate must be YYYY-MM-DD")
		return
	}

	if len(req.Entries) == 0 {
		utils.ErrorSimple(w, http.StatusBadRequest, "enter at least one value to log")
		return
	}

	challengeMetrics, err := loadMetrics(ctx, participant.ChallengeID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load metrics", err)
		return
	}
	metricIDs := make(map[string]bool, len(challengeMetrics))
	for _, m := range challengeMetrics {
		metricIDs[m.ID] = true
	}

	if msg := validateLogBatch(req.Entries, metricIDs); msg != "" {
		utils.ErrorSimple(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	for _, entry := range req.Entries {
		_, err = tx.Exec(ctx, `
			INSERT INTO logs(id, participant_id, metric_id, value, log_date)
			VALUES($1, $2, $3, $4, $5)
			ON CONFLICT (participant_id, metric_id, log_date)
			DO UPDATE SET value = EXCLUDED.value
		`, uuid.NewString(), participant.ID, entry.MetricID, entry.Value, logDate)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not save logs", err)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit logs", err)
		return
	}

	Hub.Publish(participant.ChallengeID)

	utils.Message(w, "logs saved")
}

// GetParticipantLogs récupère les logs d'un participant, filtrables par date
// (pré-remplissage du formulaire du jour)
func GetParticipantLogs(w http.ResponseWriter, r *http.Request) {
	participantID := mux.Vars(r)["id"]
	date := r.URL.Query().Get("date")
	ctx := r.Context()

	query := `
		SELECT id, participant_id, metric_id, value, log_date, created_at
		FROM logs
		WHERE participant_id = $1
		ORDER BY log_date ASC`
	args := []interface{}{participantID}

	if date != "" {
		if _, err := time.Parse(model.DateLayout, date); err != nil {
			utils.ErrorSimple(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		query = `
			SELECT id, participant_id, metric_id, value, log_date, created_at
			FROM logs
			WHERE participant_id = $1 AND log_date = $2
			ORDER BY created_at ASC`
		args = append(args, date)
	}

	rows, err := database.DB.Query(ctx, query, args...)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not query logs", err)
		return
	}
	defer rows.Close()

	logs := []model.Log{}
	for rows.Next() {
		l, err := scanner.ScanLog(rows)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not scan log row", err)
			return
		}
		logs = append(logs, *l)
	}

	utils.Success(w, logs)
}

func loadParticipant(ctx context.Context, participantID string) (*model.Participant, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT id, challenge_id, name, avatar_emoji, created_at
		FROM participants
		WHERE id = $1
	`, participantID)
	return scanner.ScanParticipant(row)
}
