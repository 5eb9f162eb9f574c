package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/djwooster/agora-leaderboard/internal/database"
	"github.com/djwooster/agora-leaderboard/internal/middleware"
	model "github.com/djwooster/agora-leaderboard/internal/models"
	"github.com/djwooster/agora-leaderboard/internal/scanner"
	"github.com/djwooster/agora-leaderboard/internal/tokens"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

// validateNewChallenge retourne un message d'erreur utilisateur, ou ""
func validateNewChallenge(req *model.NewChallengeRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "challenge name is required"
	}
	start, err := time.Parse(model.DateLayout, req.StartDate)
	if err != nil {
		return "start date must be YYYY-MM-DD"
	}
	end, err := time.Parse(model.DateLayout, req.EndDate)
	if err != nil {
		return "end date must be YYYY-MM-DD"
	}
	if !end.After(start) {
		return "end date must be after start date"
	}
	if len(req.Metrics) == 0 {
		return "add at least one metric"
	}
	for _, m := range req.Metrics {
		if strings.TrimSpace(m.Name) == "" {
			return "all metrics need a name"
		}
		if strings.TrimSpace(m.Unit) == "" {
			return "all metrics need a unit"
		}
		if m.PointsPerUnit <= 0 {
			return "points per unit must be positive"
		}
		if m.DailyMax != nil && *m.DailyMax < 0 {
			return "daily max cannot be negative"
		}
	}
	return ""
}

// CreateChallenge crée un challenge et ses métriques en une transaction.
// Les métriques sont immuables ensuite pour préserver les logs existants.
func CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req model.NewChallengeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if msg := validateNewChallenge(&req); msg != "" {
		utils.ErrorSimple(w, http.StatusBadRequest, msg)
		return
	}

	shareToken, err := tokens.NewShareToken()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not generate share token", err)
		return
	}
	adminToken, err := tokens.NewAdminToken()
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not generate admin token", err)
		return
	}

	var description *string
	if d := strings.TrimSpace(req.Description); d != "" {
		description = &d
	}

	ctx := r.Context()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not start transaction", err)
		return
	}
	defer tx.Rollback(ctx)

	challenge := model.Challenge{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ShareToken:  shareToken,
		AdminToken:  adminToken,
		IsActive:    true,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO challenges(id, name, description, start_date, end_date, share_token, admin_token, is_active)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`,
		challenge.ID, challenge.Name, utils.PointerToNullString(challenge.Description),
		challenge.StartDate, challenge.EndDate, challenge.ShareToken, challenge.AdminToken, challenge.IsActive,
	).Scan(&challenge.CreatedAt)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create challenge", err)
		return
	}

	metrics := make([]model.Metric, 0, len(req.Metrics))
	for i, m := range req.Metrics {
		metric := model.Metric{
			ID:            uuid.NewString(),
			ChallengeID:   challenge.ID,
			Name:          strings.TrimSpace(m.Name),
			Unit:          strings.TrimSpace(m.Unit),
			PointsPerUnit: m.PointsPerUnit,
			DailyMax:      m.DailyMax,
			SortOrder:     i,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO metrics(id, challenge_id, name, unit, points_per_unit, daily_max, sort_order)
			VALUES($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at
		`,
			metric.ID, metric.ChallengeID, metric.Name, metric.Unit,
			metric.PointsPerUnit, utils.PointerToNullFloat64(metric.DailyMax), metric.SortOrder,
		).Scan(&metric.CreatedAt)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not create metrics", err)
			return
		}
		metrics = append(metrics, metric)
	}

	if err := tx.Commit(ctx); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not commit challenge", err)
		return
	}

	// Seule réponse (avec la vue admin) qui expose le token admin
	utils.Created(w, model.ChallengeWithMetrics{Challenge: challenge, Metrics: metrics})
}

// GetChallengeByShareToken récupère un challenge et ses métriques (lecture publique)
func GetChallengeByShareToken(w http.ResponseWriter, r *http.Request) {
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

	metrics, err := loadMetrics(ctx, challenge.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load metrics", err)
		return
	}

	// Le token admin ne sort jamais par le lien de partage
	challenge.AdminToken = ""

	utils.Success(w, model.ChallengeWithMetrics{Challenge: *challenge, Metrics: metrics})
}

// GetAdminView récupère challenge, métriques et participants, tokens inclus.
// Protégé par AdminMiddleware.
func GetAdminView(w http.ResponseWriter, r *http.Request) {
	challenge, err := middleware.GetChallengeFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "admin context missing")
		return
	}

	ctx := r.Context()

	metrics, err := loadMetrics(ctx, challenge.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load metrics", err)
		return
	}

	participants, err := loadParticipants(ctx, challenge.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not load participants", err)
		return
	}

	utils.Success(w, model.AdminView{
		Challenge:    challenge,
		Metrics:      metrics,
		Participants: participants,
	})
}

func loadChallenge(ctx context.Context, shareToken string) (*model.Challenge, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT id, name, description, start_date, end_date,
			share_token, admin_token, is_active, created_at
		FROM challenges
		WHERE share_token = $1
	`, shareToken)
	return scanner.ScanChallenge(row)
}

func loadMetrics(ctx context.Context, challengeID string) ([]model.Metric, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, challenge_id, name, unit, points_per_unit, daily_max, sort_order, created_at
		FROM metrics
		WHERE challenge_id = $1
		ORDER BY sort_order ASC
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []model.Metric{}
	for rows.Next() {
		m, err := scanner.ScanMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *m)
	}
	return metrics, rows.Err()
}

func loadParticipants(ctx context.Context, challengeID string) ([]model.Participant, error) {
	// L'ordre de création sert de départage des ex aequo au classement
	rows, err := database.DB.Query(ctx, `
		SELECT id, challenge_id, name, avatar_emoji, created_at
		FROM participants
		WHERE challenge_id = $1
		ORDER BY created_at ASC
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []model.Participant{}
	for rows.Next() {
		p, err := scanner.ScanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, *p)
	}
	return participants, rows.Err()
}
