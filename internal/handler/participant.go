package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/djwooster/agora-leaderboard/internal/database"
	"github.com/djwooster/agora-leaderboard/internal/middleware"
	model "github.com/djwooster/agora-leaderboard/internal/models"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

const uniqueViolation = "23505"

// isUniqueViolation détecte un conflit de contrainte UNIQUE postgres
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// JoinChallenge ajoute un participant auto-identifié au challenge.
// Le nom est unique par challenge: le conflit devient un 409 lisible.
func JoinChallenge(w http.ResponseWriter, r *http.Request) {
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

	var req model.JoinRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "name is required")
		return
	}

	participant := model.Participant{
		ID:          uuid.NewString(),
		ChallengeID: challenge.ID,
		Name:        name,
		AvatarEmoji: utils.NormalizeAvatarEmoji(req.AvatarEmoji),
	}

	err = database.DB.QueryRow(ctx, `
		INSERT INTO participants(id, challenge_id, name, avatar_emoji)
		VALUES($1, $2, $3, $4)
		RETURNING created_at
	`,
		participant.ID, participant.ChallengeID, participant.Name, participant.AvatarEmoji,
	).Scan(&participant.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			utils.ErrorSimple(w, http.StatusConflict, "that name is already taken")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not join challenge", err)
		return
	}

	Hub.Publish(challenge.ID)

	utils.Created(w, participant)
}

// RemoveParticipant supprime un participant et, par cascade, tous ses logs.
// Protégé par AdminMiddleware.
func RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	challenge, err := middleware.GetChallengeFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "admin context missing")
		return
	}

	participantID := mux.Vars(r)["id"]
	ctx := r.Context()

	res, err := database.DB.Exec(ctx, `
		DELETE FROM participants
		WHERE id = $1 AND challenge_id = $2
	`, participantID, challenge.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not remove participant", err)
		return
	}

	if res.RowsAffected() == 0 {
		utils.ErrorSimple(w, http.StatusNotFound, "participant not found")
		return
	}

	Hub.Publish(challenge.ID)

	utils.Message(w, "participant removed")
}
