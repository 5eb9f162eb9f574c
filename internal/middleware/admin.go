package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"github.com/djwooster/agora-leaderboard/internal/database"
	model "github.com/djwooster/agora-leaderboard/internal/models"
	"github.com/djwooster/agora-leaderboard/internal/scanner"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

// Context keys
type contextKey string

const challengeContextKey = contextKey("challenge")

// AdminMiddleware valide le token admin (?key=) contre le challenge désigné
// par {shareToken} et injecte le challenge dans le contexte. Ce n'est pas une
// session: le secret porteur EST l'autorisation.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shareToken := mux.Vars(r)["shareToken"]
		key := r.URL.Query().Get("key")
		if key == "" {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing admin key")
			return
		}

		challenge, err := loadChallengeByShareToken(r.Context(), shareToken)
		if err != nil {
			if err == pgx.ErrNoRows {
				utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
				return
			}
			utils.Error(w, http.StatusInternalServerError, "could not load challenge", err)
			return
		}

		if challenge.AdminToken != key {
			utils.ErrorSimple(w, http.StatusForbidden, "invalid admin key")
			return
		}

		ctx := context.WithValue(r.Context(), challengeContextKey, *challenge)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loadChallengeByShareToken(ctx context.Context, shareToken string) (*model.Challenge, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT id, name, description, start_date, end_date,
			share_token, admin_token, is_active, created_at
		FROM challenges
		WHERE share_token = $1
	`, shareToken)
	return scanner.ScanChallenge(row)
}

// GetChallengeFromContext récupère le challenge validé par AdminMiddleware
func GetChallengeFromContext(r *http.Request) (model.Challenge, error) {
	challenge, ok := r.Context().Value(challengeContextKey).(model.Challenge)
	if !ok {
		return model.Challenge{}, fmt.Errorf("challenge not found in context")
	}
	return challenge, nil
}
