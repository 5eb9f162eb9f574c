package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"

	"github.com/djwooster/agora-leaderboard/internal/logger"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// l'accès est porté par le share token, pas par l'origine
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamChallenge pousse un événement refresh au client à chaque changement
// sur les participants ou les logs du challenge. Le client refait alors un
// fetch complet du leaderboard; aucun état n'est poussé sur le canal.
func StreamChallenge(w http.ResponseWriter, r *http.Request) {
	shareToken := mux.Vars(r)["shareToken"]

	challenge, err := loadChallenge(r.Context(), shareToken)
	if err != nil {
		if err == pgx.ErrNoRows {
			utils.ErrorSimple(w, http.StatusNotFound, "challenge not found")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not load challenge", err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade a déjà répondu au client
		logger.Warning("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := Hub.Subscribe(challenge.ID)
	defer cancel()

	// Lecture uniquement pour détecter la déconnexion
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
