package handler

import (
	"net/http"

	"github.com/djwooster/agora-leaderboard/internal/notify"
	"github.com/djwooster/agora-leaderboard/internal/utils"
)

// Hub distribue les événements de changement aux clients websocket.
// Toute écriture sur les participants ou les logs publie dessus.
var Hub = notify.NewHub()

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.Message(w, "ok")
}
