package handler

import (
	"net/http"

	"github.com/djwooster/agora-leaderboard/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Agora API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"challenges": []map[string]string{
				{"method": "POST", "path": "/challenges", "description": "Créer un challenge avec ses métriques"},
				{"method": "GET", "path": "/challenges/{shareToken}", "description": "Challenge et métriques via le lien de partage"},
				{"method": "GET", "path": "/challenges/{shareToken}/leaderboard", "description": "Classement calculé du challenge"},
				{"method": "GET", "path": "/challenges/{shareToken}/ws", "description": "Websocket: refresh à chaque changement"},
				{"method": "GET", "path": "/challenges/{shareToken}/admin", "description": "Vue admin (param: key)"},
			},
			"participants": []map[string]string{
				{"method": "POST", "path": "/challenges/{shareToken}/participants", "description": "Rejoindre le challenge (nom unique)"},
				{"method": "DELETE", "path": "/challenges/{shareToken}/participants/{id}", "description": "Retirer un participant (param: key)"},
			},
			"logs": []map[string]string{
				{"method": "PUT", "path": "/participants/{id}/logs", "description": "Upsert des valeurs d'une journée"},
				{"method": "GET", "path": "/participants/{id}/logs", "description": "Logs d'un participant (param: date)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour Agora - Challenges fitness de groupe",
		},
	}

	utils.Success(w, routes)
}
