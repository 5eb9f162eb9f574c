// Package notify fournit le canal de notification de changement: toute
// écriture sur les participants ou les logs d'un challenge publie un
// événement, et les abonnés refont un fetch complet puis recalculent.
package notify

import (
	"sync"
)

// Event signale qu'un challenge doit être rechargé
type Event struct {
	ChallengeID string `json:"challengeId"`
	Type        string `json:"type"` // "refresh"
}

type subscriber struct {
	challengeID string
	ch          chan Event
}

// Hub distribue les événements par challenge, en mémoire du process.
// Les envois sont non bloquants: un abonné lent perd des événements,
// ce qui est sans conséquence puisqu'il refetch l'état complet.
type Hub struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe retourne un canal d'événements pour un challenge et une
// fonction d'annulation à appeler quand l'abonné se déconnecte
func (h *Hub) Subscribe(challengeID string) (<-chan Event, func()) {
	sub := &subscriber{challengeID: challengeID, ch: make(chan Event, 8)}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.ch)
		}
		h.mu.Unlock()
	}

	return sub.ch, cancel
}

// Publish notifie tous les abonnés d'un challenge
func (h *Hub) Publish(challengeID string) {
	event := Event{ChallengeID: challengeID, Type: "refresh"}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if sub.challengeID != challengeID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// abonné saturé: il refetchera au prochain événement reçu
		}
	}
}

// SubscriberCount retourne le nombre d'abonnés d'un challenge
func (h *Hub) SubscriberCount(challengeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	count := 0
	for sub := range h.subs {
		if sub.challengeID == challengeID {
			count++
		}
	}
	return count
}
