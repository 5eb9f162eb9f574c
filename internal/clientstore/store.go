// Package clientstore persiste l'état côté client: "qui suis-je" par
// challenge et l'historique des challenges visités. Équivalent explicite
// du localStorage du front, injecté dans la couche de présentation au
// lieu d'être lu comme état global ambiant.
package clientstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	model "github.com/djwooster/agora-leaderboard/internal/models"
)

// maxRecent plafonne l'historique des challenges visités
const maxRecent = 20

type RecentChallenge struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ShareToken string    `json:"shareToken"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	VisitedAt  time.Time `json:"visitedAt"`
}

type state struct {
	// challengeID -> participant choisi sur ce challenge
	Identities map[string]model.Participant `json:"identities"`
	Recent     []RecentChallenge            `json:"recentChallenges"`
}

type Store struct {
	path  string
	state state
}

// DefaultPath retourne le chemin du fichier d'état dans le répertoire
// de configuration utilisateur
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agora", "state.json"), nil
}

// Open charge le store depuis un fichier, le créant au premier usage.
// Un fichier corrompu est reparti de zéro plutôt que de bloquer le client.
func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		state: state{Identities: map[string]model.Participant{}},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read client state: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		s.state = state{Identities: map[string]model.Participant{}}
	}
	if s.state.Identities == nil {
		s.state.Identities = map[string]model.Participant{}
	}

	return s, nil
}

// Identity retourne le participant mémorisé pour un challenge
func (s *Store) Identity(challengeID string) (model.Participant, bool) {
	p, ok := s.state.Identities[challengeID]
	return p, ok
}

// SetIdentity mémorise "qui je suis" sur un challenge
func (s *Store) SetIdentity(challengeID string, p model.Participant) error {
	s.state.Identities[challengeID] = p
	return s.save()
}

// ClearIdentity oublie l'identité d'un challenge (participant supprimé côté admin)
func (s *Store) ClearIdentity(challengeID string) error {
	delete(s.state.Identities, challengeID)
	return s.save()
}

// TouchRecent enregistre une visite: dédupliqué par challenge, le plus
// récent en tête, historique plafonné à maxRecent
func (s *Store) TouchRecent(rc RecentChallenge) error {
	rc.VisitedAt = time.Now()

	filtered := make([]RecentChallenge, 0, len(s.state.Recent)+1)
	filtered = append(filtered, rc)
	for _, existing := range s.state.Recent {
		if existing.ID != rc.ID {
			filtered = append(filtered, existing)
		}
	}
	if len(filtered) > maxRecent {
		filtered = filtered[:maxRecent]
	}
	s.state.Recent = filtered

	return s.save()
}

// Recent retourne l'historique, le plus récemment visité d'abord
func (s *Store) Recent() []RecentChallenge {
	recent := make([]RecentChallenge, len(s.state.Recent))
	copy(recent, s.state.Recent)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].VisitedAt.After(recent[j].VisitedAt)
	})
	return recent
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("could not create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}
