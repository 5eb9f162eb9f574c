package database

import (
	"context"
	"fmt"
)

// Les contraintes d'unicité portent la sémantique métier:
// un nom de participant par challenge, un log par (participant, métrique, jour).
// Le ON DELETE CASCADE supprime métriques/participants/logs avec leur parent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS challenges (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		share_token TEXT NOT NULL UNIQUE,
		admin_token TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS metrics (
		id UUID PRIMARY KEY,
		challenge_id UUID NOT NULL REFERENCES challenges(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		unit TEXT NOT NULL,
		points_per_unit DOUBLE PRECISION NOT NULL,
		daily_max DOUBLE PRECISION,
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS participants (
		id UUID PRIMARY KEY,
		challenge_id UUID NOT NULL REFERENCES challenges(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		avatar_emoji TEXT NOT NULL DEFAULT '💪',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (challenge_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS logs (
		id UUID PRIMARY KEY,
		participant_id UUID NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
		metric_id UUID NOT NULL REFERENCES metrics(id) ON DELETE CASCADE,
		value DOUBLE PRECISION NOT NULL,
		log_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (participant_id, metric_id, log_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_metrics_challenge ON metrics(challenge_id, sort_order)`,
	`CREATE INDEX IF NOT EXISTS idx_participants_challenge ON participants(challenge_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_logs_participant ON logs(participant_id, log_date)`,
}

// Migrate applique le schéma (idempotent, exécuté au démarrage)
func Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
