package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/djwooster/agora-leaderboard/internal/models"
)

func validRequest() model.NewChallengeRequest {
	max := 20000.0
	return model.NewChallengeRequest{
		Name:      "January Fitness Blitz",
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
		Metrics: []model.NewMetricRequest{
			{Name: "Workouts", Unit: "sessions", PointsPerUnit: 10},
			{Name: "Steps", Unit: "steps", PointsPerUnit: 0.001, DailyMax: &max},
		},
	}
}

func TestValidateNewChallenge(t *testing.T) {
	req := validRequest()
	assert.Empty(t, validateNewChallenge(&req))
}

func TestValidateNewChallengeRejects(t *testing.T) {
	negative := -5.0

	tests := []struct {
		name   string
		mutate func(*model.NewChallengeRequest)
		want   string
	}{
		{"blank name", func(r *model.NewChallengeRequest) { r.Name = "  " }, "challenge name is required"},
		{"bad start date", func(r *model.NewChallengeRequest) { r.StartDate = "01/01/2026" }, "start date must be YYYY-MM-DD"},
		{"bad end date", func(r *model.NewChallengeRequest) { r.EndDate = "" }, "end date must be YYYY-MM-DD"},
		{"end before start", func(r *model.NewChallengeRequest) { r.EndDate = "2025-12-01" }, "end date must be after start date"},
		{"end equals start", func(r *model.NewChallengeRequest) { r.EndDate = r.StartDate }, "end date must be after start date"},
		{"no metrics", func(r *model.NewChallengeRequest) { r.Metrics = nil }, "add at least one metric"},
		{"metric without name", func(r *model.NewChallengeRequest) { r.Metrics[0].Name = "" }, "all metrics need a name"},
		{"metric without unit", func(r *model.NewChallengeRequest) { r.Metrics[1].Unit = " " }, "all metrics need a unit"},
		{"zero rate", func(r *model.NewChallengeRequest) { r.Metrics[0].PointsPerUnit = 0 }, "points per unit must be positive"},
		{"negative cap", func(r *model.NewChallengeRequest) { r.Metrics[0].DailyMax = &negative }, "daily max cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assert.Equal(t, tt.want, validateNewChallenge(&req))
		})
	}
}
