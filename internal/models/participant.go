package model

import (
	"time"
)

type Participant struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challengeId"`
	Name        string    `json:"name"` // unique au sein d'un challenge
	AvatarEmoji string    `json:"avatarEmoji"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JoinRequest est le payload d'auto-identification d'un participant
type JoinRequest struct {
	Name        string `json:"name"`
	AvatarEmoji string `json:"avatarEmoji"`
}
