package model

import (
	"regexp"
	"time"
)

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a participant in a room
type Player struct {
	ID       PlayerID `json:"id"`
	RoomID   RoomID   `json:"roomId"`
	Username string   `json:"username"`
	Score    int      `json:"score"`
	// JoinOrder assigns turn rotation order and is the creator fallback
	// identity for legacy rooms with no recorded creator.
	JoinOrder int       `json:"joinOrder"`
	Connected bool      `json:"connected"`
	JoinedAt  time.Time `json:"joinedAt"`
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{2,20}$`)

// ValidateUsername checks the 2-20 char [A-Za-z0-9_-] username rule
func ValidateUsername(name string) error {
	if !usernamePattern.MatchString(name) {
		return ErrInvalidUsername
	}
	return nil
}
