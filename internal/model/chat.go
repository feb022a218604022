package model

import (
	"encoding/json"
	"time"
)

// ChatMessage is a chat record for a room. System messages have no author.
type ChatMessage struct {
	RoomID          RoomID    `json:"roomId"`
	PlayerID        PlayerID  `json:"playerId,omitempty"` // empty for system messages
	Username        string    `json:"username"`
	Message         string    `json:"message"`
	IsSystemMessage bool      `json:"isSystemMessage"`
	IsCorrectGuess  bool      `json:"isCorrectGuess"`
	Timestamp       time.Time `json:"timestamp"`
}

// SystemUsername is the author name attached to system chat messages
const SystemUsername = "System"

// NewSystemMessage builds a system chat record for a room
func NewSystemMessage(roomID RoomID, text string, correctGuess bool, at time.Time) *ChatMessage {
	return &ChatMessage{
		RoomID:          roomID,
		Username:        SystemUsername,
		Message:         text,
		IsSystemMessage: true,
		IsCorrectGuess:  correctGuess,
		Timestamp:       at,
	}
}

// DrawingState is the single-slot-per-room canvas blob. The stroke data is
// opaque to the server; it is stored and relayed without interpretation.
type DrawingState struct {
	RoomID        RoomID          `json:"roomId"`
	Strokes       json.RawMessage `json:"strokes,omitempty"`
	HintsRevealed int             `json:"hintsRevealed"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
