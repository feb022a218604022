package model

import "time"

// RoomID uniquely identifies a room
type RoomID string

// RoomStatus represents the lifecycle phase of a room
type RoomStatus string

const (
	RoomStatusWaiting  RoomStatus = "waiting"  // Players gathering, game not started
	RoomStatusPlaying  RoomStatus = "playing"  // Game in progress
	RoomStatusFinished RoomStatus = "finished" // Game over (terminal)
)

// RoomConfig holds the settings a room is created with
type RoomConfig struct {
	Name            string `json:"name"`
	MaxPlayers      int    `json:"maxPlayers"`
	TotalRounds     int    `json:"totalRounds"`
	RoundDuration   int    `json:"roundDuration"` // seconds per turn
	WordChoiceCount int    `json:"wordChoiceCount"`
	HintCount       int    `json:"hintCount"`
	IsPrivate       bool   `json:"isPrivate"`
}

// DefaultRoomConfig returns the default room configuration
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		MaxPlayers:      8,
		TotalRounds:     5,
		RoundDuration:   60,
		WordChoiceCount: 3,
		HintCount:       2,
		IsPrivate:       false,
	}
}

// Validate checks that the configuration is internally consistent
func (c RoomConfig) Validate() error {
	if c.MaxPlayers < 2 || c.MaxPlayers > 20 {
		return ErrInvalidRoomConfig
	}
	if c.TotalRounds < 1 || c.TotalRounds > 20 {
		return ErrInvalidRoomConfig
	}
	if c.RoundDuration < 10 || c.RoundDuration > 300 {
		return ErrInvalidRoomConfig
	}
	if c.WordChoiceCount < 1 || c.WordChoiceCount > 10 {
		return ErrInvalidRoomConfig
	}
	if c.HintCount < 0 || c.HintCount >= c.RoundDuration {
		return ErrInvalidRoomConfig
	}
	return nil
}

// Room represents one game session: identity, configuration, and live turn state.
//
// Invariant: CurrentWord is non-empty only while Status is playing and
// CurrentDrawerID is set. CurrentRound never decreases while playing.
type Room struct {
	ID        RoomID     `json:"id"`
	CreatorID PlayerID   `json:"creatorId"`
	Config    RoomConfig `json:"config"`
	Status    RoomStatus `json:"status"`

	// Turn state. CurrentRound is 1-indexed, 0 before the game starts.
	CurrentRound    int       `json:"currentRound"`
	CurrentDrawerID PlayerID  `json:"currentDrawerId,omitempty"`
	CurrentWord     string    `json:"-"` // never serialized to clients
	TurnStartedAt   time.Time `json:"turnStartedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
