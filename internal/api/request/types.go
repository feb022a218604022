package request

import "github.com/9910597111/BlindSketch-Game/internal/model"

// CreateRoom is the request body for creating a room. Zero-valued fields
// fall back to the defaults.
type CreateRoom struct {
	Name            string `json:"name"`
	MaxPlayers      int    `json:"maxPlayers"`
	TotalRounds     int    `json:"totalRounds"`
	RoundDuration   int    `json:"roundDuration"`
	WordChoiceCount int    `json:"wordChoiceCount"`
	HintCount       *int   `json:"hintCount,omitempty"`
	IsPrivate       bool   `json:"isPrivate"`
}

// ToConfig merges the request with the default configuration
func (r CreateRoom) ToConfig() model.RoomConfig {
	config := model.DefaultRoomConfig()
	config.Name = r.Name
	config.IsPrivate = r.IsPrivate
	if r.MaxPlayers > 0 {
		config.MaxPlayers = r.MaxPlayers
	}
	if r.TotalRounds > 0 {
		config.TotalRounds = r.TotalRounds
	}
	if r.RoundDuration > 0 {
		config.RoundDuration = r.RoundDuration
	}
	if r.WordChoiceCount > 0 {
		config.WordChoiceCount = r.WordChoiceCount
	}
	if r.HintCount != nil {
		config.HintCount = *r.HintCount
	}
	return config
}
