package response

import (
	"github.com/9910597111/BlindSketch-Game/internal/model"
)

// RoomSummary is the public view of a room
type RoomSummary struct {
	ID           string           `json:"id"`
	Name         string           `json:"name,omitempty"`
	Status       model.RoomStatus `json:"status"`
	MaxPlayers   int              `json:"maxPlayers"`
	TotalRounds  int              `json:"totalRounds"`
	CurrentRound int              `json:"currentRound"`
	PlayerCount  int              `json:"playerCount"`
	IsPrivate    bool             `json:"isPrivate"`
}

// RoomSummaryFromModel builds a RoomSummary from a room and its roster size
func RoomSummaryFromModel(room model.Room, playerCount int) RoomSummary {
	return RoomSummary{
		ID:           string(room.ID),
		Name:         room.Config.Name,
		Status:       room.Status,
		MaxPlayers:   room.Config.MaxPlayers,
		TotalRounds:  room.Config.TotalRounds,
		CurrentRound: room.CurrentRound,
		PlayerCount:  playerCount,
		IsPrivate:    room.Config.IsPrivate,
	}
}

// CreateRoomResponse is returned when a room is created. The creator ID is
// the caller's claim: presenting it when joining over the websocket marks
// that player as the room's creator.
type CreateRoomResponse struct {
	Room      RoomSummary `json:"room"`
	CreatorID string      `json:"creatorId"`
}

// RoomDetailResponse is the full room view including the roster
type RoomDetailResponse struct {
	Room    RoomSummary    `json:"room"`
	Players []model.Player `json:"players"`
}
