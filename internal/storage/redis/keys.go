package redis

import (
	"fmt"

	"github.com/9910597111/BlindSketch-Game/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "blindsketch"

// roomKey returns the Redis key for a Room
func roomKey(id model.RoomID) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, id)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersForRoomIndexKey returns the Redis key for the SET of players in a room
func playersForRoomIndexKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:idx:players_for_room:%s", keyPrefix, roomID)
}

// chatKey returns the Redis key for a room's chat message LIST
func chatKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:chat:%s", keyPrefix, roomID)
}

// drawingKey returns the Redis key for a room's drawing state slot
func drawingKey(roomID model.RoomID) string {
	return fmt.Sprintf("%s:drawing:%s", keyPrefix, roomID)
}

// wordsKey returns the Redis key for the word list
func wordsKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}
