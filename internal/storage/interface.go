package storage

import (
	"context"

	"github.com/9910597111/BlindSketch-Game/internal/model"
)

// Storage defines the interface for data persistence. The in-memory room
// coordinator is the source of truth for turn logic; storage is a best-effort
// mirror plus durable records (chat history, word list).
type Storage interface {
	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	DeleteRoom(ctx context.Context, id model.RoomID) error

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
	// GetPlayersByRoom returns the room's players sorted by join order.
	GetPlayersByRoom(ctx context.Context, roomID model.RoomID) ([]*model.Player, error)

	// Chat operations
	SaveChatMessage(ctx context.Context, msg *model.ChatMessage) error
	// GetChatMessages returns up to limit most recent messages in
	// chronological order.
	GetChatMessages(ctx context.Context, roomID model.RoomID, limit int) ([]*model.ChatMessage, error)
	DeleteChatMessages(ctx context.Context, roomID model.RoomID) error

	// Drawing state operations (single slot per room)
	SaveDrawing(ctx context.Context, drawing *model.DrawingState) error
	GetDrawing(ctx context.Context, roomID model.RoomID) (*model.DrawingState, error)
	DeleteDrawing(ctx context.Context, roomID model.RoomID) error

	// Word list operations
	SaveWords(ctx context.Context, words []string) error
	GetWords(ctx context.Context) ([]string, error)
}
