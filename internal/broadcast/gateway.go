package broadcast

import "github.com/9910597111/BlindSketch-Game/internal/model"

// Gateway delivers events to connected players. Delivery is best-effort and
// must never block the caller: a missing or dead connection is silently
// skipped so a slow client cannot stall a room.
type Gateway interface {
	// SendTo delivers an event to a single player's connection.
	SendTo(playerID model.PlayerID, event model.Event)

	// Broadcast delivers an event to every connected player in a room,
	// except those listed in exclude.
	Broadcast(roomID model.RoomID, event model.Event, exclude ...model.PlayerID)
}
