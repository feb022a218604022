package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/9910597111/BlindSketch-Game/internal/model"
	"github.com/9910597111/BlindSketch-Game/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	rooms    map[model.RoomID]*model.Room
	players  map[model.PlayerID]*model.Player
	chat     map[model.RoomID][]*model.ChatMessage
	drawings map[model.RoomID]*model.DrawingState
	words    []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:    make(map[model.RoomID]*model.Room),
		players:  make(map[model.PlayerID]*model.Player),
		chat:     make(map[model.RoomID][]*model.ChatMessage),
		drawings: make(map[model.RoomID]*model.DrawingState),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *room
	s.rooms[room.ID] = &copied
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, id model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *player
	s.players[player.ID] = &copied
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

func (s *Storage) GetPlayersByRoom(ctx context.Context, roomID model.RoomID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []*model.Player
	for _, p := range s.players {
		if p.RoomID == roomID {
			copied := *p
			players = append(players, &copied)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].JoinOrder < players[j].JoinOrder
	})
	return players, nil
}

// Chat operations

func (s *Storage) SaveChatMessage(ctx context.Context, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *msg
	s.chat[msg.RoomID] = append(s.chat[msg.RoomID], &copied)
	return nil
}

func (s *Storage) GetChatMessages(ctx context.Context, roomID model.RoomID, limit int) ([]*model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.chat[roomID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	out := make([]*model.ChatMessage, len(msgs))
	for i, m := range msgs {
		copied := *m
		out[i] = &copied
	}
	return out, nil
}

func (s *Storage) DeleteChatMessages(ctx context.Context, roomID model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chat, roomID)
	return nil
}

// Drawing state operations

func (s *Storage) SaveDrawing(ctx context.Context, drawing *model.DrawingState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *drawing
	s.drawings[drawing.RoomID] = &copied
	return nil
}

func (s *Storage) GetDrawing(ctx context.Context, roomID model.RoomID) (*model.DrawingState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	drawing, ok := s.drawings[roomID]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	copied := *drawing
	return &copied, nil
}

func (s *Storage) DeleteDrawing(ctx context.Context, roomID model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drawings, roomID)
	return nil
}

// Word list operations

func (s *Storage) SaveWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = append([]string(nil), words...)
	return nil
}

func (s *Storage) GetWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.words...), nil
}
