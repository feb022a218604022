package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/9910597111/BlindSketch-Game/internal/model"
	"github.com/9910597111/BlindSketch-Game/internal/services/room"
)

// Client message types. Everything else a client can observe arrives as a
// server event.
const (
	msgJoinRoom      = "join_room"
	msgStartGame     = "start_game"
	msgSelectWord    = "select_word"
	msgChatMessage   = "chat_message"
	msgDrawingUpdate = "drawing_update"
)

// clientMessage is the inbound wire envelope
type clientMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type joinRoomRequest struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	// PlayerID is optional: room creators present the ID minted for them at
	// creation so the started room recognizes them.
	PlayerID string `json:"playerId,omitempty"`
}

type selectWordRequest struct {
	Word string `json:"word"`
}

type chatRequest struct {
	Text string `json:"text"`
}

// session is the per-socket read loop. It owns the mapping from one websocket
// to one player in one room; game state itself lives in the room coordinator.
type session struct {
	hub      *Hub
	registry *room.Registry
	conn     *connection
	logger   *slog.Logger

	playerID model.PlayerID
	roomID   model.RoomID
	coord    *room.Coordinator
}

func newSession(hub *Hub, registry *room.Registry, conn *connection, logger *slog.Logger) *session {
	return &session{
		hub:      hub,
		registry: registry,
		conn:     conn,
		logger:   logger,
	}
}

// run reads client messages until the socket closes, then detaches the
// player from the room.
func (s *session) run(ctx context.Context) {
	defer s.teardown(ctx)

	s.conn.ws.SetReadLimit(maxMessageSize)
	s.conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.ws.SetPongHandler(func(string) error {
		s.conn.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := s.conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket closed unexpectedly", slog.String("error", err.Error()))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.sendError("invalid message format")
			continue
		}

		s.handle(ctx, msg)
	}
}

func (s *session) handle(ctx context.Context, msg clientMessage) {
	if s.coord == nil {
		if msg.Type == msgJoinRoom {
			s.handleJoin(ctx, msg.Data)
		} else {
			s.sendError("join a room first")
		}
		return
	}

	switch msg.Type {
	case msgJoinRoom:
		s.sendError("already in a room")
	case msgStartGame:
		if err := s.coord.StartGame(ctx, s.playerID); err != nil {
			s.sendError(err.Error())
		}
	case msgSelectWord:
		var req selectWordRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			s.sendError("invalid message format")
			return
		}
		if err := s.coord.SelectWord(ctx, s.playerID, req.Word); err != nil {
			s.sendError(err.Error())
		}
	case msgChatMessage:
		var req chatRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil || req.Text == "" {
			s.sendError("invalid message format")
			return
		}
		// A correct guess is consumed by the turn; anything else is chat.
		if !s.coord.SubmitGuess(ctx, s.playerID, req.Text) {
			s.coord.RecordChat(ctx, s.playerID, req.Text)
		}
	case msgDrawingUpdate:
		s.coord.UpdateDrawing(ctx, s.playerID, msg.Data)
	default:
		s.sendError("unknown message type")
	}
}

func (s *session) handleJoin(ctx context.Context, data json.RawMessage) {
	var req joinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendError("invalid message format")
		return
	}

	coord, err := s.registry.Get(model.RoomID(req.RoomID))
	if err != nil {
		s.sendError(err.Error())
		return
	}

	playerID := model.PlayerID(req.PlayerID)
	if playerID == "" {
		playerID = model.PlayerID(uuid.NewString())
	}

	// Register before joining so the player sees their own join broadcast.
	s.hub.Register(coord.Room().ID, playerID, s.conn)

	if _, err := coord.Join(ctx, playerID, req.Username); err != nil {
		s.hub.Unregister(coord.Room().ID, playerID, s.conn)
		s.sendError(err.Error())
		return
	}

	s.coord = coord
	s.playerID = playerID
	s.roomID = coord.Room().ID
	s.logger = s.logger.With(
		slog.String("room_id", string(s.roomID)),
		slog.String("player_id", string(playerID)),
	)

	s.hub.SendTo(playerID, model.NewEvent(model.EventRoomJoined, coord.Snapshot(ctx, playerID)))
}

func (s *session) teardown(ctx context.Context) {
	s.conn.close()
	if s.coord == nil {
		return
	}

	s.hub.Unregister(s.roomID, s.playerID, s.conn)
	if err := s.coord.Leave(ctx, s.playerID); err != nil && !errors.Is(err, model.ErrNotInRoom) {
		s.logger.Warn("failed to detach player", slog.String("error", err.Error()))
	}
}

// sendError delivers an error event to this connection only
func (s *session) sendError(message string) {
	payload, err := json.Marshal(model.NewEvent(model.EventError, model.ErrorData{Message: message}))
	if err != nil {
		return
	}
	s.conn.enqueue(payload)
}
