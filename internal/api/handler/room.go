package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/9910597111/BlindSketch-Game/internal/api/apierr"
	"github.com/9910597111/BlindSketch-Game/internal/api/request"
	"github.com/9910597111/BlindSketch-Game/internal/api/response"
	"github.com/9910597111/BlindSketch-Game/internal/model"
	"github.com/9910597111/BlindSketch-Game/internal/services/room"
)

// RoomHandler serves the room lifecycle endpoints. Gameplay itself happens
// over the websocket; these endpoints cover discovery and creation.
type RoomHandler struct {
	registry *room.Registry
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(registry *room.Registry) *RoomHandler {
	return &RoomHandler{registry: registry}
}

// Create handles POST /api/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRoom
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	coord, creatorID, err := h.registry.CreateRoom(r.Context(), req.ToConfig())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	summary := response.RoomSummaryFromModel(coord.Room(), 0)
	response.JSON(w, http.StatusCreated, response.CreateRoomResponse{
		Room:      summary,
		CreatorID: string(creatorID),
	})
}

// Get handles GET /api/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	coord, err := h.registry.Get(id)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	players := coord.Players()
	response.JSON(w, http.StatusOK, response.RoomDetailResponse{
		Room:    response.RoomSummaryFromModel(coord.Room(), len(players)),
		Players: players,
	})
}

// JoinRandom handles GET /api/rooms/random. It picks a joinable public room;
// the caller then connects to it over the websocket as usual.
func (h *RoomHandler) JoinRandom(w http.ResponseWriter, r *http.Request) {
	coord, err := h.registry.RandomPublicRoom()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	players := coord.Players()
	response.JSON(w, http.StatusOK, response.RoomDetailResponse{
		Room:    response.RoomSummaryFromModel(coord.Room(), len(players)),
		Players: players,
	})
}
