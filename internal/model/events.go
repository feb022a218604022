package model

import "encoding/json"

// EventType identifies the type of event delivered to clients
type EventType string

const (
	// Room-wide game flow events
	EventGameStarted   EventType = "game_started"
	EventWordSelected  EventType = "word_selected"
	EventHintRevealed  EventType = "hint_revealed"
	EventNewTurn       EventType = "new_turn"
	EventTurnTimeout   EventType = "turn_timeout"
	EventCorrectGuess  EventType = "correct_guess"
	EventRoundComplete EventType = "round_complete"
	EventGameEnded     EventType = "game_ended"

	// Roster events
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"

	// Relay and chat events
	EventDrawingUpdate EventType = "drawing_update"
	EventChatMessage   EventType = "chat_message"
	EventSystemMessage EventType = "system_message"

	// Private events (sent to a single player)
	EventWordChoices EventType = "word_choices"
	EventRoomJoined  EventType = "room_joined"
	EventError       EventType = "error"
)

// Event is the wire envelope delivered to connected players
type Event struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// NewEvent wraps a payload in an event envelope
func NewEvent(t EventType, data any) Event {
	return Event{Type: t, Data: data}
}

// GameStartedData announces the first drawer and round
type GameStartedData struct {
	DrawerID     PlayerID `json:"drawerId"`
	DrawerName   string   `json:"drawerName"`
	CurrentRound int      `json:"currentRound"`
	TotalRounds  int      `json:"totalRounds"`
}

// WordChoicesData is delivered privately to the drawer only
type WordChoicesData struct {
	Words []string `json:"words"`
}

// WordSelectedData announces a chosen word without revealing it:
// guessers see only the length and an all-blank display.
type WordSelectedData struct {
	WordLength    int      `json:"wordLength"`
	WordDisplay   []string `json:"wordDisplay"`
	TimeRemaining int      `json:"timeRemaining"` // seconds
}

// HintRevealedData carries the cumulative revealed positions
type HintRevealedData struct {
	HintPositions []int    `json:"hintPositions"`
	HintsRevealed int      `json:"hintsRevealed"`
	WordDisplay   []string `json:"wordDisplay"`
	TotalHints    int      `json:"totalHints"`
}

// NewTurnData announces the next drawer
type NewTurnData struct {
	DrawerID      PlayerID `json:"drawerId"`
	DrawerName    string   `json:"drawerName"`
	RoundDuration int      `json:"roundDuration"`
	CurrentRound  int      `json:"currentRound"`
	TotalRounds   int      `json:"totalRounds"`
}

// TurnTimeoutData reveals the word once the turn has timed out
type TurnTimeoutData struct {
	Word    string `json:"word"`
	Message string `json:"message"`
}

// CorrectGuessData announces the turn's winning guess
type CorrectGuessData struct {
	PlayerID   PlayerID `json:"playerId"`
	PlayerName string   `json:"playerName"`
	Word       string   `json:"word"`
	Points     int      `json:"points"`
}

// RoundCompleteData announces that the rotation wrapped into a new round
type RoundCompleteData struct {
	CompletedRound int `json:"completedRound"`
	NextRound      int `json:"nextRound"`
}

// GameEndedData carries the final standings, sorted by score descending
// with ties broken by join order.
type GameEndedData struct {
	FinalScores []Player `json:"finalScores"`
	Winner      *Player  `json:"winner,omitempty"`
}

// PlayerJoinedData announces a new roster member
type PlayerJoinedData struct {
	Player Player `json:"player"`
}

// PlayerLeftData announces a roster departure
type PlayerLeftData struct {
	PlayerID PlayerID `json:"playerId"`
	Username string   `json:"username"`
}

// DrawingUpdateData relays an opaque stroke blob to non-drawers
type DrawingUpdateData struct {
	DrawingData json.RawMessage `json:"drawingData"`
}

// ChatMessageData wraps an ordinary chat record
type ChatMessageData struct {
	Message ChatMessage `json:"message"`
}

// SystemMessageData carries a room-wide informational message
type SystemMessageData struct {
	Message string `json:"message"`
}

// ErrorData is sent only to the originating connection
type ErrorData struct {
	Message string `json:"message"`
}

// RoomJoinedData is the private snapshot sent to a player on joining
type RoomJoinedData struct {
	PlayerID     PlayerID      `json:"playerId"`
	Room         *Room         `json:"room"`
	Players      []Player      `json:"players"`
	Drawing      *DrawingState `json:"drawing,omitempty"`
	ChatMessages []ChatMessage `json:"chatMessages"`
}
