package model

import "errors"

// Common errors used across the application. Races that are expected game
// outcomes (acting on an already-resolved turn) are silent no-ops, not errors.
var (
	// Room errors
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrGameFinished        = errors.New("game is already finished")
	ErrAlreadyStarted      = errors.New("game has already started")
	ErrInsufficientPlayers = errors.New("need at least 2 players to start")
	ErrNotAuthorized       = errors.New("only the room creator can start the game")
	ErrInvalidRoomConfig   = errors.New("invalid room configuration")

	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNotInRoom       = errors.New("player is not in this room")
	ErrInvalidUsername = errors.New("username must be 2-20 characters of letters, digits, _ or -")

	// Turn errors
	ErrInvalidWordChoice = errors.New("word is not in the offered choices")

	// Word source errors
	ErrWordsNotLoaded = errors.New("word list not loaded")
)
