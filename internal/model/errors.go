package model

import "errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrNotInGame        = errors.New("player not in game")
	ErrAlreadyConnected = errors.New("player already connected to game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrOffBoard         = errors.New("invalid move, out of bounds")
	ErrIllegalMove      = errors.New("invalid move, not legal")
	ErrAlreadyQueued    = errors.New("player already in queue")
	ErrQueueTooShort    = errors.New("not enough players queued")
)
