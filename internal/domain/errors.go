package domain

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrNotHost          = errors.New("only the host can perform this action")
	ErrSeatTaken        = errors.New("player position is already taken")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrPlayerNotFound   = errors.New("player not found in room")
)
