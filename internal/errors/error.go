package errors

import "errors"

var (
	ErrInvalidMove      = errors.New("invalid move")
	ErrMalformedBoard   = errors.New("malformed board input")
	ErrNoValidMove      = errors.New("no valid move available")
	ErrGameOver         = errors.New("game is already over")
	ErrInvalidConfig    = errors.New("invalid game configuration")
	ErrInvalidSnapshot  = errors.New("invalid game snapshot")
	ErrAnalysisNotFound = errors.New("analysis was not found")
	ErrMalformedRequest = errors.New("malformed request")
)
