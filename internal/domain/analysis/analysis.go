package analysis

import (
	"time"

	"filler/internal/domain/game"
)

type Candidate struct {
	Color game.Color `json:"color"`
	Value int        `json:"value"`
}

// Analysis is a finished search for one position, as cached and served.
type Analysis struct {
	Color      game.Color  `json:"color"`
	Value      int         `json:"value"`
	Depth      int         `json:"depth"`
	Side       game.Player `json:"side"`
	Candidates []Candidate `json:"candidates"`
	Nodes      int64       `json:"nodes"`
	CreatedAt  time.Time   `json:"created_at"`
}

type BestMoveRequest struct {
	State game.Snapshot `json:"state"`
	Depth *int          `json:"depth,omitempty"`
}

type BestMoveResponse struct {
	Analysis
	Cached    bool   `json:"cached"`
	RequestID string `json:"request_id"`
}
