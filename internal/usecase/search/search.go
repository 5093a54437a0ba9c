package search

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filler/internal/domain/game"
	ferrors "filler/internal/errors"
)

// DefaultDepth is the number of plies searched below each root candidate
// when SEARCH_DEPTH is not configured.
const DefaultDepth = 4

type Candidate struct {
	Color game.Color
	Value int
}

// Decision is the outcome of one root search.
type Decision struct {
	Color      game.Color
	Value      int
	Depth      int
	Side       game.Player
	Candidates []Candidate
	Nodes      int64
}

type Engine struct {
	log     *zap.SugaredLogger
	workers int
}

// NewEngine returns an engine that evaluates up to workers root candidates
// at once. workers <= 1 searches serially.
func NewEngine(log *zap.SugaredLogger, workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	return &Engine{log: log, workers: workers}
}

// Evaluate is the static evaluation: side's cell advantage.
func Evaluate(state *game.State, side game.Player) int {
	return state.Score(side)
}

// Minimax returns the value of state for side, searching depth plies.
// A node with no valid move is evaluated statically.
func Minimax(state *game.State, depth int, maximizing bool, side game.Player) int {
	var nodes int64
	v, _ := minimax(context.Background(), state, depth, maximizing, side, &nodes)
	return v
}

// cancelCheckInterval is how many nodes are visited between ctx checks.
const cancelCheckInterval = 1024

func minimax(ctx context.Context, state *game.State, depth int, maximizing bool, side game.Player, nodes *int64) (int, error) {
	*nodes++
	if *nodes%cancelCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}
	if depth <= 0 || state.IsGameOver() {
		return Evaluate(state, side), nil
	}

	moves := state.ValidMoves()
	if len(moves) == 0 {
		return Evaluate(state, side), nil
	}

	best := math.MinInt
	if !maximizing {
		best = math.MaxInt
	}
	for _, color := range moves {
		next := state.Clone()
		next.ApplyMove(color)
		eval, err := minimax(ctx, next, depth-1, !maximizing, side, nodes)
		if err != nil {
			return 0, err
		}
		if maximizing {
			best = max(best, eval)
		} else {
			best = min(best, eval)
		}
	}
	return best, nil
}

// ChooseMove picks the color for the side to move. Each valid color is
// applied to a clone and scored with Minimax(next, depth, true, side); the
// strictly greatest value wins and ties go to the earlier palette color.
func (e *Engine) ChooseMove(ctx context.Context, state *game.State, depth int) (Decision, error) {
	if state.IsGameOver() {
		return Decision{}, ferrors.ErrGameOver
	}
	moves := state.ValidMoves()
	if len(moves) == 0 {
		return Decision{}, ferrors.ErrNoValidMove
	}

	started := time.Now()
	side := state.Current()
	candidates := make([]Candidate, len(moves))
	var nodes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, color := range moves {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var n int64
			next := state.Clone()
			next.ApplyMove(color)
			value, err := minimax(gctx, next, depth, true, side, &n)
			nodes.Add(n)
			if err != nil {
				return err
			}
			candidates[i] = Candidate{Color: color, Value: value}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Decision{}, err
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Value > candidates[best].Value {
			best = i
		}
	}

	d := Decision{
		Color:      candidates[best].Color,
		Value:      candidates[best].Value,
		Depth:      depth,
		Side:       side,
		Candidates: candidates,
		Nodes:      nodes.Load(),
	}
	e.log.Debugw("search finished",
		"side", side.String(),
		"color", d.Color.String(),
		"value", d.Value,
		"depth", depth,
		"candidates", len(candidates),
		"nodes", d.Nodes,
		"elapsed", time.Since(started),
	)
	return d, nil
}
