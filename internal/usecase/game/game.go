package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"filler/internal/domain/analysis"
	"filler/internal/domain/game"
	ferrors "filler/internal/errors"
	"filler/internal/usecase/search"
)

// MaxDepth bounds a single request; the tree grows roughly 3x per ply.
const MaxDepth = 8

type AnalysisStore interface {
	GetAnalysis(ctx context.Context, key string) (analysis.Analysis, error)
	SaveAnalysis(ctx context.Context, key string, a analysis.Analysis) error
}

type GameUseCase struct {
	cfg    game.Config
	depth  int
	engine *search.Engine
	store  AnalysisStore
	log    *zap.SugaredLogger
}

func NewGameUseCase(cfg game.Config, depth int, engine *search.Engine, store AnalysisStore, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		cfg:    cfg,
		depth:  depth,
		engine: engine,
		store:  store,
		log:    log,
	}
}

func (g *GameUseCase) Depth() int {
	return g.depth
}

func (g *GameUseCase) NewRandomGame(seed int64) (*game.State, error) {
	state, err := game.NewRandom(g.cfg, seed)
	if err != nil {
		return nil, err
	}
	g.log.Debugw("new random game", "seed", seed, "rows", g.cfg.Rows, "cols", g.cfg.Cols)
	return state, nil
}

func (g *GameUseCase) NewManualGame(rows []string) (*game.State, error) {
	grid, err := game.ParseGrid(g.cfg, rows)
	if err != nil {
		return nil, err
	}
	return game.NewFromGrid(g.cfg, grid)
}

func (g *GameUseCase) PlayMove(state *game.State, color game.Color) error {
	mover := state.Current()
	if err := state.Play(color); err != nil {
		return err
	}
	g.log.Debugw("move applied", "player", mover.String(), "color", color.String())
	return nil
}

// BestMove returns the engine's choice for the side to move, served from the
// analysis store when the same position was searched at the same depth.
func (g *GameUseCase) BestMove(ctx context.Context, state *game.State, depth int) (analysis.Analysis, bool, error) {
	if depth < 0 || depth > MaxDepth {
		return analysis.Analysis{}, false, fmt.Errorf("%w: depth %d outside [0, %d]", ferrors.ErrInvalidConfig, depth, MaxDepth)
	}

	key := fmt.Sprintf("%d:%s", depth, state.Key())
	cached, err := g.store.GetAnalysis(ctx, key)
	switch {
	case err == nil:
		return cached, true, nil
	case !errors.Is(err, ferrors.ErrAnalysisNotFound):
		g.log.Warnw("analysis store read failed", "error", err)
	}

	decision, err := g.engine.ChooseMove(ctx, state, depth)
	if err != nil {
		return analysis.Analysis{}, false, err
	}

	result := toAnalysis(decision)
	if err := g.store.SaveAnalysis(ctx, key, result); err != nil {
		g.log.Warnw("analysis store write failed", "error", err)
	}
	return result, false, nil
}

func toAnalysis(d search.Decision) analysis.Analysis {
	candidates := make([]analysis.Candidate, 0, len(d.Candidates))
	for _, c := range d.Candidates {
		candidates = append(candidates, analysis.Candidate{Color: c.Color, Value: c.Value})
	}
	return analysis.Analysis{
		Color:      d.Color,
		Value:      d.Value,
		Depth:      d.Depth,
		Side:       d.Side,
		Candidates: candidates,
		Nodes:      d.Nodes,
		CreatedAt:  time.Now(),
	}
}

// MaxCells bounds boards accepted from outside the process.
const MaxCells = 1024

// LoadState rebuilds a position received from a client. The palette must be
// the configured one, since it bounds the branching factor of a search.
func (g *GameUseCase) LoadState(snap game.Snapshot) (*game.State, error) {
	if snap.Rows <= 0 || snap.Cols <= 0 || snap.Rows > MaxCells/snap.Cols {
		return nil, fmt.Errorf("%w: board of %dx%d cells is not accepted", ferrors.ErrInvalidSnapshot, snap.Rows, snap.Cols)
	}
	if snap.Palette != g.cfg.Palette.String() {
		return nil, fmt.Errorf("%w: palette %q, expected %q", ferrors.ErrInvalidSnapshot, snap.Palette, g.cfg.Palette.String())
	}
	return game.FromSnapshot(snap)
}
