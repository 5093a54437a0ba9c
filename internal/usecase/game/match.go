package game

import (
	"context"

	"filler/internal/domain/analysis"
	"filler/internal/domain/game"
)

type Turn struct {
	Player game.Player `json:"player"`
	Color  game.Color  `json:"color"`
}

// Match is the turn loop without any I/O: the caller feeds human colors and
// asks for engine moves until Done.
type Match struct {
	uc      *GameUseCase
	state   *game.State
	history []Turn
}

func (g *GameUseCase) NewMatch(state *game.State) *Match {
	return &Match{uc: g, state: state}
}

func (m *Match) Snapshot() game.Snapshot {
	return m.state.Snapshot()
}

func (m *Match) Current() game.Player {
	return m.state.Current()
}

func (m *Match) PlayHuman(color game.Color) error {
	mover := m.state.Current()
	if err := m.uc.PlayMove(m.state, color); err != nil {
		return err
	}
	m.history = append(m.history, Turn{Player: mover, Color: color})
	return nil
}

func (m *Match) PlayAI(ctx context.Context) (analysis.Analysis, error) {
	return m.PlayAIAtDepth(ctx, m.uc.depth)
}

func (m *Match) PlayAIAtDepth(ctx context.Context, depth int) (analysis.Analysis, error) {
	a, _, err := m.uc.BestMove(ctx, m.state, depth)
	if err != nil {
		return analysis.Analysis{}, err
	}
	mover := m.state.Current()
	m.state.ApplyMove(a.Color)
	m.history = append(m.history, Turn{Player: mover, Color: a.Color})
	return a, nil
}

// Done is true once the board is full or nobody has a legal color left.
func (m *Match) Done() bool {
	return m.state.IsGameOver() || m.state.IsStalemate()
}

func (m *Match) Turns() int {
	return len(m.history)
}

func (m *Match) History() []Turn {
	return append([]Turn(nil), m.history...)
}

func (m *Match) Outcome() game.Outcome {
	return m.state.Outcome()
}
