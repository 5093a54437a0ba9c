package game

import (
	"fmt"

	ferrors "filler/internal/errors"
)

// Snapshot is the renderable view of a State: one string of color symbols
// and one string of owner symbols (X, O or .) per row.
type Snapshot struct {
	Rows       int      `json:"rows"`
	Cols       int      `json:"cols"`
	Palette    string   `json:"palette"`
	Colors     []string `json:"colors"`
	Owners     []string `json:"owners"`
	Current    string   `json:"current"`
	Outcome    Outcome  `json:"outcome"`
	GameOver   bool     `json:"game_over"`
	ValidMoves string   `json:"valid_moves"`
}

func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Rows:       s.cfg.Rows,
		Cols:       s.cfg.Cols,
		Palette:    s.cfg.Palette.String(),
		Colors:     make([]string, s.cfg.Rows),
		Owners:     make([]string, s.cfg.Rows),
		Current:    s.current.String(),
		Outcome:    s.Outcome(),
		GameOver:   s.IsGameOver(),
		ValidMoves: Palette(s.ValidMoves()).String(),
	}
	colors := make([]byte, s.cfg.Cols)
	owners := make([]byte, s.cfg.Cols)
	for r := 0; r < s.cfg.Rows; r++ {
		for c := 0; c < s.cfg.Cols; c++ {
			cell := s.cells[s.index(r, c)]
			colors[c] = byte(cell.Color)
			owners[c] = cell.Owner.Symbol()
		}
		snap.Colors[r] = string(colors)
		snap.Owners[r] = string(owners)
	}
	return snap
}

// FromSnapshot rebuilds a State from its renderable view. Derived fields
// (outcome, game_over, valid_moves) are ignored.
func FromSnapshot(snap Snapshot) (*State, error) {
	cfg := Config{Rows: snap.Rows, Cols: snap.Cols, Palette: ParsePalette(snap.Palette)}
	s, err := newState(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ferrors.ErrInvalidSnapshot, err)
	}
	if len(snap.Colors) != cfg.Rows || len(snap.Owners) != cfg.Rows {
		return nil, fmt.Errorf("%w: expected %d rows of colors and owners", ferrors.ErrInvalidSnapshot, cfg.Rows)
	}

	for r := 0; r < cfg.Rows; r++ {
		if len(snap.Colors[r]) != cfg.Cols || len(snap.Owners[r]) != cfg.Cols {
			return nil, fmt.Errorf("%w: row %d must have %d cells", ferrors.ErrInvalidSnapshot, r, cfg.Cols)
		}
		for c := 0; c < cfg.Cols; c++ {
			col := Color(snap.Colors[r][c])
			if !cfg.Palette.Contains(col) {
				return nil, fmt.Errorf("%w: cell [%d, %d] color %q outside the palette", ferrors.ErrInvalidSnapshot, r, c, col.String())
			}
			owner, ok := PlayerFromSymbol(snap.Owners[r][c])
			if !ok {
				return nil, fmt.Errorf("%w: cell [%d, %d] unknown owner %q", ferrors.ErrInvalidSnapshot, r, c, snap.Owners[r][c])
			}
			s.cells[s.index(r, c)] = Cell{Color: col, Owner: owner}
		}
	}

	r1, c1 := cfg.Player1Corner()
	r2, c2 := cfg.Player2Corner()
	if s.At(r2, c2).Owner != Player2 || (s.index(r1, c1) != s.index(r2, c2) && s.At(r1, c1).Owner != Player1) {
		return nil, fmt.Errorf("%w: starting corners are not owned by their players", ferrors.ErrInvalidSnapshot)
	}

	if len(snap.Current) != 1 {
		return nil, fmt.Errorf("%w: current player %q", ferrors.ErrInvalidSnapshot, snap.Current)
	}
	current, ok := PlayerFromSymbol(snap.Current[0])
	if !ok || current == NoPlayer {
		return nil, fmt.Errorf("%w: current player %q", ferrors.ErrInvalidSnapshot, snap.Current)
	}
	s.current = current
	return s, nil
}
