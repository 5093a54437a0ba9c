package game

import (
	"fmt"
	"math/rand"
	"strings"

	ferrors "filler/internal/errors"
)

// State is the full game position. It is mutated in place by ApplyMove;
// callers that explore hypothetical moves work on a Clone.
type State struct {
	cfg     Config
	cells   []Cell // row-major
	current Player
}

// CellError reports the position of a rejected manual-input cell so the
// caller can re-prompt for that cell only.
type CellError struct {
	Row    int
	Col    int
	Symbol string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s: cell [%d, %d] has color %q outside the palette", ferrors.ErrMalformedBoard, e.Row, e.Col, e.Symbol)
}

func (e *CellError) Unwrap() error {
	return ferrors.ErrMalformedBoard
}

func newState(cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &State{
		cfg:     cfg,
		cells:   make([]Cell, cfg.Size()),
		current: Player1,
	}, nil
}

// NewRandom fills the board with independently uniform palette colors drawn
// from a source seeded with seed.
func NewRandom(cfg Config, seed int64) (*State, error) {
	s, err := newState(cfg)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range s.cells {
		s.cells[i] = Cell{Color: cfg.Palette[rng.Intn(len(cfg.Palette))]}
	}
	s.claimCorners()
	return s, nil
}

// NewFromGrid builds a game from a row-major list of colors.
func NewFromGrid(cfg Config, grid []Color) (*State, error) {
	s, err := newState(cfg)
	if err != nil {
		return nil, err
	}
	if len(grid) != cfg.Size() {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ferrors.ErrMalformedBoard, cfg.Size(), len(grid))
	}
	for i, c := range grid {
		if !cfg.Palette.Contains(c) {
			return nil, &CellError{Row: i / cfg.Cols, Col: i % cfg.Cols, Symbol: c.String()}
		}
		s.cells[i] = Cell{Color: c}
	}
	s.claimCorners()
	return s, nil
}

// ParseColor validates one token of user input: its first non-space
// character must be a palette color.
func ParseColor(cfg Config, input string) (Color, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%w: no input", ferrors.ErrMalformedBoard)
	}
	c := Color(input[0])
	if !cfg.Palette.Contains(c) {
		return 0, fmt.Errorf("%w: %q is not one of %q", ferrors.ErrMalformedBoard, c.String(), cfg.Palette.String())
	}
	return c, nil
}

// ParseGrid reads one string per row, one palette symbol per cell.
func ParseGrid(cfg Config, rows []string) ([]Color, error) {
	if len(rows) != cfg.Rows {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ferrors.ErrMalformedBoard, cfg.Rows, len(rows))
	}
	grid := make([]Color, 0, cfg.Size())
	for r, line := range rows {
		if len(line) != cfg.Cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ferrors.ErrMalformedBoard, r, len(line), cfg.Cols)
		}
		for c := 0; c < len(line); c++ {
			col := Color(line[c])
			if !cfg.Palette.Contains(col) {
				return nil, &CellError{Row: r, Col: c, Symbol: col.String()}
			}
			grid = append(grid, col)
		}
	}
	return grid, nil
}

// claimCorners sets starting ownership without touching colors. On a 1x1
// board both corners coincide and Player2 is assigned last.
func (s *State) claimCorners() {
	r1, c1 := s.cfg.Player1Corner()
	s.cells[s.index(r1, c1)].Owner = Player1
	r2, c2 := s.cfg.Player2Corner()
	s.cells[s.index(r2, c2)].Owner = Player2
}

func (s *State) index(row, col int) int {
	return row*s.cfg.Cols + col
}

func (s *State) inBounds(row, col int) bool {
	return row >= 0 && row < s.cfg.Rows && col >= 0 && col < s.cfg.Cols
}

// Clone returns a deep copy. The palette is shared since nothing mutates it.
func (s *State) Clone() *State {
	cells := make([]Cell, len(s.cells))
	copy(cells, s.cells)
	return &State{
		cfg:     s.cfg,
		cells:   cells,
		current: s.current,
	}
}

func (s *State) Config() Config {
	cfg := s.cfg
	cfg.Palette = append(Palette(nil), s.cfg.Palette...)
	return cfg
}

func (s *State) Current() Player {
	return s.current
}

func (s *State) At(row, col int) Cell {
	return s.cells[s.index(row, col)]
}

// IdentityColor is the current color of the player's starting corner.
func (s *State) IdentityColor(p Player) Color {
	switch p {
	case Player1:
		return s.At(s.cfg.Player1Corner()).Color
	case Player2:
		return s.At(s.cfg.Player2Corner()).Color
	default:
		return 0
	}
}

var neighbours = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

func (s *State) adjacentToOwned(idx int, p Player) bool {
	row, col := idx/s.cfg.Cols, idx%s.cfg.Cols
	for _, d := range neighbours {
		nr, nc := row+d[0], col+d[1]
		if s.inBounds(nr, nc) && s.cells[s.index(nr, nc)].Owner == p {
			return true
		}
	}
	return false
}

// ApplyMove plays color for the current player without validating it.
// Border eligibility is decided on the pre-move board, before any cell is
// repainted.
func (s *State) ApplyMove(color Color) {
	mover := s.current

	var owned, border []int
	for idx, cell := range s.cells {
		switch {
		case cell.Owner == mover:
			owned = append(owned, idx)
		case cell.Owner == NoPlayer && cell.Color == color && s.adjacentToOwned(idx, mover):
			border = append(border, idx)
		}
	}

	for _, idx := range owned {
		s.cells[idx].Color = color
	}
	for _, idx := range border {
		if s.cells[idx].Owner == NoPlayer {
			s.cells[idx].Owner = mover
		}
	}

	s.current = mover.Opponent()
}

// Play validates color and applies it. A rejected move leaves the state
// untouched.
func (s *State) Play(color Color) error {
	if s.IsGameOver() {
		return ferrors.ErrGameOver
	}
	if !s.IsValidMove(color) {
		return fmt.Errorf("%w: color %q is not available to player %s", ferrors.ErrInvalidMove, color.String(), s.current)
	}
	s.ApplyMove(color)
	return nil
}

// IsValidMove does not depend on whose turn it is: both identity colors are
// forbidden to both players.
func (s *State) IsValidMove(color Color) bool {
	if !s.cfg.Palette.Contains(color) {
		return false
	}
	return color != s.IdentityColor(Player1) && color != s.IdentityColor(Player2)
}

func (s *State) ValidMoves() []Color {
	moves := make([]Color, 0, len(s.cfg.Palette))
	for _, c := range s.cfg.Palette {
		if s.IsValidMove(c) {
			moves = append(moves, c)
		}
	}
	return moves
}

func (s *State) IsGameOver() bool {
	for _, cell := range s.cells {
		if !cell.Owned() {
			return false
		}
	}
	return true
}

// IsStalemate reports a board that still has neutral cells but no color
// anyone may pick.
func (s *State) IsStalemate() bool {
	return !s.IsGameOver() && len(s.ValidMoves()) == 0
}

// Key identifies the position for caching: shape, palette, colors, owners
// and side to move.
func (s *State) Key() string {
	var sb strings.Builder
	sb.Grow(2*len(s.cells) + len(s.cfg.Palette) + 16)
	fmt.Fprintf(&sb, "%dx%d:%s:", s.cfg.Rows, s.cfg.Cols, s.cfg.Palette)
	for _, cell := range s.cells {
		sb.WriteByte(byte(cell.Color))
	}
	sb.WriteByte(':')
	for _, cell := range s.cells {
		sb.WriteByte(cell.Owner.Symbol())
	}
	sb.WriteByte(':')
	sb.WriteByte(s.current.Symbol())
	return sb.String()
}
