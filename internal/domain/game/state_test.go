package game

import (
	"errors"
	"testing"

	ferrors "filler/internal/errors"
)

func mustGrid(t *testing.T, palette string, rows ...string) *State {
	t.Helper()
	cfg := Config{Rows: len(rows), Cols: len(rows[0]), Palette: ParsePalette(palette)}
	grid, err := ParseGrid(cfg, rows)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	s, err := NewFromGrid(cfg, grid)
	if err != nil {
		t.Fatalf("NewFromGrid: %v", err)
	}
	return s
}

func owners(s *State) string {
	b := make([]byte, 0, len(s.cells))
	for _, c := range s.cells {
		b = append(b, c.Owner.Symbol())
	}
	return string(b)
}

func checkStartingOwnership(t *testing.T, s *State) {
	t.Helper()
	cfg := s.Config()
	for r := 0; r < cfg.Rows; r++ {
		for c := 0; c < cfg.Cols; c++ {
			got := s.At(r, c).Owner
			want := NoPlayer
			switch {
			case r == cfg.Rows-1 && c == 0:
				want = Player1
			case r == 0 && c == cfg.Cols-1:
				want = Player2
			}
			if got != want {
				t.Fatalf("cell [%d, %d]: owner %s, want %s", r, c, got, want)
			}
		}
	}
}

func TestNewRandomCornerOwnership(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		s, err := NewRandom(DefaultConfig(), seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		checkStartingOwnership(t, s)
		if s.Current() != Player1 {
			t.Fatalf("seed %d: Player1 must move first, got %s", seed, s.Current())
		}
	}
}

func TestNewRandomIsSeeded(t *testing.T) {
	a, _ := NewRandom(DefaultConfig(), 42)
	b, _ := NewRandom(DefaultConfig(), 42)
	if a.Key() != b.Key() {
		t.Fatalf("same seed produced different boards")
	}
}

func TestNewFromGridCornerOwnership(t *testing.T) {
	s := mustGrid(t, "rgbyk",
		"rgbykrgb",
		"gbykrgby",
		"bykrgbyk",
		"ykrgbykr",
		"krgbykrg",
		"rgbykrgb",
		"gbykrgby",
	)
	checkStartingOwnership(t, s)
	if got := s.IdentityColor(Player1); got != 'g' {
		t.Fatalf("Player1 identity color %s, want g", got)
	}
	if got := s.IdentityColor(Player2); got != 'b' {
		t.Fatalf("Player2 identity color %s, want b", got)
	}
}

func TestNewFromGridRejectsOffPaletteCell(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, Palette: ParsePalette("rg")}
	_, err := NewFromGrid(cfg, []Color{'r', 'g', 'x', 'r'})
	if !errors.Is(err, ferrors.ErrMalformedBoard) {
		t.Fatalf("expected ErrMalformedBoard, got %v", err)
	}
	var cellErr *CellError
	if !errors.As(err, &cellErr) {
		t.Fatalf("expected *CellError, got %T", err)
	}
	if cellErr.Row != 1 || cellErr.Col != 0 {
		t.Fatalf("expected cell [1, 0], got [%d, %d]", cellErr.Row, cellErr.Col)
	}

	if _, err := NewFromGrid(cfg, []Color{'r', 'g'}); !errors.Is(err, ferrors.ErrMalformedBoard) {
		t.Fatalf("expected ErrMalformedBoard for short grid, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"r", 'r', false},
		{"  y\n", 'y', false},
		{"kx", 'k', false},
		{"", 0, true},
		{"   ", 0, true},
		{"z", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseColor(cfg, tc.in)
		if tc.wantErr {
			if !errors.Is(err, ferrors.ErrMalformedBoard) {
				t.Errorf("ParseColor(%q): expected ErrMalformedBoard, got %v", tc.in, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseColor(%q) = %s, %v; want %s", tc.in, got, err, tc.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []Config{
		{Rows: 0, Cols: 3, Palette: ParsePalette("rg")},
		{Rows: 3, Cols: -1, Palette: ParsePalette("rg")},
		{Rows: 3, Cols: 3},
		{Rows: 3, Cols: 3, Palette: ParsePalette("rgr")},
	}
	for i, cfg := range cases {
		if err := cfg.Validate(); !errors.Is(err, ferrors.ErrInvalidConfig) {
			t.Errorf("case %d: expected ErrInvalidConfig, got %v", i, err)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config: %v", err)
	}
}

func TestApplyMoveClaimsOnlyPreMoveBorder(t *testing.T) {
	s := mustGrid(t, "rgb", "rggb")

	s.ApplyMove('g')

	if got := owners(s); got != "XX.O" {
		t.Fatalf("owners after move: %s, want XX.O", got)
	}
	if s.At(0, 0).Color != 'g' {
		t.Fatalf("owned cell not recolored: %s", s.At(0, 0).Color)
	}
	if s.Current() != Player2 {
		t.Fatalf("turn did not pass to Player2")
	}
}

func TestApplyMoveOwnIdentityColor(t *testing.T) {
	s := mustGrid(t, "rgb",
		"rgb",
		"grg",
		"rgr",
	)
	before := owners(s)

	s.ApplyMove(s.IdentityColor(Player1))

	if got := owners(s); got != before {
		t.Fatalf("owners changed: %s -> %s", before, got)
	}
	if s.At(2, 0).Color != 'r' {
		t.Fatalf("owned cell color changed to %s", s.At(2, 0).Color)
	}
	if s.Current() != Player2 {
		t.Fatalf("turn must flip even on a no-op color")
	}
}

func TestApplyMoveIgnoresOpponentCells(t *testing.T) {
	s := mustGrid(t, "rgb", "rgb")
	// 1x3: X at (0,0) r, O at (0,2) b, neutral g between.
	s.ApplyMove('g')
	if got := owners(s); got != "XXO" {
		t.Fatalf("owners: %s, want XXO", got)
	}
	s.ApplyMove('g')
	if got := owners(s); got != "XXO" {
		t.Fatalf("O must not take X's cell, owners: %s", got)
	}
	if s.At(0, 2).Color != 'g' {
		t.Fatalf("O's territory not recolored")
	}
}

func TestApplyMoveMonotonic(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		s, err := NewRandom(DefaultConfig(), seed)
		if err != nil {
			t.Fatal(err)
		}
		for turn := 0; turn < 200 && !s.IsGameOver() && !s.IsStalemate(); turn++ {
			moves := s.ValidMoves()
			before := append([]Cell(nil), s.cells...)
			s.ApplyMove(moves[turn%len(moves)])
			for i, c := range before {
				if c.Owned() && s.cells[i].Owner != c.Owner {
					t.Fatalf("seed %d turn %d: cell %d owner changed %s -> %s", seed, turn, i, c.Owner, s.cells[i].Owner)
				}
			}
		}
	}
}

func TestIsValidMoveIgnoresTurn(t *testing.T) {
	s, _ := NewRandom(DefaultConfig(), 7)
	id1, id2 := s.IdentityColor(Player1), s.IdentityColor(Player2)

	for _, turn := range []Player{Player1, Player2} {
		s.current = turn
		for _, c := range s.Config().Palette {
			want := c != id1 && c != id2
			if got := s.IsValidMove(c); got != want {
				t.Fatalf("turn %s color %s: valid=%v, want %v", turn, c, got, want)
			}
		}
		if s.IsValidMove('z') {
			t.Fatalf("off-palette color accepted")
		}
	}
}

func TestPlayRejectsInvalidMoveWithoutMutation(t *testing.T) {
	s := mustGrid(t, "rgb", "rgb")
	key := s.Key()
	err := s.Play('b')
	if !errors.Is(err, ferrors.ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove, got %v", err)
	}
	if s.Key() != key {
		t.Fatalf("rejected move mutated state")
	}
	if err := s.Play('g'); err != nil {
		t.Fatalf("valid move rejected: %v", err)
	}
}

func TestTwoByTwoForcedTie(t *testing.T) {
	s := mustGrid(t, "rg",
		"rg",
		"rg",
	)
	if s.IdentityColor(Player1) != 'r' || s.IdentityColor(Player2) != 'g' {
		t.Fatalf("unexpected identity colors")
	}
	for _, c := range []Color{'g', 'r'} {
		if err := s.Play(c); !errors.Is(err, ferrors.ErrInvalidMove) {
			t.Fatalf("Play(%s): expected ErrInvalidMove, got %v", c, err)
		}
	}
	if len(s.ValidMoves()) != 0 {
		t.Fatalf("expected no valid moves, got %v", s.ValidMoves())
	}
	if !s.IsStalemate() {
		t.Fatalf("expected stalemate")
	}
	if s.IsGameOver() {
		t.Fatalf("board is not full, game over must be false")
	}
	if o := s.Outcome(); !o.Tie() || o.Player1 != 1 || o.Player2 != 1 {
		t.Fatalf("expected 1-1 tie, got %+v", o)
	}
}

func TestIsGameOver(t *testing.T) {
	one := mustGrid(t, "rg", "r")
	if !one.IsGameOver() {
		t.Fatalf("1x1 board must be over immediately")
	}
	if one.At(0, 0).Owner != Player2 {
		t.Fatalf("1x1 corner assigned to %s, want O", one.At(0, 0).Owner)
	}
	if err := one.Play('g'); !errors.Is(err, ferrors.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}

	two := mustGrid(t, "rg", "rg")
	if !two.IsGameOver() {
		t.Fatalf("1x2 board is fully pre-owned")
	}

	open := mustGrid(t, "rgb", "rgb")
	if open.IsGameOver() {
		t.Fatalf("neutral cell left, game must not be over")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s, _ := NewRandom(DefaultConfig(), 3)
	key := s.Key()
	cur := s.Current()

	c := s.Clone()
	c.ApplyMove(c.ValidMoves()[0])
	c.ApplyMove(c.ValidMoves()[0])
	c.ApplyMove(c.ValidMoves()[0])

	if s.Key() != key || s.Current() != cur {
		t.Fatalf("mutating the clone changed the original")
	}
	if c.Key() == key {
		t.Fatalf("clone did not change")
	}
}

func TestIdentityColorFollowsCornerRepaint(t *testing.T) {
	s := mustGrid(t, "rgby", "ygb", "rgb")
	if s.IdentityColor(Player1) != 'r' || s.IdentityColor(Player2) != 'b' {
		t.Fatalf("identity colors %s/%s, want r/b", s.IdentityColor(Player1), s.IdentityColor(Player2))
	}

	s.ApplyMove('y')
	if got := s.IdentityColor(Player1); got != 'y' {
		t.Fatalf("Player1 identity after repaint: %s, want y", got)
	}
	if got := s.IdentityColor(Player2); got != 'b' {
		t.Fatalf("Player2 identity changed to %s", got)
	}
	if s.IdentityColor(NoPlayer) != 0 {
		t.Fatalf("NoPlayer has no identity color")
	}
}
