package game

import (
	"fmt"
	"strings"

	ferrors "filler/internal/errors"
)

// Color is a single palette symbol, e.g. 'r'.
type Color byte

func (c Color) String() string {
	return string(rune(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte{byte(c)}, nil
}

func (c *Color) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return fmt.Errorf("%w: color %q must be a single symbol", ferrors.ErrMalformedBoard, b)
	}
	*c = Color(b[0])
	return nil
}

// Palette is ordered: the order is the move enumeration and tie-break order.
type Palette []Color

func ParsePalette(s string) Palette {
	p := make(Palette, 0, len(s))
	for i := 0; i < len(s); i++ {
		p = append(p, Color(s[i]))
	}
	return p
}

func (p Palette) Contains(c Color) bool {
	return p.Index(c) >= 0
}

func (p Palette) Index(c Color) int {
	for i, pc := range p {
		if pc == c {
			return i
		}
	}
	return -1
}

func (p Palette) String() string {
	var sb strings.Builder
	sb.Grow(len(p))
	for _, c := range p {
		sb.WriteByte(byte(c))
	}
	return sb.String()
}

type Player uint8

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Symbol is the one-letter owner marker used in snapshots.
func (p Player) Symbol() byte {
	switch p {
	case Player1:
		return 'X'
	case Player2:
		return 'O'
	default:
		return '.'
	}
}

func (p Player) String() string {
	return string(p.Symbol())
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte{p.Symbol()}, nil
}

func (p *Player) UnmarshalText(b []byte) error {
	if len(b) == 1 {
		if pl, ok := PlayerFromSymbol(b[0]); ok {
			*p = pl
			return nil
		}
	}
	return fmt.Errorf("%w: unknown player %q", ferrors.ErrInvalidSnapshot, b)
}

func PlayerFromSymbol(b byte) (Player, bool) {
	switch b {
	case 'X':
		return Player1, true
	case 'O':
		return Player2, true
	case '.':
		return NoPlayer, true
	default:
		return NoPlayer, false
	}
}

type Cell struct {
	Color Color  `json:"color"`
	Owner Player `json:"owner"`
}

func (c Cell) Owned() bool {
	return c.Owner != NoPlayer
}

// Config describes the board shape and palette of a game.
type Config struct {
	Rows    int     `json:"rows"`
	Cols    int     `json:"cols"`
	Palette Palette `json:"palette"`
}

func DefaultConfig() Config {
	return Config{
		Rows:    7,
		Cols:    8,
		Palette: ParsePalette("rgbyk"),
	}
}

func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ferrors.ErrInvalidConfig, c.Rows, c.Cols)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ferrors.ErrInvalidConfig)
	}
	seen := make(map[Color]bool, len(c.Palette))
	for _, col := range c.Palette {
		if col <= ' ' || col > '~' {
			return fmt.Errorf("%w: palette symbol %q is not printable", ferrors.ErrInvalidConfig, byte(col))
		}
		if seen[col] {
			return fmt.Errorf("%w: duplicate palette color %q", ferrors.ErrInvalidConfig, col.String())
		}
		seen[col] = true
	}
	return nil
}

func (c Config) Size() int {
	return c.Rows * c.Cols
}

// Player1Corner is the bottom-left cell.
func (c Config) Player1Corner() (row, col int) {
	return c.Rows - 1, 0
}

// Player2Corner is the top-right cell.
func (c Config) Player2Corner() (row, col int) {
	return 0, c.Cols - 1
}
