package domain

import (
	"fmt"
	"strings"
)

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Player is a side of the game. Only PlayerX and PlayerO are valid; the zero
// value means no player.
type Player uint8

const (
	PlayerX = Player(X)
	PlayerO = Player(O)
)

// Valid reports whether p is X or O.
func (p Player) Valid() bool { return p == PlayerX || p == PlayerO }

// Cell returns the mark p leaves on the board.
func (p Player) Cell() Cell { return Cell(p) }

func (p Player) String() string { return p.Cell().String() }

// Opponent returns the other side. It returns the zero Player for an invalid p.
func Opponent(p Player) Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	}
	return 0
}

// Pos addresses a cell by row and column (0..2).
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Pos) index() int { return p.Row*3 + p.Col }

// Valid reports whether the position lies on the board.
func (p Pos) Valid() bool {
	return p.Row >= 0 && p.Row <= 2 && p.Col >= 0 && p.Col <= 2
}

func (p Pos) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

// Board is a fixed 3x3 board stored row-major. It is a value: Place returns a
// new Board and never modifies the receiver.
type Board [9]Cell

// At returns the cell at p. p must be valid.
func (b Board) At(p Pos) Cell { return b[p.index()] }

// Place returns a copy of the board with side placed at p.
func (b Board) Place(p Pos, side Player) (Board, error) {
	if !side.Valid() {
		return b, ErrInvalidPlayer
	}
	if !p.Valid() {
		return b, ErrOutOfBounds
	}
	if b[p.index()] != Empty {
		return b, ErrOccupied
	}
	b[p.index()] = side.Cell()
	return b, nil
}

// EmptyCells lists the empty positions in row-major order.
func (b Board) EmptyCells() []Pos {
	out := make([]Pos, 0, 9)
	for i, c := range b {
		if c == Empty {
			out = append(out, Pos{Row: i / 3, Col: i % 3})
		}
	}
	return out
}

// Full reports whether no empty cell remains.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Count returns how many cells hold side.
func (b Board) Count(side Cell) int {
	n := 0
	for _, c := range b {
		if c == side {
			n++
		}
	}
	return n
}

// ParseBoard reads a 9-character row-major layout such as "XX_OO____".
// '_', '.', '-' and ' ' mark empty cells; '/' separators are ignored.
func ParseBoard(s string) (Board, error) {
	var b Board
	s = strings.ReplaceAll(s, "/", "")
	if len(s) != 9 {
		return b, fmt.Errorf("board layout must have 9 cells, got %d", len(s))
	}
	for i := 0; i < 9; i++ {
		switch s[i] {
		case 'X', 'x':
			b[i] = X
		case 'O', 'o':
			b[i] = O
		case '_', '.', '-', ' ':
			b[i] = Empty
		default:
			return Board{}, fmt.Errorf("invalid cell %q at %d", s[i], i)
		}
	}
	return b, nil
}

func (b Board) String() string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 && i%3 == 0 {
			sb.WriteByte('/')
		}
		if c == Empty {
			sb.WriteByte('_')
		} else {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}
