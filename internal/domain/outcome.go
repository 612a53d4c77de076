package domain

// Line is one of the eight winning lines.
type Line [3]Pos

// Lines in canonical detection order: rows top-to-bottom, columns
// left-to-right, main diagonal, anti-diagonal.
var Lines = [8]Line{
	// rows
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	// cols
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	// diags
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Status classifies an Outcome.
type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

func (s Status) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Outcome is the result of evaluating a board. Winner and Line are set only
// when Status is Win.
type Outcome struct {
	Status Status
	Winner Player
	Line   Line
}

// Over reports whether the game has concluded.
func (o Outcome) Over() bool { return o.Status != InProgress }

// Won reports whether p won.
func (o Outcome) Won(p Player) bool { return o.Status == Win && o.Winner == p }

// Contains reports whether p is part of the winning line.
func (o Outcome) Contains(p Pos) bool {
	if o.Status != Win {
		return false
	}
	for _, q := range o.Line {
		if q == p {
			return true
		}
	}
	return false
}

// Detect evaluates b. The first complete line in canonical order wins, so the
// result is deterministic even for boards unreachable in legal play.
func Detect(b Board) Outcome {
	for _, ln := range Lines {
		c := b.At(ln[0])
		if c != Empty && c == b.At(ln[1]) && c == b.At(ln[2]) {
			return Outcome{Status: Win, Winner: Player(c), Line: ln}
		}
	}
	if b.Full() {
		return Outcome{Status: Draw}
	}
	return Outcome{Status: InProgress}
}
