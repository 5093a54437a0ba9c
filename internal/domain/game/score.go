package game

// Outcome is the final (or current) tally. Winner is NoPlayer on a tie.
type Outcome struct {
	Player1 int    `json:"player1"`
	Player2 int    `json:"player2"`
	Winner  Player `json:"winner"`
}

func (o Outcome) Tie() bool {
	return o.Winner == NoPlayer
}

// OwnedCounts is the only place cells are counted; both reporting and the
// search evaluation go through it.
func (s *State) OwnedCounts() (p1, p2 int) {
	for _, cell := range s.cells {
		switch cell.Owner {
		case Player1:
			p1++
		case Player2:
			p2++
		}
	}
	return p1, p2
}

// Score is the cell advantage of side over its opponent.
func (s *State) Score(side Player) int {
	p1, p2 := s.OwnedCounts()
	switch side {
	case Player1:
		return p1 - p2
	case Player2:
		return p2 - p1
	default:
		return 0
	}
}

func (s *State) Outcome() Outcome {
	p1, p2 := s.OwnedCounts()
	o := Outcome{Player1: p1, Player2: p2}
	switch {
	case p1 > p2:
		o.Winner = Player1
	case p2 > p1:
		o.Winner = Player2
	}
	return o
}
