package model

// Turn tracks the side to move. It only advances after a successful move;
// the board never flips it.
type Turn struct {
	isBlackTurn bool
}

func NewTurn(isBlackTurn bool) Turn {
	return Turn{isBlackTurn: isBlackTurn}
}

func (t Turn) IsBlackTurn() bool {
	return t.isBlackTurn
}

func (t Turn) Color() Color {
	return activeColor(t.isBlackTurn)
}

// Advance passes the move to the other side when moved is true.
func (t *Turn) Advance(moved bool) {
	if moved {
		t.isBlackTurn = !t.isBlackTurn
	}
}

func activeColor(isBlackTurn bool) Color {
	if isBlackTurn {
		return Black
	}
	return White
}
