package model

type WSMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// LastMove remembers the most recently executed move; it only authorizes en
// passant. The zero value means no move has been made yet.
type LastMove struct {
	Move  SimpleMove
	Valid bool
}

func (l *LastMove) record(from, to Position) {
	l.Move = SimpleMove{From: from, To: to}
	l.Valid = true
}

// Simple returns nil when no move has been recorded.
func (l LastMove) Simple() *SimpleMove {
	if !l.Valid {
		return nil
	}
	move := l.Move
	return &move
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// MoveResult describes what Execute did to the board.
type MoveResult struct {
	Applied        bool
	Piece          Piece
	From           Position
	To             Position
	Captured       Piece
	CapturedAt     Position
	EnPassant      bool
	CastleRookMove *CastleRookMove
}

type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Notation       string          `json:"notation"`
}

type Move struct {
	WhitePly Ply  `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}
