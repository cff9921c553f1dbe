package model

import (
	"fmt"

	"github.com/notnil/chess"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieceTypes = map[chess.PieceType]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

// FromFEN sets up a board from a FEN record. FEN has no moved flags, so they
// are inferred: pawns off their home rank, kings and rooks without the
// matching castling right, and other pieces off their starting square count
// as moved. An en passant square becomes the LastMove that created it.
func FromFEN(fen string) (*BoardState, LastMove, Turn, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, LastMove{}, Turn{}, fmt.Errorf("parsing fen: %w", err)
	}
	pos := chess.NewGame(opt).Position()
	rights := pos.CastleRights()

	board := &BoardState{}
	for sq, p := range pos.Board().SquareMap() {
		pieceType, ok := fenPieceTypes[p.Type()]
		if !ok {
			continue
		}
		color := White
		if p.Color() == chess.Black {
			color = Black
		}
		at := squareToPosition(sq)
		piece := NewPiece(color, pieceType)
		piece.HasMoved = !onStartingSquare(piece, at, rights)
		board.set(at.Rank, at.File, piece)
	}

	turn := NewTurn(pos.Turn() == chess.Black)
	var lastMove LastMove
	if ep := pos.EnPassantSquare(); ep != chess.NoSquare {
		at := squareToPosition(ep)
		if turn.IsBlackTurn() {
			lastMove.record(Position{Rank: at.Rank + 1, File: at.File}, Position{Rank: at.Rank - 1, File: at.File})
		} else {
			lastMove.record(Position{Rank: at.Rank - 1, File: at.File}, Position{Rank: at.Rank + 1, File: at.File})
		}
	}
	return board, lastMove, turn, nil
}

// squareToPosition maps a notnil square (rank 1 = 0) onto board indices
// (rank "8" = 0).
func squareToPosition(sq chess.Square) Position {
	return Position{Rank: 7 - int(sq.Rank()), File: int(sq.File())}
}

func onStartingSquare(piece Piece, at Position, rights chess.CastleRights) bool {
	backRank, side := 7, chess.White
	if piece.Color == Black {
		backRank, side = 0, chess.Black
	}
	if piece.Type == Pawn {
		return at.Rank == homeRank(piece.Color)
	}
	if at.Rank != backRank {
		return false
	}
	switch piece.Type {
	case King:
		return at.File == 4 && (rights.CanCastle(side, chess.KingSide) || rights.CanCastle(side, chess.QueenSide))
	case Rook:
		return (at.File == kingsideFile && rights.CanCastle(side, chess.KingSide)) ||
			(at.File == queensideFile && rights.CanCastle(side, chess.QueenSide))
	case Queen:
		return at.File == 3
	case Bishop:
		return at.File == 2 || at.File == 5
	case Knight:
		return at.File == 1 || at.File == 6
	}
	return false
}
