package model

import "fmt"

// getNotation renders an applied move for the move list. It is output only;
// nothing in the engine parses it back.
func getNotation(result MoveResult) string {
	if rook := result.CastleRookMove; rook != nil {
		if rook.From.File == queensideFile {
			return "O-O-O"
		}
		return "O-O"
	}
	capture := ""
	if !result.Captured.IsEmpty() {
		capture = "x"
	}
	pawnFileSpecifier := ""
	if result.Piece.Type == Pawn && result.From.File != result.To.File {
		pawnFileSpecifier = result.From.getFileNotation()
	}
	suffix := ""
	if result.EnPassant {
		suffix = " e.p."
	}
	return fmt.Sprintf("%s%s%s%s%s", result.Piece.Type.getPieceNotation(), pawnFileSpecifier, capture, result.To, suffix)
}

func makePly(result MoveResult) Ply {
	ply := Ply{
		Piece:          result.Piece,
		From:           result.From,
		To:             result.To,
		CastleRookMove: result.CastleRookMove,
		Notation:       getNotation(result),
	}
	if !result.Captured.IsEmpty() {
		captured := result.Captured
		ply.CapturedPiece = &captured
	}
	return ply
}
