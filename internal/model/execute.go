package model

import "github.com/benbeisheim/chessrules-backend/internal/logs"

// Move applies start -> target for the side to move and reports whether it
// did. A rejected move leaves the board and lastMove untouched. Flipping the
// turn on success is the caller's job.
func (b *BoardState) Move(isBlackTurn bool, start, target Position, lastMove *LastMove) bool {
	return b.Execute(isBlackTurn, start, target, lastMove).Applied
}

// Execute is Move with a description of the side effects it applied.
func (b *BoardState) Execute(isBlackTurn bool, start, target Position, lastMove *LastMove) MoveResult {
	piece := b.at(start)
	if piece.Color != activeColor(isBlackTurn) {
		logs.Tracef("move %s -> %s: piece does not belong to %s", start, target, activeColor(isBlackTurn))
		return MoveResult{}
	}
	if !IsValidMove(b, start, target, *lastMove) {
		return MoveResult{}
	}

	result := MoveResult{Applied: true, Piece: piece, From: start, To: target}
	if captured := b.at(target); !captured.IsEmpty() {
		result.Captured = captured
		result.CapturedAt = target
	}

	if piece.Type == Pawn {
		b.handleEnPassant(start, target, &result)
	}
	if piece.Type == King {
		b.handleCastle(start, target, &result)
	}

	b.clear(start)
	piece.HasMoved = true
	b.set(target.Rank, target.File, piece)

	lastMove.record(start, target)
	return result
}

// handleEnPassant removes the pawn passed by a diagonal move onto an empty
// square. It must run before the mover lands on target.
func (b *BoardState) handleEnPassant(start, target Position, result *MoveResult) {
	if start.File == target.File || !b.at(target).IsEmpty() {
		return
	}
	victimAt := Position{Rank: target.Rank - forwardDirection(result.Piece.Color), File: target.File}
	result.Captured = b.at(victimAt)
	result.CapturedAt = victimAt
	result.EnPassant = true
	b.clear(victimAt)
}

// handleCastle moves the rook beside the king's destination. Only called for
// king moves.
func (b *BoardState) handleCastle(start, target Position, result *MoveResult) {
	if abs(target.File-start.File) != 2 {
		return
	}
	from := Position{Rank: start.Rank, File: kingsideFile}
	to := Position{Rank: start.Rank, File: target.File - 1}
	if target.File < start.File {
		from.File = queensideFile
		to.File = target.File + 1
	}
	rook := b.at(from)
	b.clear(from)
	rook.HasMoved = true
	b.set(to.Rank, to.File, rook)
	result.CastleRookMove = &CastleRookMove{From: from, To: to}
}
