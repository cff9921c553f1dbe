package model

import (
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/logs"
)

const (
	whiteHomeRank = 6
	blackHomeRank = 1
	queensideFile = 0
	kingsideFile  = 7
)

var knightDirs = []Position{
	{Rank: 2, File: 1}, {Rank: 2, File: -1}, {Rank: -2, File: 1}, {Rank: -2, File: -1},
	{Rank: 1, File: 2}, {Rank: 1, File: -2}, {Rank: -1, File: 2}, {Rank: -1, File: -2},
}

// IsValidMove dispatches on the piece found at start. An empty start square
// is a caller bug and panics.
func IsValidMove(board *BoardState, start, target Position, lastMove LastMove) bool {
	mustOnBoard(start.Rank, start.File)
	switch piece := board.at(start); piece.Type {
	case Pawn:
		return IsValidPawnMove(board, start, target, lastMove)
	case Rook:
		return IsValidRookMove(board, start, target, lastMove)
	case Knight:
		return IsValidKnightMove(board, start, target, lastMove)
	case Bishop:
		return IsValidBishopMove(board, start, target, lastMove)
	case Queen:
		return IsValidQueenMove(board, start, target, lastMove)
	case King:
		return IsValidKingMove(board, start, target, lastMove)
	case Empty:
		panic(fmt.Sprintf("no piece to move at %s", start))
	default:
		panic(fmt.Sprintf("invalid piece type at %s: %d", start, piece.Type))
	}
}

// checkCommon applies the checks shared by every piece. Off-board starts
// panic; everything else reports false.
func checkCommon(board *BoardState, kind string, start, target Position) bool {
	if !start.OnBoard() {
		panic(fmt.Sprintf("invalid starting rank or file: rank %d, file %d", start.Rank, start.File))
	}
	if !target.OnBoard() {
		logs.Tracef("%s %s -> %s: target is not on the board", kind, start, target)
		return false
	}
	if start == target {
		logs.Tracef("%s %s -> %s: start and target are the same square", kind, start, target)
		return false
	}
	mover := board.at(start)
	if occupant := board.at(target); !occupant.IsEmpty() && occupant.Color == mover.Color {
		logs.Tracef("%s %s -> %s: target holds a friendly piece", kind, start, target)
		return false
	}
	return true
}

func IsValidKnightMove(board *BoardState, start, target Position, _ LastMove) bool {
	if !checkCommon(board, "knight", start, target) {
		return false
	}
	delta := Position{Rank: target.Rank - start.Rank, File: target.File - start.File}
	for _, dir := range knightDirs {
		if dir == delta {
			return true
		}
	}
	logs.Tracef("knight %s -> %s: not an L-shaped jump", start, target)
	return false
}

func IsValidBishopMove(board *BoardState, start, target Position, _ LastMove) bool {
	if !checkCommon(board, "bishop", start, target) {
		return false
	}
	dr, df := target.Rank-start.Rank, target.File-start.File
	if abs(dr) != abs(df) || dr == 0 {
		logs.Tracef("bishop %s -> %s: not on a diagonal", start, target)
		return false
	}
	return pathClear(board, "bishop", start, target)
}

func IsValidRookMove(board *BoardState, start, target Position, _ LastMove) bool {
	if !checkCommon(board, "rook", start, target) {
		return false
	}
	if (start.Rank == target.Rank) == (start.File == target.File) {
		logs.Tracef("rook %s -> %s: start and target do not share a rank or file", start, target)
		return false
	}
	return pathClear(board, "rook", start, target)
}

// IsValidQueenMove is the union of the bishop and rook rules.
func IsValidQueenMove(board *BoardState, start, target Position, lastMove LastMove) bool {
	return IsValidBishopMove(board, start, target, lastMove) || IsValidRookMove(board, start, target, lastMove)
}

// IsValidKingMove allows single steps and castling. Attacked squares are not
// considered.
func IsValidKingMove(board *BoardState, start, target Position, _ LastMove) bool {
	if !checkCommon(board, "king", start, target) {
		return false
	}
	dr, df := target.Rank-start.Rank, target.File-start.File
	if abs(dr) <= 1 && abs(df) <= 1 {
		return true
	}
	if dr != 0 || abs(df) != 2 {
		logs.Tracef("king %s -> %s: target is not within one square", start, target)
		return false
	}

	king := board.at(start)
	if king.HasMoved {
		logs.Tracef("king %s -> %s: king has already moved", start, target)
		return false
	}
	rookFile := kingsideFile
	if target.File < start.File {
		rookFile = queensideFile
	}
	rookPos := Position{Rank: start.Rank, File: rookFile}
	rook := board.at(rookPos)
	if rook.Type != Rook || rook.Color != king.Color {
		logs.Tracef("king %s -> %s: no friendly rook on %s", start, target, rookPos)
		return false
	}
	if rook.HasMoved {
		logs.Tracef("king %s -> %s: rook on %s has already moved", start, target, rookPos)
		return false
	}
	return pathClear(board, "king", start, rookPos)
}

// IsValidPawnMove does not check the square passed over by a double step.
func IsValidPawnMove(board *BoardState, start, target Position, lastMove LastMove) bool {
	if !checkCommon(board, "pawn", start, target) {
		return false
	}
	pawn := board.at(start)
	forward := forwardDirection(pawn.Color)
	dr, df := target.Rank-start.Rank, target.File-start.File
	if abs(df) > 1 {
		logs.Tracef("pawn %s -> %s: target is more than one file away", start, target)
		return false
	}
	targetEmpty := board.at(target).IsEmpty()

	if df == 0 {
		if !targetEmpty {
			logs.Tracef("pawn %s -> %s: target contains a piece", start, target)
			return false
		}
		if dr == forward {
			return true
		}
		if dr == 2*forward && start.Rank == homeRank(pawn.Color) {
			return true
		}
		logs.Tracef("pawn %s -> %s: target is not ahead of start", start, target)
		return false
	}

	if dr != forward {
		logs.Tracef("pawn %s -> %s: target is not in the rank ahead of start", start, target)
		return false
	}
	if !targetEmpty {
		return true
	}
	if isEnPassant(board, pawn, start, target, lastMove) {
		return true
	}
	logs.Tracef("pawn %s -> %s: diagonal target is empty", start, target)
	return false
}

// isEnPassant reports whether lastMove was an enemy pawn's double step that
// ended beside start in the target's file.
func isEnPassant(board *BoardState, pawn Piece, start, target Position, lastMove LastMove) bool {
	if !lastMove.Valid {
		return false
	}
	forward := forwardDirection(pawn.Color)
	beside := Position{Rank: start.Rank, File: target.File}
	origin := Position{Rank: start.Rank + 2*forward, File: target.File}
	if lastMove.Move.To != beside || lastMove.Move.From != origin {
		return false
	}
	victim := board.at(beside)
	return victim.Type == Pawn && victim.Color == pawn.Color.Opponent()
}

// pathClear walks the unit step from start toward target and reports whether
// every square strictly between them is empty.
func pathClear(board *BoardState, kind string, start, target Position) bool {
	step := Position{Rank: sign(target.Rank - start.Rank), File: sign(target.File - start.File)}
	current := Position{Rank: start.Rank + step.Rank, File: start.File + step.File}
	for current != target {
		if !board.at(current).IsEmpty() {
			logs.Tracef("%s %s -> %s: square %s between start and target is not empty", kind, start, target, current)
			return false
		}
		current = Position{Rank: current.Rank + step.Rank, File: current.File + step.File}
	}
	return true
}

func forwardDirection(color Color) int {
	switch color {
	case White:
		return -1
	case Black:
		return 1
	}
	panic(fmt.Sprintf("invalid pawn color: %s", color))
}

func homeRank(color Color) int {
	if color == Black {
		return blackHomeRank
	}
	return whiteHomeRank
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
