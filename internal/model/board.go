package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

const boardSize = 8

// BoardState is the 8x8 grid. Rank 0 is Black's back rank, rank 7 is
// White's; file 0 is the a-file. The zero value is an empty board.
type BoardState struct {
	squares [boardSize][boardSize]Piece
}

type Position struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func (p Position) OnBoard() bool {
	return p.Rank >= 0 && p.Rank < boardSize && p.File >= 0 && p.File < boardSize
}

func (p Position) String() string {
	if !p.OnBoard() {
		return fmt.Sprintf("(%d,%d)", p.Rank, p.File)
	}
	return p.getFileNotation() + RankLabel(p.Rank)
}

func (p Position) getFileNotation() string {
	return FileLabel(p.File)
}

func newBoard() *BoardState {
	board := &BoardState{}
	backRank := [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, pieceType := range backRank {
		board.squares[0][file] = NewPiece(Black, pieceType)
		board.squares[1][file] = NewPiece(Black, Pawn)
		board.squares[6][file] = NewPiece(White, Pawn)
		board.squares[7][file] = NewPiece(White, pieceType)
	}
	return board
}

// NewBoard returns a board in the standard starting layout.
func NewBoard() *BoardState {
	return newBoard()
}

// Clone returns an independent copy of the board.
func (b *BoardState) Clone() *BoardState {
	clone := *b
	return &clone
}

// Get returns a copy of the piece at (rank, file). Off-board indices panic.
func (b *BoardState) Get(rank, file int) Piece {
	mustOnBoard(rank, file)
	return b.squares[rank][file]
}

func (b *BoardState) at(p Position) Piece {
	return b.Get(p.Rank, p.File)
}

func (b *BoardState) set(rank, file int, piece Piece) {
	mustOnBoard(rank, file)
	b.squares[rank][file] = piece
}

func (b *BoardState) clear(p Position) {
	b.set(p.Rank, p.File, EmptySquare)
}

func mustOnBoard(rank, file int) {
	if rank < 0 || rank >= boardSize || file < 0 || file >= boardSize {
		panic(fmt.Sprintf("invalid rank or file: rank %d, file %d", rank, file))
	}
}

// RankLabel maps index 0..7 to "8".."1".
func RankLabel(rank int) string {
	if rank < 0 || rank >= boardSize {
		panic(fmt.Sprintf("invalid rank number: %d", rank))
	}
	return string(rune('8' - rank))
}

// FileLabel maps index 0..7 to "a".."h".
func FileLabel(file int) string {
	if file < 0 || file >= boardSize {
		panic(fmt.Sprintf("invalid file number: %d", file))
	}
	return string(rune('a' + file))
}

// ParseRank is the non-fatal inverse of RankLabel.
func ParseRank(label string) (int, bool) {
	if len(label) != 1 || label[0] < '1' || label[0] > '8' {
		return 0, false
	}
	return int('8' - label[0]), true
}

// ParseFile is the non-fatal inverse of FileLabel.
func ParseFile(label string) (int, bool) {
	if len(label) != 1 || label[0] < 'a' || label[0] > 'h' {
		return 0, false
	}
	return int(label[0] - 'a'), true
}

// GetRank panics on anything but "1".."8". Callers validate user text first.
func GetRank(label string) int {
	rank, ok := ParseRank(label)
	if !ok {
		panic(fmt.Sprintf("invalid rank label: %q", label))
	}
	return rank
}

// GetFile panics on anything but "a".."h".
func GetFile(label string) int {
	file, ok := ParseFile(label)
	if !ok {
		panic(fmt.Sprintf("invalid file label: %q", label))
	}
	return file
}

// ParseSquare reads a two character square such as "e2".
func ParseSquare(square string) (Position, bool) {
	if len(square) != 2 {
		return Position{}, false
	}
	file, ok := ParseFile(square[:1])
	if !ok {
		return Position{}, false
	}
	rank, ok := ParseRank(square[1:])
	if !ok {
		return Position{}, false
	}
	return Position{Rank: rank, File: file}, true
}

func (b *BoardState) String() string {
	var sb strings.Builder
	for rank := 0; rank < boardSize; rank++ {
		for file := 0; file < boardSize; file++ {
			if file > 0 {
				sb.WriteString(" |")
			}
			sb.WriteString(" ")
			sb.WriteString(b.squares[rank][file].Symbol())
		}
		sb.WriteString(" \n")
	}
	return sb.String()
}

// MarshalJSON encodes the board as an 8x8 matrix with null for empty squares.
func (b *BoardState) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, boardSize)
	for rank := range rows {
		rows[rank] = make([]*Piece, boardSize)
		for file := 0; file < boardSize; file++ {
			if piece := b.squares[rank][file]; !piece.IsEmpty() {
				rows[rank][file] = &piece
			}
		}
	}
	return json.Marshal(rows)
}

func (b *BoardState) UnmarshalJSON(data []byte) error {
	var rows [][]*Piece
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != boardSize {
		return fmt.Errorf("board has %d ranks, want %d", len(rows), boardSize)
	}
	var squares [boardSize][boardSize]Piece
	for rank, row := range rows {
		if len(row) != boardSize {
			return fmt.Errorf("rank %d has %d files, want %d", rank, len(row), boardSize)
		}
		for file, piece := range row {
			if piece == nil || piece.IsEmpty() {
				continue
			}
			if piece.Color != White && piece.Color != Black {
				return fmt.Errorf("piece at %s has no color", Position{Rank: rank, File: file})
			}
			squares[rank][file] = *piece
		}
	}
	b.squares = squares
	return nil
}
