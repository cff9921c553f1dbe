package model

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return "none"
}

// Opponent panics for NoColor, which never owns a move.
func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	panic(fmt.Sprintf("invalid color: %d", c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*c = White
	case "black":
		*c = Black
	case "none", "":
		*c = NoColor
	default:
		return fmt.Errorf("invalid color %q", text)
	}
	return nil
}

type PieceType uint8

const (
	Empty PieceType = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

var pieceTypeNames = [...]string{
	Empty:  "none",
	Pawn:   "pawn",
	Rook:   "rook",
	Knight: "knight",
	Bishop: "bishop",
	Queen:  "queen",
	King:   "king",
}

func (p PieceType) String() string {
	if int(p) < len(pieceTypeNames) {
		return pieceTypeNames[p]
	}
	return fmt.Sprintf("PieceType(%d)", p)
}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func (p PieceType) MarshalText() ([]byte, error) {
	if int(p) >= len(pieceTypeNames) {
		return nil, fmt.Errorf("invalid piece type %d", p)
	}
	return []byte(pieceTypeNames[p]), nil
}

func (p *PieceType) UnmarshalText(text []byte) error {
	for i, name := range pieceTypeNames {
		if name == string(text) {
			*p = PieceType(i)
			return nil
		}
	}
	return fmt.Errorf("invalid piece type %q", text)
}

// Piece is the content of one square. Empty squares hold EmptySquare.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
}

var EmptySquare = Piece{Type: Empty, Color: NoColor}

// NewPiece builds an unmoved piece. Real pieces must be white or black.
func NewPiece(color Color, pieceType PieceType) Piece {
	if pieceType == Empty {
		return EmptySquare
	}
	if color != White && color != Black {
		panic(fmt.Sprintf("invalid color: %s (expected white or black)", color))
	}
	if int(pieceType) >= len(pieceTypeNames) {
		panic(fmt.Sprintf("invalid piece type: %d", pieceType))
	}
	return Piece{Type: pieceType, Color: color}
}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

func (p Piece) IsWhite() bool {
	return p.Color == White
}

func (p Piece) IsBlack() bool {
	return p.Color == Black
}

// Symbol is the single letter used in text boards: upper case for white,
// lower case for black, "-" for an empty square.
func (p Piece) Symbol() string {
	var s string
	switch p.Type {
	case Empty:
		return "-"
	case Pawn:
		s = "p"
	case Rook:
		s = "r"
	case Knight:
		s = "n"
	case Bishop:
		s = "b"
	case Queen:
		s = "q"
	case King:
		s = "k"
	default:
		panic(fmt.Sprintf("invalid piece type: %d", p.Type))
	}
	switch p.Color {
	case White:
		return strings.ToUpper(s)
	case Black:
		return s
	}
	panic(fmt.Sprintf("invalid color: %d", p.Color))
}

func (p Piece) String() string {
	return p.Symbol()
}
