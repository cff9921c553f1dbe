package model

import (
	"encoding/json"
	"testing"
)

func TestPieceSymbols(t *testing.T) {
	tests := []struct {
		piece Piece
		want  string
	}{
		{NewPiece(White, King), "K"},
		{NewPiece(Black, Knight), "n"},
		{NewPiece(White, Pawn), "P"},
		{EmptySquare, "-"},
		{NewPiece(NoColor, Empty), "-"},
	}
	for _, tt := range tests {
		if got := tt.piece.Symbol(); got != tt.want {
			t.Errorf("%+v.Symbol() = %q, want %q", tt.piece, got, tt.want)
		}
	}
}

func TestTextEncodings(t *testing.T) {
	data, err := json.Marshal(NewPiece(Black, Queen))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"queen","color":"black","hasMoved":false}` {
		t.Fatalf("piece encoded as %s", data)
	}
	var p Piece
	if err := json.Unmarshal([]byte(`{"type":"dragon","color":"white"}`), &p); err == nil {
		t.Fatal("expected unknown piece type to fail")
	}
	if err := json.Unmarshal([]byte(`{"type":"rook","color":"green"}`), &p); err == nil {
		t.Fatal("expected unknown color to fail")
	}
}

func TestTurn(t *testing.T) {
	turn := NewTurn(false)
	turn.Advance(false)
	if turn.IsBlackTurn() {
		t.Fatal("a failed move passed the turn")
	}
	turn.Advance(true)
	if turn.Color() != Black || White.Opponent() != Black || Black.Opponent() != White {
		t.Fatal("unexpected colors")
	}
}
