package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

func runSession(t *testing.T, input string) (*Session, string) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(strings.NewReader(input), &out, false)
	if err := s.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	return s, out.String()
}

func TestPromptedMove(t *testing.T) {
	s, out := runSession(t, "move\ne\n2\ne\n4\nexit\n")

	if p := s.Board().Get(4, 4); p.Type != model.Pawn || p.Color != model.White {
		t.Fatalf("expected white pawn on e4, got %v", p)
	}
	if !s.Board().Get(6, 4).IsEmpty() {
		t.Fatal("expected e2 to be empty")
	}
	if !s.Turn().IsBlackTurn() {
		t.Fatal("expected black to move")
	}
	for _, prompt := range []string{"Starting File Label", "Starting Rank Label", "Target File Label", "Target Rank Label", "Goodbye!"} {
		if !strings.Contains(out, prompt) {
			t.Errorf("output missing %q", prompt)
		}
	}
}

func TestInlineMoves(t *testing.T) {
	s, _ := runSession(t, "move e2 e4\nmove e7 e5\nmove g1 f3\n")

	if p := s.Board().Get(5, 5); p.Type != model.Knight || p.Color != model.White {
		t.Fatalf("expected white knight on f3, got %v", p)
	}
	if p := s.Board().Get(3, 4); p.Type != model.Pawn || p.Color != model.Black {
		t.Fatalf("expected black pawn on e5, got %v", p)
	}
	if !s.Turn().IsBlackTurn() {
		t.Fatal("expected black to move after three plies")
	}
}

func TestRejectedInputKeepsTurn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "wrong color", input: "move e7 e5\n", want: "illegal move"},
		{name: "illegal geometry", input: "move e2 e5\n", want: "illegal move"},
		{name: "bad label", input: "move\nz\n2\ne\n4\n", want: "invalid square labels"},
		{name: "bad square", input: "move e9 e4\n", want: "invalid square"},
		{name: "wrong arity", input: "move e2\n", want: "usage"},
		{name: "unknown command", input: "castle\n", want: "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := runSession(t, tt.input)
			if s.Turn().IsBlackTurn() {
				t.Fatal("turn advanced after rejected input")
			}
			if !strings.Contains(out, tt.want) {
				t.Fatalf("expected %q in output:\n%s", tt.want, out)
			}
			if s.Board().String() != model.NewBoard().String() {
				t.Fatalf("board changed:\n%s", s.Board())
			}
		})
	}
}

func TestRenderPlainOutput(t *testing.T) {
	_, out := runSession(t, "board\nexit\n")
	if strings.Contains(out, "\x1b[") {
		t.Fatal("expected no escape codes when color is disabled")
	}
	for _, row := range []string{"8  r n b q k b n r", "1  R N B Q K B N R", "   a b c d e f g h"} {
		if !strings.Contains(out, row) {
			t.Errorf("output missing row %q", row)
		}
	}
}
