// Package terminal plays a two-player game in a text terminal, locally or
// over SSH.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/fatih/color"
)

const helpText = `commands:
  move              prompt for start and target squares
  move <from> <to>  e.g. move e2 e4
  board             print the board
  help              show this text
  exit              quit
`

// Session owns one board and reads commands until exit or end of input.
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	board    *model.BoardState
	lastMove model.LastMove
	turn     model.Turn

	white *color.Color
	black *color.Color
	dim   *color.Color
}

func NewSession(in io.Reader, out io.Writer, colored bool) *Session {
	s := &Session{
		in:    bufio.NewScanner(in),
		out:   out,
		board: model.NewBoard(),
		white: color.New(color.FgHiWhite, color.Bold),
		black: color.New(color.FgRed, color.Bold),
		dim:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{s.white, s.black, s.dim} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *Session) Board() *model.BoardState {
	return s.board
}

func (s *Session) Turn() model.Turn {
	return s.turn
}

// Run loops over commands. It returns nil on exit or end of input.
func (s *Session) Run() error {
	fmt.Fprint(s.out, helpText)
	for {
		s.render()
		line, ok := s.prompt(fmt.Sprintf(" %s > ", s.turn.Color()))
		if !ok {
			return s.in.Err()
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "exit", "quit":
			fmt.Fprintln(s.out, "\nGoodbye!")
			return nil
		case "help":
			fmt.Fprint(s.out, helpText)
		case "board":
			// rendered at the top of the loop
		case "move":
			start, target, ok := s.readMove(fields[1:])
			if !ok {
				continue
			}
			s.play(start, target)
		default:
			fmt.Fprintf(s.out, " unknown command %q, try help\n", fields[0])
		}
	}
}

// readMove takes squares from args, or prompts for the four labels one at a
// time when none were given.
func (s *Session) readMove(args []string) (model.Position, model.Position, bool) {
	switch len(args) {
	case 2:
		start, ok1 := model.ParseSquare(args[0])
		target, ok2 := model.ParseSquare(args[1])
		if !ok1 || !ok2 {
			fmt.Fprintf(s.out, " invalid square in %q\n", strings.Join(args, " "))
			return model.Position{}, model.Position{}, false
		}
		return start, target, true
	case 0:
	default:
		fmt.Fprintln(s.out, " usage: move <from> <to>")
		return model.Position{}, model.Position{}, false
	}

	var labels [4]string
	prompts := [4]string{" Starting File Label: ", " Starting Rank Label: ", " Target File Label: ", " Target Rank Label: "}
	for i, p := range prompts {
		label, ok := s.prompt(p)
		if !ok {
			return model.Position{}, model.Position{}, false
		}
		labels[i] = strings.TrimSpace(label)
	}
	startFile, ok1 := model.ParseFile(labels[0])
	startRank, ok2 := model.ParseRank(labels[1])
	targetFile, ok3 := model.ParseFile(labels[2])
	targetRank, ok4 := model.ParseRank(labels[3])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		fmt.Fprintf(s.out, " invalid square labels %q\n", strings.Join(labels[:], " "))
		return model.Position{}, model.Position{}, false
	}
	return model.Position{Rank: startRank, File: startFile}, model.Position{Rank: targetRank, File: targetFile}, true
}

func (s *Session) play(start, target model.Position) {
	moved := s.board.Move(s.turn.IsBlackTurn(), start, target, &s.lastMove)
	if !moved {
		log.Printf("rejected %s move %s -> %s", s.turn.Color(), start, target)
		fmt.Fprintf(s.out, " illegal move %s -> %s\n", start, target)
		return
	}
	log.Printf("%s played %s -> %s", s.turn.Color(), start, target)
	s.turn.Advance(moved)
}

func (s *Session) prompt(text string) (string, bool) {
	fmt.Fprint(s.out, text)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Session) render() {
	fmt.Fprintln(s.out)
	for rank := 0; rank < 8; rank++ {
		fmt.Fprint(s.out, s.dim.Sprint(model.RankLabel(rank)), " ")
		for file := 0; file < 8; file++ {
			piece := s.board.Get(rank, file)
			var cell string
			switch piece.Color {
			case model.White:
				cell = s.white.Sprint(piece.Symbol())
			case model.Black:
				cell = s.black.Sprint(piece.Symbol())
			default:
				cell = s.dim.Sprint(piece.Symbol())
			}
			fmt.Fprint(s.out, " ", cell)
		}
		fmt.Fprintln(s.out)
	}
	fmt.Fprint(s.out, "  ")
	for file := 0; file < 8; file++ {
		fmt.Fprint(s.out, " ", s.dim.Sprint(model.FileLabel(file)))
	}
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out)
}
