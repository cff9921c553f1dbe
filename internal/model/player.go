package model

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID       string      `json:"name"`
	Color    PlayerColor `json:"color"`
	TimeLeft int         `json:"timeLeft"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (pc PlayerColor) color() Color {
	switch pc {
	case PlayerColorWhite:
		return White
	case PlayerColorBlack:
		return Black
	}
	return NoColor
}

// MatchFoundEvent is sent to each matched player.
type MatchFoundEvent struct {
	GameID string      `json:"gameId"`
	Color  PlayerColor `json:"color"`
}
