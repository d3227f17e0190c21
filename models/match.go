package models

import "time"

// MatchResult соответствует ENUM match_result в БД.
type MatchResult string

const (
	ResultPlayer1Win MatchResult = "player1_win"
	ResultPlayer2Win MatchResult = "player2_win"
	ResultDraw       MatchResult = "draw"
	ResultBye        MatchResult = "bye"
)

// Valid reports whether r is one of the persisted result values.
func (r MatchResult) Valid() bool {
	switch r {
	case ResultPlayer1Win, ResultPlayer2Win, ResultDraw, ResultBye:
		return true
	}
	return false
}

// Match is a recorded outcome between two players. A bye is stored as a
// match with a nil Player2ID and ResultBye. A match is created once per
// played round and never mutated afterwards.
type Match struct {
	ID        int         `json:"id" db:"id"`
	Player1ID int         `json:"player_1" db:"player_1"`
	Player2ID *int        `json:"player_2,omitempty" db:"player_2"`
	Result    MatchResult `json:"result" db:"result"`
	Round     int         `json:"round" db:"round"`
	PlayedAt  time.Time   `json:"played_at" db:"played_at"`
}

// IsBye reports whether the match records a bye rather than a played
// game. The persisted shape of a bye is a nil second player; a ResultBye
// value alongside a second player is a malformed row, rejected at the
// roster boundary.
func (m *Match) IsBye() bool {
	return m.Player2ID == nil
}
