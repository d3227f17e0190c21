package models

// StandingRow is one line of the current standings. OpponentWins is the
// sum of wins of every opponent the player has faced (byes contribute no
// opponent) and is the documented secondary ranking key.
type StandingRow struct {
	Player       *Player `json:"player"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Draws        int     `json:"draws"`
	Byes         int     `json:"byes"`
	OpponentWins int     `json:"opponent_wins"`
	Rank         int     `json:"rank"`
}

// GamesPlayed counts recorded outcomes, byes included.
func (s *StandingRow) GamesPlayed() int {
	return s.Wins + s.Losses + s.Draws
}
