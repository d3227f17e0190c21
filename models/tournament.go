package models

import "time"

// TournamentState представляет состояния турнира.
type TournamentState string

const (
	StateRegistration    TournamentState = "registration"
	StateRoundInProgress TournamentState = "round_in_progress"
	StateRoundComplete   TournamentState = "round_complete"
	StateFinished        TournamentState = "finished"
)

// Tournament is the explicit context object every operation runs against.
// The persisted shape covers only players and matches, so the tournament
// itself lives with the caller for the duration of the event.
type Tournament struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	State        TournamentState `json:"state"`
	CurrentRound int             `json:"current_round"`
	// TotalRounds of 0 means "decide at first pairing" (ceil(log2(N))).
	TotalRounds int       `json:"total_rounds"`
	CreatedAt   time.Time `json:"created_at"`
}
