package pairing

import (
	"context"
	"errors"

	"github.com/jelyman2/tournament/models"
)

var (
	ErrNotEnoughPlayers = errors.New("not enough players to generate pairings (minimum 2)")
	ErrNoValidPairing   = errors.New("no valid pairing satisfies the constraints")
)

// Pair is a scheduled matchup for one round. Player1ID is the
// higher-ranked side.
type Pair struct {
	Player1ID int `json:"player_1"`
	Player2ID int `json:"player_2"`
}

// RoundPairings is the full slate for one round: floor(N/2) pairs plus
// at most one bye.
type RoundPairings struct {
	Round       int    `json:"round"`
	Pairs       []Pair `json:"pairs"`
	ByePlayerID *int   `json:"bye_player_id,omitempty"`
}

// Params is a consistent snapshot of tournament state. Standings must
// already be in rank order (best first); Played holds every unordered
// pair with a recorded match, keyed per Key; Byes holds players who
// already received a bye.
type Params struct {
	Round     int
	Standings []*models.StandingRow
	Played    map[[2]int]bool
	Byes      map[int]bool
}

// Key normalizes an unordered player pair for Played lookups.
func Key(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Generator produces the pairing list for the next round. Generation is
// a pure function of Params and is safe to run without locking.
type Generator interface {
	Generate(ctx context.Context, params Params) (*RoundPairings, error)

	Name() string
}
