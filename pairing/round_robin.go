package pairing

import (
	"context"
	"fmt"
	"sort"
)

// phantom fills the table when the roster is odd; its opponent for the
// round receives the bye.
const phantom = -1

// RoundRobinGenerator produces a fixed rotation schedule (circle
// method) keyed by round number: every player meets every other exactly
// once per cycle, scores are ignored. It exists as the alternate format
// for exhibition play, where the roster fights through the whole list
// instead of being seeded by score.
type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

func (g *RoundRobinGenerator) Generate(ctx context.Context, params Params) (*RoundPairings, error) {
	n := len(params.Standings)
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrNotEnoughPlayers, n)
	}
	if params.Round < 1 {
		return nil, fmt.Errorf("round number must be positive, got %d", params.Round)
	}

	ids := make([]int, 0, n+1)
	for _, row := range params.Standings {
		ids = append(ids, row.Player.ID)
	}
	sort.Ints(ids)
	if len(ids)%2 != 0 {
		ids = append(ids, phantom)
	}

	m := len(ids)
	rotation := (params.Round - 1) % (m - 1)

	// Circle method: first seat is fixed, the rest rotate.
	rest := make([]int, m-1)
	copy(rest, ids[1:])
	line := make([]int, 0, m)
	line = append(line, ids[0])
	line = append(line, rest[rotation:]...)
	line = append(line, rest[:rotation]...)

	out := &RoundPairings{Round: params.Round, Pairs: make([]Pair, 0, m/2)}
	for i := 0; i < m/2; i++ {
		a, b := line[i], line[m-1-i]
		switch {
		case a == phantom:
			bye := b
			out.ByePlayerID = &bye
		case b == phantom:
			bye := a
			out.ByePlayerID = &bye
		default:
			out.Pairs = append(out.Pairs, Pair{Player1ID: a, Player2ID: b})
		}
	}
	return out, nil
}
