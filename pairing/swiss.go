package pairing

import (
	"context"
	"fmt"
)

// DefaultSearchLimit bounds the backtracking search. The search is
// polynomial for realistic rosters; the limit is a hard stop against
// pathological histories.
const DefaultSearchLimit = 200000

// SwissGenerator pairs players with equal or closest scores while never
// repeating a prior matchup. The standings order of Params already
// encodes the score groups and the tie-break order within each group,
// so the search walks the ranked list: each player is tried against the
// nearest-ranked compatible opponent first, then outward, backtracking
// when a later player becomes unpairable.
type SwissGenerator struct {
	searchLimit int
}

// NewSwissGenerator returns a Swiss pairing generator. A searchLimit of
// 0 selects DefaultSearchLimit.
func NewSwissGenerator(searchLimit int) Generator {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &SwissGenerator{searchLimit: searchLimit}
}

func (g *SwissGenerator) Name() string {
	return "Swiss"
}

func (g *SwissGenerator) Generate(ctx context.Context, params Params) (*RoundPairings, error) {
	n := len(params.Standings)
	if n < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrNotEnoughPlayers, n)
	}

	ranked := make([]int, n)
	for i, row := range params.Standings {
		ranked[i] = row.Player.ID
	}

	budget := g.searchLimit

	if n%2 == 0 {
		pairs, ok := pairRanked(ranked, params.Played, &budget)
		if !ok {
			return nil, searchFailure(budget)
		}
		return &RoundPairings{Round: params.Round, Pairs: pairs}, nil
	}

	// Odd roster: exactly one bye. The recipient is the lowest-ranked
	// player without a prior bye whose removal leaves the rest pairable.
	for i := n - 1; i >= 0; i-- {
		bye := ranked[i]
		if params.Byes[bye] {
			continue
		}
		rest := make([]int, 0, n-1)
		rest = append(rest, ranked[:i]...)
		rest = append(rest, ranked[i+1:]...)

		pairs, ok := pairRanked(rest, params.Played, &budget)
		if ok {
			return &RoundPairings{Round: params.Round, Pairs: pairs, ByePlayerID: &bye}, nil
		}
		if budget <= 0 {
			return nil, searchFailure(budget)
		}
	}
	return nil, fmt.Errorf("%w: no bye candidate leaves a pairable roster", ErrNoValidPairing)
}

func searchFailure(budget int) error {
	if budget <= 0 {
		return fmt.Errorf("%w: search limit exhausted", ErrNoValidPairing)
	}
	return fmt.Errorf("%w: every arrangement repeats a prior match", ErrNoValidPairing)
}

// pairRanked pairs an even-length, rank-ordered id list without
// repeating any played pair. Each recursion pins the best-ranked
// unpaired player and tries opponents in rank order, so adjacent
// pairings within a score group are preferred and the search spills
// into neighbouring groups only when forced.
func pairRanked(ranked []int, played map[[2]int]bool, budget *int) ([]Pair, bool) {
	if len(ranked) == 0 {
		return nil, true
	}
	first := ranked[0]
	for j := 1; j < len(ranked); j++ {
		if *budget <= 0 {
			return nil, false
		}
		*budget--

		opp := ranked[j]
		if played[Key(first, opp)] {
			continue
		}

		rest := make([]int, 0, len(ranked)-2)
		rest = append(rest, ranked[1:j]...)
		rest = append(rest, ranked[j+1:]...)

		if sub, ok := pairRanked(rest, played, budget); ok {
			pairs := make([]Pair, 0, len(sub)+1)
			pairs = append(pairs, Pair{Player1ID: first, Player2ID: opp})
			pairs = append(pairs, sub...)
			return pairs, true
		}
	}
	return nil, false
}
