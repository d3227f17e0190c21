package roster

import (
	"sort"

	"github.com/jelyman2/tournament/models"
)

// Standings returns the current ranking. Ordering is fixed for
// reproducibility: wins descending, then opponent wins (sum of wins of
// all opponents faced) descending, then player id ascending. A bye
// scores as a win and is tallied separately.
func (s *Store) Standings() []*models.StandingRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make(map[int]*models.StandingRow, len(s.players))
	for id, p := range s.players {
		rows[id] = &models.StandingRow{Player: p}
	}
	opponents := make(map[int][]int, len(s.players))

	for _, m := range s.matches {
		p1 := rows[m.Player1ID]
		if m.IsBye() {
			p1.Wins++
			p1.Byes++
			continue
		}
		p2 := rows[*m.Player2ID]
		opponents[m.Player1ID] = append(opponents[m.Player1ID], *m.Player2ID)
		opponents[*m.Player2ID] = append(opponents[*m.Player2ID], m.Player1ID)

		switch m.Result {
		case models.ResultPlayer1Win:
			p1.Wins++
			p2.Losses++
		case models.ResultPlayer2Win:
			p2.Wins++
			p1.Losses++
		case models.ResultDraw:
			p1.Draws++
			p2.Draws++
		}
	}

	for id, row := range rows {
		for _, opp := range opponents[id] {
			row.OpponentWins += rows[opp].Wins
		}
	}

	out := make([]*models.StandingRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].OpponentWins != out[j].OpponentWins {
			return out[i].OpponentWins > out[j].OpponentWins
		}
		return out[i].Player.ID < out[j].Player.ID
	})
	for i, row := range out {
		row.Rank = i + 1
	}
	return out
}
