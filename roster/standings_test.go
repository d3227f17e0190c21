package roster

import (
	"reflect"
	"testing"

	"github.com/jelyman2/tournament/models"
)

func standingsOrder(rows []*models.StandingRow) []int {
	ids := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.Player.ID
	}
	return ids
}

func TestStandingsOrdering(t *testing.T) {
	s := newTestStore(t,
		testPlayer(1, "Alice Aronson", "Sweden"),
		testPlayer(2, "Bob Briggs", "Canada"),
		testPlayer(3, "Cara Cole", "Ireland"),
		testPlayer(4, "Dan Drake", "Wales"),
	)
	// Round 1: 1 beat 2, 3 beat 4. Round 2: 1 beat 3.
	for _, m := range []*models.Match{
		testMatch(1, 1, 2, models.ResultPlayer1Win, 1),
		testMatch(2, 3, 4, models.ResultPlayer1Win, 1),
		testMatch(3, 1, 3, models.ResultPlayer1Win, 2),
	} {
		if err := s.AddMatch(m); err != nil {
			t.Fatalf("AddMatch(%d): %v", m.ID, err)
		}
	}

	rows := s.Standings()
	// Player 2's only opponent has 2 wins, player 4's has 1: the
	// opponent-wins tie-break ranks 2 above 4 despite equal scores.
	want := []int{1, 3, 2, 4}
	if got := standingsOrder(rows); !reflect.DeepEqual(got, want) {
		t.Fatalf("standings order = %v, want %v", got, want)
	}

	for i, row := range rows {
		if row.Rank != i+1 {
			t.Fatalf("row %d has rank %d", i, row.Rank)
		}
	}
	if rows[2].OpponentWins != 2 || rows[3].OpponentWins != 1 {
		t.Fatalf("opponent wins = %d, %d; want 2, 1", rows[2].OpponentWins, rows[3].OpponentWins)
	}
	// Win counts are a total order: any player with more wins ranks higher.
	for i := 1; i < len(rows); i++ {
		if rows[i].Wins > rows[i-1].Wins {
			t.Fatalf("rank %d has more wins than rank %d", i+1, i)
		}
	}
}

func TestStandingsTiesBrokenByID(t *testing.T) {
	s := newTestStore(t,
		testPlayer(2, "Bob Briggs", "Canada"),
		testPlayer(1, "Alice Aronson", "Sweden"),
	)
	rows := s.Standings()
	if got := standingsOrder(rows); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("zero-score tie must order by id, got %v", got)
	}
}

func TestStandingsByeScoresAsWin(t *testing.T) {
	s := newTestStore(t,
		testPlayer(1, "Alice Aronson", "Sweden"),
		testPlayer(2, "Bob Briggs", "Canada"),
	)
	if err := s.AddMatch(testBye(1, 2, 1)); err != nil {
		t.Fatalf("AddMatch: %v", err)
	}
	rows := s.Standings()
	if rows[0].Player.ID != 2 || rows[0].Wins != 1 || rows[0].Byes != 1 {
		t.Fatalf("bye recipient row = %+v", rows[0])
	}
	// A bye contributes no opponent.
	if rows[0].OpponentWins != 0 {
		t.Fatalf("bye must not contribute opponent wins, got %d", rows[0].OpponentWins)
	}
}

func TestStandingsDrawTally(t *testing.T) {
	s := newTestStore(t,
		testPlayer(1, "Alice Aronson", "Sweden"),
		testPlayer(2, "Bob Briggs", "Canada"),
	)
	if err := s.AddMatch(testMatch(1, 1, 2, models.ResultDraw, 1)); err != nil {
		t.Fatalf("AddMatch: %v", err)
	}
	rows := s.Standings()
	for _, row := range rows {
		if row.Draws != 1 || row.Wins != 0 || row.Losses != 0 {
			t.Fatalf("draw tally wrong for player %d: %+v", row.Player.ID, row)
		}
		if row.GamesPlayed() != 1 {
			t.Fatalf("GamesPlayed = %d, want 1", row.GamesPlayed())
		}
	}
}

func TestStandingsIdempotent(t *testing.T) {
	s := newTestStore(t,
		testPlayer(1, "Alice Aronson", "Sweden"),
		testPlayer(2, "Bob Briggs", "Canada"),
		testPlayer(3, "Cara Cole", "Ireland"),
	)
	if err := s.AddMatch(testMatch(1, 1, 2, models.ResultPlayer2Win, 1)); err != nil {
		t.Fatalf("AddMatch: %v", err)
	}
	first := s.Standings()
	second := s.Standings()
	if !reflect.DeepEqual(first, second) {
		t.Fatal("standings must be identical with no intervening mutation")
	}
}
