package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jelyman2/tournament/models"
	"github.com/jelyman2/tournament/pairing"
)

func testPlayers() []*models.Player {
	code := "alic1234567"
	return []*models.Player{
		{ID: 1, Name: "Alice Aronson", Country: "Sweden", Code: &code},
		{ID: 2, Name: "Bob Briggs", Country: "Canada"},
		{ID: 3, Name: "Cara Cole", Country: "Ireland"},
	}
}

func lookupFrom(players []*models.Player) PlayerLookup {
	return func(id int) *models.Player {
		for _, p := range players {
			if p.ID == id {
				return p
			}
		}
		return nil
	}
}

func TestStandingsTable(t *testing.T) {
	players := testPlayers()
	rows := []*models.StandingRow{
		{Player: players[0], Rank: 1, Wins: 2, OpponentWins: 1},
		{Player: players[1], Rank: 2, Wins: 1, Losses: 1},
		{Player: players[2], Rank: 3, Losses: 2},
	}

	var buf bytes.Buffer
	Standings(&buf, rows)

	out := buf.String()
	for _, want := range []string{"PLAYER", "Alice Aronson", "Bob Briggs", "Cara Cole", "Sweden"} {
		if !strings.Contains(out, want) {
			t.Errorf("standings output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Alice Aronson") > strings.Index(out, "Cara Cole") {
		t.Errorf("rows out of rank order:\n%s", out)
	}
}

func TestPairingsTableWithBye(t *testing.T) {
	players := testPlayers()
	bye := 3
	rp := &pairing.RoundPairings{
		Round:       2,
		Pairs:       []pairing.Pair{{Player1ID: 1, Player2ID: 2}},
		ByePlayerID: &bye,
	}

	var buf bytes.Buffer
	Pairings(&buf, rp, lookupFrom(players))

	out := buf.String()
	for _, want := range []string{"Alice Aronson", "Bob Briggs", "Cara Cole", "------BYE------"} {
		if !strings.Contains(out, want) {
			t.Errorf("pairings output missing %q:\n%s", want, out)
		}
	}
}

func TestPairingsTableUnknownPlayerFallsBackToID(t *testing.T) {
	rp := &pairing.RoundPairings{
		Round: 1,
		Pairs: []pairing.Pair{{Player1ID: 7, Player2ID: 8}},
	}

	var buf bytes.Buffer
	Pairings(&buf, rp, nil)

	out := buf.String()
	if !strings.Contains(out, "#7") || !strings.Contains(out, "#8") {
		t.Errorf("expected id fallback in output:\n%s", out)
	}
}

func TestRosterTable(t *testing.T) {
	var buf bytes.Buffer
	Roster(&buf, testPlayers())

	out := buf.String()
	for _, want := range []string{"Alice Aronson", "alic1234567", "Ireland"} {
		if !strings.Contains(out, want) {
			t.Errorf("roster output missing %q:\n%s", want, out)
		}
	}
}
