// Package render writes roster, pairing and standings listings as text
// tables, the way the reporting surface presents them.
package render

import (
	"io"
	"strconv"

	"github.com/jelyman2/tournament/models"
	"github.com/jelyman2/tournament/pairing"
	"github.com/olekukonko/tablewriter"
)

// PlayerLookup resolves a player id for display. A nil result renders
// as the id alone.
type PlayerLookup func(id int) *models.Player

// Standings writes the ranking table.
func Standings(w io.Writer, rows []*models.StandingRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Player", "Country", "W", "L", "D", "OppW"})
	for _, row := range rows {
		table.Append([]string{
			strconv.Itoa(row.Rank),
			row.Player.Name,
			row.Player.Country,
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.Draws),
			strconv.Itoa(row.OpponentWins),
		})
	}
	table.Render()
}

// Pairings writes the slate for one round, bye row last.
func Pairings(w io.Writer, rp *pairing.RoundPairings, lookup PlayerLookup) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Round", "Player 1", "Player 2"})
	round := strconv.Itoa(rp.Round)
	for _, p := range rp.Pairs {
		table.Append([]string{round, displayName(p.Player1ID, lookup), displayName(p.Player2ID, lookup)})
	}
	if rp.ByePlayerID != nil {
		table.Append([]string{round, displayName(*rp.ByePlayerID, lookup), "------BYE------"})
	}
	table.Render()
}

// Roster writes the registered player list ordered as given.
func Roster(w io.Writer, players []*models.Player) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Country", "Code"})
	for _, p := range players {
		code := ""
		if p.Code != nil {
			code = *p.Code
		}
		table.Append([]string{strconv.Itoa(p.ID), p.Name, p.Country, code})
	}
	table.Render()
}

func displayName(id int, lookup PlayerLookup) string {
	if lookup != nil {
		if p := lookup(id); p != nil {
			return p.Name
		}
	}
	return "#" + strconv.Itoa(id)
}
