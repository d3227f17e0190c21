package repositories

import (
	"context"
	"fmt"

	"github.com/jelyman2/tournament/models"
	"github.com/jelyman2/tournament/roster"
	"golang.org/x/sync/errgroup"
)

// LoadRoster fetches the full persisted shape in one go. Players and
// matches are listed concurrently; the caller replays the snapshot into
// a roster.Store, which re-checks every invariant.
func LoadRoster(ctx context.Context, players PlayerRepository, matches MatchRepository) (*roster.Snapshot, error) {
	var (
		playerRows []*models.Player
		matchRows  []*models.Match
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := players.List(ctx)
		if err != nil {
			return fmt.Errorf("load players: %w", err)
		}
		playerRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := matches.List(ctx, nil)
		if err != nil {
			return fmt.Errorf("load matches: %w", err)
		}
		matchRows = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &roster.Snapshot{Players: playerRows, Matches: matchRows}, nil
}
