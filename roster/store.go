package roster

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jelyman2/tournament/models"
)

var (
	ErrDuplicatePlayer = errors.New("player is already registered")
	ErrUnknownPlayer   = errors.New("player is not registered")
	ErrDuplicateMatch  = errors.New("match between these players is already recorded")
	ErrSelfMatch       = errors.New("a player cannot be matched against themselves")
	ErrInvalidResult   = errors.New("invalid match result")
)

// Snapshot is the persisted shape as handed over by the persistence
// collaborator: all players and all recorded matches of one tournament.
type Snapshot struct {
	Players []*models.Player
	Matches []*models.Match
}

type pairKey struct {
	lo, hi int
}

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Store is the in-memory roster and match history of a single tournament.
// All mutations are serialized; reads see a consistent snapshot.
type Store struct {
	mu      sync.RWMutex
	players map[int]*models.Player
	byName  map[string]int
	matches []*models.Match
	played  map[pairKey]bool
	byes    map[int]int
}

func NewStore() *Store {
	return &Store{
		players: make(map[int]*models.Player),
		byName:  make(map[string]int),
		played:  make(map[pairKey]bool),
		byes:    make(map[int]int),
	}
}

// NewStoreFromSnapshot replays a loaded snapshot, re-checking every
// invariant so that corrupt persisted data is rejected at the boundary.
func NewStoreFromSnapshot(snap *Snapshot) (*Store, error) {
	s := NewStore()
	if snap == nil {
		return s, nil
	}
	for _, p := range snap.Players {
		if err := s.Add(p); err != nil {
			return nil, fmt.Errorf("snapshot player %d: %w", p.ID, err)
		}
	}
	for _, m := range snap.Matches {
		if err := s.AddMatch(m); err != nil {
			return nil, fmt.Errorf("snapshot match %d: %w", m.ID, err)
		}
	}
	return s, nil
}

func registrationKey(name, country string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(country))
}

// CheckRegistration reports whether an identical active registration
// already exists for the given name and country.
func (s *Store) CheckRegistration(name, country string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byName[registrationKey(name, country)]; ok {
		return ErrDuplicatePlayer
	}
	return nil
}

// Add commits a fully-formed player (id already allocated) to the roster.
func (s *Store) Add(p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[p.ID]; ok {
		return fmt.Errorf("%w: id %d", ErrDuplicatePlayer, p.ID)
	}
	key := registrationKey(p.Name, p.Country)
	if _, ok := s.byName[key]; ok {
		return fmt.Errorf("%w: %s (%s)", ErrDuplicatePlayer, p.Name, p.Country)
	}

	s.players[p.ID] = p
	s.byName[key] = p.ID
	return nil
}

// CheckMatch validates a match against the roster without recording it.
func (s *Store) CheckMatch(m *models.Match) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkMatchLocked(m)
}

func (s *Store) checkMatchLocked(m *models.Match) error {
	if !m.Result.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidResult, m.Result)
	}
	if _, ok := s.players[m.Player1ID]; !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownPlayer, m.Player1ID)
	}
	if m.IsBye() {
		if m.Result != models.ResultBye {
			return fmt.Errorf("%w: missing second player for result %q", ErrInvalidResult, m.Result)
		}
		return nil
	}
	if m.Result == models.ResultBye {
		return fmt.Errorf("%w: bye result with two players", ErrInvalidResult)
	}
	p2 := *m.Player2ID
	if _, ok := s.players[p2]; !ok {
		return fmt.Errorf("%w: id %d", ErrUnknownPlayer, p2)
	}
	if p2 == m.Player1ID {
		return ErrSelfMatch
	}
	if s.played[makePairKey(m.Player1ID, p2)] {
		return fmt.Errorf("%w: %d vs %d", ErrDuplicateMatch, m.Player1ID, p2)
	}
	return nil
}

// AddMatch records a match outcome. Matches are append-only; the
// no-rematch invariant is enforced here even though the given schema
// does not.
func (s *Store) AddMatch(m *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkMatchLocked(m); err != nil {
		return err
	}

	s.matches = append(s.matches, m)
	if m.IsBye() {
		s.byes[m.Player1ID]++
	} else {
		s.played[makePairKey(m.Player1ID, *m.Player2ID)] = true
	}
	return nil
}

// Player returns the registered player with the given id.
func (s *Store) Player(id int) (*models.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	return p, ok
}

// Players returns the roster ordered by id.
func (s *Store) Players() []*models.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Matches returns the recorded match history in insertion order.
func (s *Store) Matches() []*models.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// Played reports whether the unordered pair already has a recorded match.
func (s *Store) Played(a, b int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.played[makePairKey(a, b)]
}

// HadBye reports whether the player has already received a bye.
func (s *Store) HadBye(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byes[id] > 0
}

// PlayedPairs returns a copy of the played-pair set, keyed by the
// normalized (low id, high id) pair.
func (s *Store) PlayedPairs() map[[2]int]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[[2]int]bool, len(s.played))
	for k := range s.played {
		out[[2]int{k.lo, k.hi}] = true
	}
	return out
}

// ByePlayers returns a copy of the set of players who already had a bye.
func (s *Store) ByePlayers() map[int]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int]bool, len(s.byes))
	for id, n := range s.byes {
		if n > 0 {
			out[id] = true
		}
	}
	return out
}

// Len returns the number of registered players.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

// MatchCount returns the number of recorded matches, byes included.
func (s *Store) MatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches)
}
