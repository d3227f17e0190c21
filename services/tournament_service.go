package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jelyman2/tournament/models"
	"github.com/jelyman2/tournament/pairing"
	"github.com/jelyman2/tournament/repositories"
	"github.com/jelyman2/tournament/roster"
)

type RegisterPlayerInput struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type RecordMatchInput struct {
	Player1ID int                `json:"player_1"`
	Player2ID int                `json:"player_2"`
	Result    models.MatchResult `json:"result"`
}

// TournamentService is the entire public surface of the pairing engine.
// Every mutation for one tournament is serialized behind one mutex;
// pairing generation itself runs on a consistent snapshot of the roster.
type TournamentService interface {
	Tournament() models.Tournament
	Load(ctx context.Context) error
	RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*models.Player, error)
	RecordMatch(ctx context.Context, input RecordMatchInput) (*models.Match, error)
	Standings(ctx context.Context) ([]*models.StandingRow, error)
	NextRoundPairings(ctx context.Context) (*pairing.RoundPairings, error)
	CurrentPairings() *pairing.RoundPairings
	Roster(ctx context.Context) ([]*models.Player, error)
	AuditLog(ctx context.Context, limit int) ([]*models.AuditEntry, error)
	Finish(ctx context.Context) error
}

type tournamentService struct {
	mu         sync.Mutex
	tournament *models.Tournament
	store      *roster.Store
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	auditRepo  repositories.AuditLogRepository
	generator  pairing.Generator
	logger     *slog.Logger

	current *pairing.RoundPairings
	pending map[[2]int]bool
}

// NewTournamentService builds the engine around an explicit tournament
// context object. auditRepo may be nil to disable the audit trail; a nil
// generator selects Swiss pairing with the default search limit.
func NewTournamentService(
	tournament *models.Tournament,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	auditRepo repositories.AuditLogRepository,
	generator pairing.Generator,
	logger *slog.Logger,
) TournamentService {
	if tournament.State == "" {
		tournament.State = models.StateRegistration
	}
	if generator == nil {
		generator = pairing.NewSwissGenerator(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &tournamentService{
		tournament: tournament,
		store:      roster.NewStore(),
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		auditRepo:  auditRepo,
		generator:  generator,
		logger:     logger,
	}
}

func (s *tournamentService) Tournament() models.Tournament {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.tournament
}

// Load replays the persisted roster and match history into the in-memory
// store. The round slate itself is not persisted, so a loaded tournament
// resumes at the boundary of its last recorded round: pairings of an
// interrupted round that never got a result are dropped and the round is
// treated as complete. The caller must also carry TotalRounds across a
// resume: the automatic round count is fixed at first pairing only, so
// a resumed tournament with TotalRounds of 0 never finishes on its own.
func (s *tournamentService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return fmt.Errorf("%w: cannot reload while a round is in progress", ErrInvalidStateTransition)
	}

	snap, err := repositories.LoadRoster(ctx, s.playerRepo, s.matchRepo)
	if err != nil {
		return fmt.Errorf("failed to load roster snapshot: %w", err)
	}
	store, err := roster.NewStoreFromSnapshot(snap)
	if err != nil {
		return fmt.Errorf("persisted state violates roster invariants: %w", err)
	}

	lastRound := 0
	for _, m := range snap.Matches {
		if m.Round > lastRound {
			lastRound = m.Round
		}
	}

	s.store = store
	s.tournament.CurrentRound = lastRound
	switch {
	case lastRound == 0:
		s.tournament.State = models.StateRegistration
	case s.tournament.TotalRounds > 0 && lastRound >= s.tournament.TotalRounds:
		s.tournament.State = models.StateFinished
	default:
		s.tournament.State = models.StateRoundComplete
	}

	s.logger.Info("roster loaded",
		slog.Int("players", store.Len()),
		slog.Int("matches", store.MatchCount()),
		slog.String("state", string(s.tournament.State)),
	)
	return nil
}

func (s *tournamentService) RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tournament.State != models.StateRegistration {
		return nil, fmt.Errorf("%w: tournament is %s", ErrRegistrationClosed, s.tournament.State)
	}

	name := strings.TrimSpace(input.Name)
	country := strings.TrimSpace(input.Country)
	if err := validatePlayerName(name); err != nil {
		return nil, err
	}
	if country == "" {
		return nil, ErrPlayerCountryRequired
	}
	if err := s.store.CheckRegistration(name, country); err != nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicatePlayer, name, country)
	}

	code := registrationCode(name)
	player := &models.Player{
		Name:    name,
		Country: country,
		Code:    &code,
	}

	// Persist first, then commit to the store: the id is allocated by
	// the persistence collaborator and no partial mutation is visible.
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerConflict) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicatePlayer, name, country)
		}
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	if player.CreatedAt.IsZero() {
		player.CreatedAt = time.Now()
	}
	if err := s.store.Add(player); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	s.audit(ctx, "register_player", fmt.Sprintf("registered %s from %s (id %d)", name, country, player.ID))
	s.logger.Info("player registered",
		slog.Int("player_id", player.ID),
		slog.String("name", name),
		slog.String("country", country),
	)
	return player, nil
}

func (s *tournamentService) RecordMatch(ctx context.Context, input RecordMatchInput) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tournament.State != models.StateRoundInProgress {
		return nil, fmt.Errorf("%w: no round in progress (tournament is %s)", ErrInvalidStateTransition, s.tournament.State)
	}
	if input.Result == models.ResultBye {
		return nil, fmt.Errorf("%w: byes are awarded by the engine, not recorded", ErrInvalidResult)
	}

	p2 := input.Player2ID
	match := &models.Match{
		Player1ID: input.Player1ID,
		Player2ID: &p2,
		Result:    input.Result,
		Round:     s.tournament.CurrentRound,
		PlayedAt:  time.Now(),
	}

	if err := s.store.CheckMatch(match); err != nil {
		return nil, mapRosterError(err)
	}
	key := pairing.Key(input.Player1ID, p2)
	if !s.pending[key] {
		return nil, fmt.Errorf("%w: %d vs %d in round %d", ErrMatchNotScheduled, input.Player1ID, p2, s.tournament.CurrentRound)
	}

	if err := s.persistMatch(ctx, match); err != nil {
		return nil, err
	}
	if err := s.store.AddMatch(match); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecordMatchFailed, err)
	}
	delete(s.pending, key)

	s.audit(ctx, "record_match", fmt.Sprintf("round %d: %d vs %d, result %s", match.Round, match.Player1ID, p2, match.Result))
	s.logger.Info("match recorded",
		slog.Int("match_id", match.ID),
		slog.Int("round", match.Round),
		slog.Int("player_1", match.Player1ID),
		slog.Int("player_2", p2),
		slog.String("result", string(match.Result)),
	)

	if len(s.pending) == 0 {
		s.completeRoundLocked(ctx)
	}
	return match, nil
}

func (s *tournamentService) Standings(ctx context.Context) ([]*models.StandingRow, error) {
	return s.currentStore().Standings(), nil
}

func (s *tournamentService) NextRoundPairings(ctx context.Context) (*pairing.RoundPairings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.tournament.State {
	case models.StateRegistration, models.StateRoundComplete:
		// pairable
	case models.StateFinished:
		return nil, ErrTournamentFinished
	default:
		return nil, fmt.Errorf("%w: previous round is not complete", ErrInvalidStateTransition)
	}
	if s.store.Len() < 2 {
		return nil, ErrNotEnoughPlayers
	}

	if s.tournament.State == models.StateRegistration && s.tournament.TotalRounds == 0 {
		s.tournament.TotalRounds = autoRoundCount(s.store.Len())
		s.logger.Info("round count fixed", slog.Int("total_rounds", s.tournament.TotalRounds))
	}

	round := s.tournament.CurrentRound + 1
	params := pairing.Params{
		Round:     round,
		Standings: s.store.Standings(),
		Played:    s.store.PlayedPairs(),
		Byes:      s.store.ByePlayers(),
	}

	rp, err := s.generator.Generate(ctx, params)
	if err != nil {
		switch {
		case errors.Is(err, pairing.ErrNoValidPairing):
			return nil, fmt.Errorf("%w: %w", ErrNoValidPairing, err)
		case errors.Is(err, pairing.ErrNotEnoughPlayers):
			return nil, ErrNotEnoughPlayers
		}
		return nil, fmt.Errorf("%w: %w", ErrPairingFailed, err)
	}

	// The bye is awarded immediately; the round starts only once it is
	// safely persisted.
	if rp.ByePlayerID != nil {
		bye := &models.Match{
			Player1ID: *rp.ByePlayerID,
			Result:    models.ResultBye,
			Round:     round,
			PlayedAt:  time.Now(),
		}
		if err := s.persistMatch(ctx, bye); err != nil {
			return nil, err
		}
		if err := s.store.AddMatch(bye); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPairingFailed, err)
		}
		s.audit(ctx, "award_bye", fmt.Sprintf("round %d: bye awarded to player %d", round, *rp.ByePlayerID))
	}

	if err := s.transitionLocked(models.StateRoundInProgress); err != nil {
		return nil, err
	}
	s.tournament.CurrentRound = round
	s.current = rp
	s.pending = make(map[[2]int]bool, len(rp.Pairs))
	for _, p := range rp.Pairs {
		s.pending[pairing.Key(p.Player1ID, p.Player2ID)] = true
	}

	s.audit(ctx, "pair_round", fmt.Sprintf("round %d paired via %s: %d pairs", round, s.generator.Name(), len(rp.Pairs)))
	s.logger.Info("round paired",
		slog.Int("round", round),
		slog.String("generator", s.generator.Name()),
		slog.Int("pairs", len(rp.Pairs)),
		slog.Bool("bye", rp.ByePlayerID != nil),
	)
	return rp, nil
}

// CurrentPairings returns the slate of the round in progress, nil
// otherwise.
func (s *tournamentService) CurrentPairings() *pairing.RoundPairings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	out := &pairing.RoundPairings{
		Round:       s.current.Round,
		Pairs:       append([]pairing.Pair(nil), s.current.Pairs...),
		ByePlayerID: s.current.ByePlayerID,
	}
	return out
}

func (s *tournamentService) Roster(ctx context.Context) ([]*models.Player, error) {
	return s.currentStore().Players(), nil
}

// currentStore pins the store pointer under the service mutex: Load swaps
// it wholesale, so unsynchronized reads could observe a torn replacement.
func (s *tournamentService) currentStore() *roster.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store
}

func (s *tournamentService) AuditLog(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	if s.auditRepo == nil {
		return []*models.AuditEntry{}, nil
	}
	return s.auditRepo.ListRecent(ctx, limit)
}

// Finish ends the tournament by explicit operator action. A round in
// progress must be played out (or its results recorded) first.
func (s *tournamentService) Finish(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tournament.State == models.StateFinished {
		return ErrTournamentFinished
	}
	if err := s.transitionLocked(models.StateFinished); err != nil {
		return err
	}
	s.audit(ctx, "finish", fmt.Sprintf("tournament finished after round %d", s.tournament.CurrentRound))
	s.logger.Info("tournament finished", slog.Int("rounds_played", s.tournament.CurrentRound))
	return nil
}

func (s *tournamentService) completeRoundLocked(ctx context.Context) {
	if err := s.transitionLocked(models.StateRoundComplete); err != nil {
		// Unreachable from RoundInProgress; log and keep going.
		s.logger.Error("round completion transition failed", slog.Any("error", err))
		return
	}
	s.current = nil
	s.pending = nil
	s.audit(ctx, "complete_round", fmt.Sprintf("round %d complete", s.tournament.CurrentRound))
	s.logger.Info("round complete", slog.Int("round", s.tournament.CurrentRound))

	if s.tournament.TotalRounds > 0 && s.tournament.CurrentRound >= s.tournament.TotalRounds {
		if err := s.transitionLocked(models.StateFinished); err == nil {
			s.audit(ctx, "finish", fmt.Sprintf("tournament finished after round %d", s.tournament.CurrentRound))
			s.logger.Info("tournament finished", slog.Int("rounds_played", s.tournament.CurrentRound))
		}
	}
}

func (s *tournamentService) transitionLocked(next models.TournamentState) error {
	if !isValidStateTransition(s.tournament.State, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, s.tournament.State, next)
	}
	s.tournament.State = next
	return nil
}

func (s *tournamentService) persistMatch(ctx context.Context, match *models.Match) error {
	err := s.matchRepo.Create(ctx, nil, match)
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repositories.ErrMatchPlayerInvalid):
		return fmt.Errorf("%w: %v", ErrUnknownPlayer, err)
	case errors.Is(err, repositories.ErrMatchPairConflict):
		return fmt.Errorf("%w: %d vs %v", ErrDuplicateMatch, match.Player1ID, match.Player2ID)
	}
	return fmt.Errorf("%w: %w", ErrRecordMatchFailed, err)
}

// audit appends to the audit trail; failures are logged, never fatal.
func (s *tournamentService) audit(ctx context.Context, action, entry string) {
	if s.auditRepo == nil {
		return
	}
	e := &models.AuditEntry{
		Action: action,
		Entry:  entry,
		UID:    uuid.NewString(),
	}
	if err := s.auditRepo.Append(ctx, e); err != nil {
		s.logger.Warn("audit append failed", slog.String("action", action), slog.Any("error", err))
	}
}

func mapRosterError(err error) error {
	switch {
	case errors.Is(err, roster.ErrUnknownPlayer):
		return fmt.Errorf("%w: %v", ErrUnknownPlayer, err)
	case errors.Is(err, roster.ErrDuplicateMatch):
		return fmt.Errorf("%w: %v", ErrDuplicateMatch, err)
	case errors.Is(err, roster.ErrSelfMatch), errors.Is(err, roster.ErrInvalidResult):
		return fmt.Errorf("%w: %v", ErrInvalidResult, err)
	}
	return err
}
