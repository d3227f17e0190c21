package services

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/jelyman2/tournament/models"
)

func isValidStateTransition(current, next models.TournamentState) bool {
	if current == next {
		return false
	}
	allowedTransitions := map[models.TournamentState][]models.TournamentState{
		models.StateRegistration:    {models.StateRoundInProgress, models.StateFinished},
		models.StateRoundInProgress: {models.StateRoundComplete},
		models.StateRoundComplete:   {models.StateRoundInProgress, models.StateFinished},
		models.StateFinished:        {},
	}
	for _, allowedNext := range allowedTransitions[current] {
		if next == allowedNext {
			return true
		}
	}
	return false
}

var (
	nameDigitRegexp  = regexp.MustCompile(`[0-9]`)
	nameSymbolRegexp = regexp.MustCompile("[!@#$%^&*()~`+=]")
)

// validatePlayerName enforces the registration rules: a real name has at
// least two characters, a surname, and no digits or symbols.
func validatePlayerName(name string) error {
	if len(name) < 2 {
		return fmt.Errorf("%w: shorter than 2 characters", ErrPlayerNameInvalid)
	}
	if !strings.Contains(name, " ") {
		return fmt.Errorf("%w: missing surname", ErrPlayerNameInvalid)
	}
	if nameDigitRegexp.MatchString(name) {
		return fmt.Errorf("%w: contains digits", ErrPlayerNameInvalid)
	}
	if nameSymbolRegexp.MatchString(name) {
		return fmt.Errorf("%w: contains symbols", ErrPlayerNameInvalid)
	}
	return nil
}

// registrationCode builds the human-readable code stored in the nullable
// players.code column: a short name prefix plus random digits.
func registrationCode(name string) string {
	prefix := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	return prefix + strconv.Itoa(1000001+rand.Intn(8999999))
}

// autoRoundCount is the standard Swiss round count: ceil(log2(N)).
func autoRoundCount(players int) int {
	rounds := 0
	for 1<<rounds < players {
		rounds++
	}
	return rounds
}
