package services

import "errors"

// Общие ошибки сервисного слоя; вызывающая сторона проверяет их через errors.Is.
var (
	// Ошибки регистрации
	ErrRegistrationClosed    = errors.New("player registration is closed")
	ErrPlayerNameInvalid     = errors.New("player name is invalid")
	ErrPlayerCountryRequired = errors.New("player country is required")
	ErrDuplicatePlayer       = errors.New("player is already registered")
	ErrRegistrationFailed    = errors.New("failed to register player")

	// Ошибки записи результатов
	ErrUnknownPlayer     = errors.New("match references an unregistered player")
	ErrDuplicateMatch    = errors.New("rematch attempted: pair already has a recorded match")
	ErrMatchNotScheduled = errors.New("match is not scheduled in the current round")
	ErrInvalidResult     = errors.New("invalid match result")
	ErrRecordMatchFailed = errors.New("failed to record match")

	// Ошибки состояния турнира
	ErrInvalidStateTransition = errors.New("invalid tournament state transition")
	ErrTournamentFinished     = errors.New("tournament is finished")
	ErrNotEnoughPlayers       = errors.New("not enough players registered (minimum 2)")

	// Ошибки генерации пар. Поиск исчерпан: решает вызывающая сторона -
	// ослабить ограничения или завершить турнир.
	ErrNoValidPairing = errors.New("no valid pairing exists for the next round")
	ErrPairingFailed  = errors.New("failed to generate round pairings")
)
