package models

import "time"

// Player is a registered tournament entrant. Code is a human-readable
// registration code assigned when the player is created; it is nullable
// in the persisted shape.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Country   string    `json:"country" db:"country"`
	Code      *string   `json:"code,omitempty" db:"code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
