package models

import "time"

// Player is a registered tournament entrant. Name need not be unique.
type Player struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlayerRef identifies a player inside derived results (pairings, byes).
type PlayerRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (p Player) Ref() PlayerRef {
	return PlayerRef{ID: p.ID, Name: p.Name}
}
