package models

import "time"

// Match is one completed game. A bye is stored as a match without a loser.
type Match struct {
	ID        int       `json:"id" db:"id"`
	WinnerID  int       `json:"winner_id" db:"winner_id"`
	LoserID   int       `json:"loser_id,omitempty" db:"loser_id"` // 0 when Bye is set
	Bye       bool      `json:"bye" db:"bye"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Involves reports whether the two players met in this match, in either order.
func (m Match) Involves(a, b int) bool {
	if m.Bye {
		return false
	}
	return (m.WinnerID == a && m.LoserID == b) || (m.WinnerID == b && m.LoserID == a)
}
