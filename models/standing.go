package models

// StandingEntry is derived from the full match history on every request and never stored.
type StandingEntry struct {
	PlayerID int    `json:"id"`
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Matches  int    `json:"matches"` // always Wins + Losses
	Byes     int    `json:"byes"`
}

func (s StandingEntry) Ref() PlayerRef {
	return PlayerRef{ID: s.PlayerID, Name: s.Name}
}
