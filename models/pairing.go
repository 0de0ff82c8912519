package models

// Pairing is one game of the next round.
type Pairing struct {
	Player1ID   int    `json:"player1_id"`
	Player1Name string `json:"player1_name"`
	Player2ID   int    `json:"player2_id"`
	Player2Name string `json:"player2_name"`
}

func NewPairing(p1, p2 PlayerRef) Pairing {
	return Pairing{
		Player1ID:   p1.ID,
		Player1Name: p1.Name,
		Player2ID:   p2.ID,
		Player2Name: p2.Name,
	}
}

// Round is the output of pairing generation. Bye is nil when the player count is even.
type Round struct {
	Pairings   []Pairing  `json:"pairings"`
	Bye        *PlayerRef `json:"bye,omitempty"`
	FirstRound bool       `json:"first_round"`
}

// Snapshot is a consistent read of the whole tournament state.
type Snapshot struct {
	Players []Player
	Matches []Match
}
