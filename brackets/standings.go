package brackets

import (
	"sort"

	"github.com/Dosada05/swiss-tournament/models"
)

// ComputeStandings ranks every player by wins descending, then losses ascending.
// Players that never played are included with a zero record. Full ties keep the
// order in which players were given.
func ComputeStandings(players []models.Player, matches []models.Match) []models.StandingEntry {
	standings := make([]models.StandingEntry, 0, len(players))
	position := make(map[int]int, len(players))
	for _, p := range players {
		if _, dup := position[p.ID]; dup {
			continue
		}
		position[p.ID] = len(standings)
		standings = append(standings, models.StandingEntry{PlayerID: p.ID, Name: p.Name})
	}

	for _, m := range matches {
		if i, ok := position[m.WinnerID]; ok {
			standings[i].Wins++
			standings[i].Matches++
			if m.Bye {
				standings[i].Byes++
			}
		}
		if m.Bye {
			continue
		}
		if i, ok := position[m.LoserID]; ok {
			standings[i].Losses++
			standings[i].Matches++
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].Losses < standings[j].Losses
	})

	return standings
}
