package brackets

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/Dosada05/swiss-tournament/models"
)

// DefaultMaxSearchSteps bounds the rematch-avoiding search. Real fields resolve in a
// handful of steps; the bound only matters for large, heavily played fields.
const DefaultMaxSearchSteps = 1_000_000

// ctxCheckInterval is how many search steps pass between context checks.
const ctxCheckInterval = 1024

type SwissGenerator struct {
	mu             sync.Mutex
	rng            *rand.Rand
	maxSearchSteps int
}

// NewSwissGenerator returns a generator that shuffles the first round with rng.
// A nil rng uses the package-level math/rand/v2 source.
func NewSwissGenerator(rng *rand.Rand) *SwissGenerator {
	return &SwissGenerator{rng: rng, maxSearchSteps: DefaultMaxSearchSteps}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

// WithMaxSearchSteps overrides the search bound. Values below 1 are ignored.
func (g *SwissGenerator) WithMaxSearchSteps(steps int) *SwissGenerator {
	if steps > 0 {
		g.maxSearchSteps = steps
	}
	return g
}

// GeneratePairings produces the next round. Without any recorded match the players
// are shuffled and paired in order; otherwise they are paired down the standings,
// never repeating a game that was already played. With an odd count one player gets
// a bye, preferring the lowest ranked player who has had the fewest byes.
// A cancelled ctx stops the search and its error is returned.
func (g *SwissGenerator) GeneratePairings(ctx context.Context, params GeneratePairingsParams) (*models.Round, error) {
	players := uniquePlayers(params.Players)
	if len(players) < 2 {
		return nil, fmt.Errorf("%w (found %d)", ErrInsufficientPlayers, len(players))
	}

	if len(params.Matches) == 0 {
		return g.firstRound(players), nil
	}

	standings := ComputeStandings(players, params.Matches)
	ranked := make([]models.PlayerRef, len(standings))
	for i, s := range standings {
		ranked[i] = s.Ref()
	}

	search := &pairingSearch{
		ctx:      ctx,
		played:   playedPairs(params.Matches),
		maxSteps: g.maxSearchSteps,
	}

	if len(ranked)%2 == 0 {
		pairings, ok := search.pair(ranked)
		if !ok {
			return nil, search.exhausted(len(ranked))
		}
		return &models.Round{Pairings: pairings}, nil
	}

	for _, idx := range byeCandidates(standings) {
		rest := make([]models.PlayerRef, 0, len(ranked)-1)
		rest = append(rest, ranked[:idx]...)
		rest = append(rest, ranked[idx+1:]...)

		if pairings, ok := search.pair(rest); ok {
			bye := ranked[idx]
			return &models.Round{Pairings: pairings, Bye: &bye}, nil
		}
		if search.limitReached() {
			break
		}
	}

	return nil, search.exhausted(len(ranked))
}

// uniquePlayers drops repeated IDs, keeping the first occurrence.
func uniquePlayers(players []models.Player) []models.Player {
	seen := make(map[int]struct{}, len(players))
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

func (g *SwissGenerator) firstRound(players []models.Player) *models.Round {
	order := make([]models.PlayerRef, len(players))
	for i, p := range players {
		order[i] = p.Ref()
	}
	g.shuffle(order)

	round := &models.Round{FirstRound: true}
	if len(order)%2 == 1 {
		bye := order[len(order)-1]
		round.Bye = &bye
		order = order[:len(order)-1]
	}

	round.Pairings = make([]models.Pairing, 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		round.Pairings = append(round.Pairings, models.NewPairing(order[i], order[i+1]))
	}
	return round
}

func (g *SwissGenerator) shuffle(order []models.PlayerRef) {
	swap := func(i, j int) { order[i], order[j] = order[j], order[i] }
	if g.rng == nil {
		rand.Shuffle(len(order), swap)
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng.Shuffle(len(order), swap)
}

// byeCandidates returns standings indices in the order they should be tried for a
// bye: fewest previous byes first, lowest ranked first among equals.
func byeCandidates(standings []models.StandingEntry) []int {
	candidates := make([]int, len(standings))
	for i := range candidates {
		candidates[i] = len(standings) - 1 - i
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return standings[candidates[a]].Byes < standings[candidates[b]].Byes
	})
	return candidates
}

type pairKey struct{ low, high int }

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

func playedPairs(matches []models.Match) map[pairKey]struct{} {
	played := make(map[pairKey]struct{}, len(matches))
	for _, m := range matches {
		if m.Bye {
			continue
		}
		played[newPairKey(m.WinnerID, m.LoserID)] = struct{}{}
	}
	return played
}

type pairingSearch struct {
	ctx      context.Context
	played   map[pairKey]struct{}
	maxSteps int
	steps    int
	err      error
}

func (s *pairingSearch) haveMet(a, b int) bool {
	_, ok := s.played[newPairKey(a, b)]
	return ok
}

// limitReached reports whether the search must stop, either on the step bound or
// because the context is done.
func (s *pairingSearch) limitReached() bool {
	if s.err != nil {
		return true
	}
	if s.steps%ctxCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return true
		}
	}
	return s.steps >= s.maxSteps
}

func (s *pairingSearch) exhausted(playerCount int) error {
	if s.err != nil {
		return fmt.Errorf("pairing search for %d players interrupted after %d steps: %w", playerCount, s.steps, s.err)
	}
	if s.steps >= s.maxSteps {
		return fmt.Errorf("%w: search gave up after %d steps for %d players", ErrPairingExhausted, s.steps, playerCount)
	}
	return fmt.Errorf("%w: every arrangement of %d players repeats a game", ErrPairingExhausted, playerCount)
}

// pair walks the ranked list top-down: the best unpaired player meets the next best
// unpaired player they have not played, backtracking on dead ends.
func (s *pairingSearch) pair(ranked []models.PlayerRef) ([]models.Pairing, bool) {
	used := make([]bool, len(ranked))
	pairings := make([]models.Pairing, 0, len(ranked)/2)

	var search func() bool
	search = func() bool {
		first := -1
		for i := range ranked {
			if !used[i] {
				first = i
				break
			}
		}
		if first < 0 {
			return true
		}

		used[first] = true
		for j := first + 1; j < len(ranked); j++ {
			if used[j] || s.haveMet(ranked[first].ID, ranked[j].ID) {
				continue
			}
			if s.limitReached() {
				break
			}
			s.steps++

			used[j] = true
			if s.everyoneHasOpponent(ranked, used) {
				pairings = append(pairings, models.NewPairing(ranked[first], ranked[j]))
				if search() {
					return true
				}
				pairings = pairings[:len(pairings)-1]
			}
			used[j] = false
		}
		used[first] = false
		return false
	}

	if !search() {
		return nil, false
	}
	return pairings, true
}

// everyoneHasOpponent prunes branches where some unpaired player has nobody left to meet.
func (s *pairingSearch) everyoneHasOpponent(ranked []models.PlayerRef, used []bool) bool {
	for i := range ranked {
		if used[i] {
			continue
		}
		found := false
		for j := range ranked {
			if j == i || used[j] || s.haveMet(ranked[i].ID, ranked[j].ID) {
				continue
			}
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

var defaultGenerator = NewSwissGenerator(nil)

// GeneratePairings runs the default Swiss generator over a snapshot.
func GeneratePairings(ctx context.Context, players []models.Player, matches []models.Match) (*models.Round, error) {
	return defaultGenerator.GeneratePairings(ctx, GeneratePairingsParams{Players: players, Matches: matches})
}
