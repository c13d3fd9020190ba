package holdem

import (
	"fmt"
	"math"
	rand "math/rand/v2"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokercore/internal/randutil"
	"github.com/lox/pokercore/poker"
)

// MaxPlayers is the most seats a simulation supports; 23 two-card hands plus
// a five-card board use 51 of the 52 cards, and a 24th seat would not fit.
const MaxPlayers = 23

// sampleAttempts bounds rejection sampling of one range before the whole
// trial's hole assignment is restarted.
const sampleAttempts = 64

// trialRestarts bounds full-trial restarts before the range set is declared
// unsatisfiable.
const trialRestarts = 1000

// PlayerSpec describes one seat: exactly one of Hole or Range is set.
type PlayerSpec struct {
	// Hole fixes the seat's two cards.
	Hole *Combo
	// Range samples the seat's cards uniformly from a range each trial.
	Range *Range
}

// ExactPlayer is a seat holding the two given cards.
func ExactPlayer(a, b poker.Card) PlayerSpec {
	c := NewCombo(a, b)
	return PlayerSpec{Hole: &c}
}

// RangePlayer is a seat whose hole cards are drawn from a range.
func RangePlayer(r *Range) PlayerSpec {
	return PlayerSpec{Range: r}
}

// EquityResult accumulates one seat's counters across trials. Tie shares
// are kept as integer counts per split size so that the parallel reduction
// is an associative integer sum; division happens only in the accessors.
type EquityResult struct {
	// Wins counts trials this seat won outright.
	Wins uint64
	// Ties counts trials this seat split with at least one other.
	Ties uint64
	// TieWays[k] counts trials this seat split k ways.
	TieWays [MaxPlayers + 1]uint64
	// Trials is the total number of trials run.
	Trials uint64
}

// Equity returns the seat's expected pot share: wins plus 1/k for each
// k-way tie, over all trials.
func (e EquityResult) Equity() float64 {
	if e.Trials == 0 {
		return 0
	}
	share := float64(e.Wins)
	for k := 2; k <= MaxPlayers; k++ {
		share += float64(e.TieWays[k]) / float64(k)
	}
	return share / float64(e.Trials)
}

// WinRate returns the outright win frequency.
func (e EquityResult) WinRate() float64 {
	if e.Trials == 0 {
		return 0
	}
	return float64(e.Wins) / float64(e.Trials)
}

// TieRate returns the split-pot frequency.
func (e EquityResult) TieRate() float64 {
	if e.Trials == 0 {
		return 0
	}
	return float64(e.Ties) / float64(e.Trials)
}

// ConfidenceInterval returns the 95% interval around Equity under the
// binomial approximation.
func (e EquityResult) ConfidenceInterval() (lower, upper float64) {
	if e.Trials == 0 {
		return 0, 0
	}
	eq := e.Equity()
	se := math.Sqrt(eq * (1 - eq) / float64(e.Trials))
	margin := 1.96 * se
	return math.Max(0, eq-margin), math.Min(1, eq+margin)
}

// merge folds other into e.
func (e *EquityResult) merge(other EquityResult) {
	e.Wins += other.Wins
	e.Ties += other.Ties
	e.Trials += other.Trials
	for k := range e.TieWays {
		e.TieWays[k] += other.TieWays[k]
	}
}

// Config describes a Monte-Carlo equity simulation.
type Config struct {
	// Players holds one spec per seat, at least one.
	Players []PlayerSpec
	// Board is the known community cards: 0, 3, 4 or 5 of them.
	Board []poker.Card
	// Trials is the number of independent deals.
	Trials int
	// Seed drives every RNG stream; identical seeds give identical counters.
	Seed int64
	// Workers splits the trial budget; 0 picks from GOMAXPROCS, 1 forces
	// sequential. The counters are identical for any fixed worker count.
	Workers int
	// Logger, when non-nil, receives per-run debug output.
	Logger *log.Logger
}

// Result holds per-seat counters for a completed simulation.
type Result struct {
	// Players has one entry per configured seat, in order.
	Players []EquityResult
	// Trials is the total number of trials run.
	Trials uint64
}

// simulation is the validated, immutable plan shared by all workers.
type simulation struct {
	board    []poker.Card
	deck     poker.Deck // fresh deck minus all statically known cards
	fixed    []Combo    // fixed hole cards per seat (zero Combo if ranged)
	isFixed  []bool
	combos   [][]Combo // per seat, pre-filtered against known cards
	nPlayers int
}

// Simulate runs the configured simulation and returns per-seat counters.
func Simulate(cfg Config) (*Result, error) {
	sim, err := newSimulation(cfg)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = min(runtime.GOMAXPROCS(0), 8)
	}
	// Worker overhead swamps tiny runs.
	if cfg.Trials < 500 {
		workers = 1
	}
	if cfg.Logger != nil {
		cfg.Logger.Debug("starting simulation",
			"players", sim.nPlayers, "trials", cfg.Trials,
			"workers", workers, "seed", cfg.Seed)
	}

	perWorker := cfg.Trials / workers
	remainder := cfg.Trials % workers

	results := make([][]EquityResult, workers)
	var g errgroup.Group
	for w := range workers {
		trials := perWorker
		if w < remainder {
			trials++
		}
		rng := randutil.Stream(cfg.Seed, w)
		g.Go(func() error {
			res, err := sim.run(trials, rng)
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Players: make([]EquityResult, sim.nPlayers)}
	for _, res := range results {
		for i := range res {
			out.Players[i].merge(res[i])
		}
	}
	out.Trials = uint64(cfg.Trials)
	if cfg.Logger != nil {
		for i := range out.Players {
			cfg.Logger.Debug("seat equity", "seat", i,
				"equity", out.Players[i].Equity())
		}
	}
	return out, nil
}

// newSimulation validates the config and precomputes the shared plan.
func newSimulation(cfg Config) (*simulation, error) {
	n := len(cfg.Players)
	if n == 0 {
		return nil, ErrNoPlayers
	}
	if n > MaxPlayers {
		return nil, fmt.Errorf("%w: at most %d seats", ErrNoPlayers, MaxPlayers)
	}
	switch len(cfg.Board) {
	case 0, 3, 4, 5:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrBadBoard, len(cfg.Board))
	}

	// Commit every statically known card exactly once.
	var known poker.CardSet
	commit := func(c poker.Card) error {
		if known.Contains(c) {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		known.Add(c)
		return nil
	}
	for _, c := range cfg.Board {
		if err := commit(c); err != nil {
			return nil, err
		}
	}
	sim := &simulation{
		board:    cfg.Board,
		fixed:    make([]Combo, n),
		isFixed:  make([]bool, n),
		combos:   make([][]Combo, n),
		nPlayers: n,
	}
	for i, p := range cfg.Players {
		switch {
		case p.Hole != nil:
			if err := commit(p.Hole.Hi); err != nil {
				return nil, err
			}
			if err := commit(p.Hole.Lo); err != nil {
				return nil, err
			}
			sim.fixed[i] = *p.Hole
			sim.isFixed[i] = true
		case p.Range != nil:
		default:
			return nil, fmt.Errorf("seat %d: %w: needs hole cards or a range", i, ErrNoPlayers)
		}
	}
	// Ranges are filtered against the known cards once, up front.
	for i, p := range cfg.Players {
		if p.Range == nil {
			continue
		}
		all := p.Range.Combos()
		live := make([]Combo, 0, len(all))
		for _, c := range all {
			if !known.Contains(c.Hi) && !known.Contains(c.Lo) {
				live = append(live, c)
			}
		}
		if len(live) == 0 {
			return nil, fmt.Errorf("seat %d: %w", i, ErrEmptyRange)
		}
		sim.combos[i] = live
	}

	deck := poker.FreshDeck()
	for _, c := range known.Cards(nil) {
		if err := deck.Remove(c); err != nil {
			return nil, err
		}
	}
	sim.deck = deck
	return sim, nil
}

// run executes trials sequentially with the given RNG stream.
func (s *simulation) run(trials int, rng *rand.Rand) ([]EquityResult, error) {
	results := make([]EquityResult, s.nPlayers)
	holes := make([]Combo, s.nPlayers)
	board := make([]poker.Card, 5)

	for range trials {
		deck, err := s.dealHoles(holes, rng)
		if err != nil {
			return nil, err
		}

		copy(board, s.board)
		for i := len(s.board); i < 5; i++ {
			c, err := deck.Draw(rng)
			if err != nil {
				return nil, err
			}
			board[i] = c
		}

		var winners PlayerBitSet
		var best poker.Rank
		for i := range s.nPlayers {
			h := poker.NewHand(holes[i].Hi, holes[i].Lo)
			for _, c := range board {
				h.Push(c)
			}
			r := poker.Rank7(h)
			switch {
			case winners.Empty() || r > best:
				best = r
				winners = PlayerBitSet{}
				winners.Set(i)
			case r == best:
				winners.Set(i)
			}
		}

		k := winners.Count()
		winners.Ones(func(i int) {
			if k == 1 {
				results[i].Wins++
			} else {
				results[i].Ties++
				results[i].TieWays[k]++
			}
		})
		for i := range results {
			results[i].Trials++
		}
	}
	return results, nil
}

// dealHoles fills holes for every seat and returns the per-trial deck with
// those cards removed. Range seats are rejection sampled; an assignment that
// cannot be completed restarts from the first ranged seat.
func (s *simulation) dealHoles(holes []Combo, rng *rand.Rand) (poker.Deck, error) {
restart:
	for restarts := 0; restarts < trialRestarts; restarts++ {
		deck := s.deck
		var used poker.CardSet
		for i := range s.nPlayers {
			if s.isFixed[i] {
				holes[i] = s.fixed[i]
				continue
			}
			combos := s.combos[i]
			sampled := false
			for range sampleAttempts {
				c := combos[rng.IntN(len(combos))]
				if used.Contains(c.Hi) || used.Contains(c.Lo) {
					continue
				}
				used.Add(c.Hi)
				used.Add(c.Lo)
				holes[i] = c
				sampled = true
				break
			}
			if !sampled {
				continue restart
			}
		}
		for _, c := range used.Cards(nil) {
			if err := deck.Remove(c); err != nil {
				return poker.Deck{}, err
			}
		}
		return deck, nil
	}
	return poker.Deck{}, fmt.Errorf("%w: ranges cannot be dealt together", ErrEmptyRange)
}
