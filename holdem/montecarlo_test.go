package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokercore/poker"
)

func exactSpec(s string) PlayerSpec {
	h := poker.MustParseHand(s)
	cards := h.Cards()
	return ExactPlayer(cards[0], cards[1])
}

func handCards(s string) []poker.Card {
	h := poker.MustParseHand(s)
	return h.Cards()
}

func TestSimulateValidation(t *testing.T) {
	aa := exactSpec("AsAh")

	_, err := Simulate(Config{Trials: 10})
	require.ErrorIs(t, err, ErrNoPlayers)

	_, err = Simulate(Config{
		Players: []PlayerSpec{aa, exactSpec("KdKc")},
		Board:   handCards("2c3d"),
		Trials:  10,
	})
	require.ErrorIs(t, err, ErrBadBoard)

	// A board card shared with a player's hole cards is a collision.
	_, err = Simulate(Config{
		Players: []PlayerSpec{aa},
		Board:   handCards("As2c3d"),
		Trials:  10,
	})
	require.ErrorIs(t, err, ErrDuplicateCard)

	_, err = Simulate(Config{
		Players: []PlayerSpec{aa, exactSpec("AsKd")},
		Trials:  10,
	})
	require.ErrorIs(t, err, ErrDuplicateCard)

	// A range with every combo blocked by known cards is unplayable.
	_, err = Simulate(Config{
		Players: []PlayerSpec{
			exactSpec("AsAh"),
			{Range: MustParseRange("AsAh")},
		},
		Trials: 10,
	})
	require.ErrorIs(t, err, ErrEmptyRange)
}

func TestSimulateDeterministic(t *testing.T) {
	cfg := Config{
		Players: []PlayerSpec{
			exactSpec("AsAh"),
			RangePlayer(MustParseRange("TT+,AQs+")),
		},
		Trials:  5000,
		Seed:    1234,
		Workers: 4,
	}
	first, err := Simulate(cfg)
	require.NoError(t, err)
	second, err := Simulate(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateCountersAddUp(t *testing.T) {
	res, err := Simulate(Config{
		Players: []PlayerSpec{exactSpec("AsAh"), exactSpec("KdKc"), exactSpec("QsQh")},
		Trials:  2000,
		Seed:    7,
	})
	require.NoError(t, err)

	var wins uint64
	for _, p := range res.Players {
		assert.Equal(t, res.Trials, p.Trials)
		wins += p.Wins
	}
	// Every trial produces one outright winner or a full split.
	assert.Equal(t, res.Trials, wins+tiedTrialsFromShares(res))

	// Equities sum to one.
	sum := 0.0
	for _, p := range res.Players {
		sum += p.Equity()
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

// tiedTrialsFromShares recovers the number of tied trials from per-seat
// k-way counters: each k-way tie contributes k seat-records.
func tiedTrialsFromShares(res *Result) uint64 {
	var total uint64
	for k := 2; k <= MaxPlayers; k++ {
		var records uint64
		for _, p := range res.Players {
			records += p.TieWays[k]
		}
		total += records / uint64(k)
	}
	return total
}

func TestSimulateBoardPlaysEveryone(t *testing.T) {
	// Royal flush on board: all seats split every trial.
	res, err := Simulate(Config{
		Players: []PlayerSpec{exactSpec("2c2d"), exactSpec("3h3s")},
		Board:   handCards("AsKsQsJsTs"),
		Trials:  500,
		Seed:    5,
	})
	require.NoError(t, err)
	for _, p := range res.Players {
		assert.Zero(t, p.Wins)
		assert.Equal(t, res.Trials, p.Ties)
		assert.Equal(t, res.Trials, p.TieWays[2])
		assert.InDelta(t, 0.5, p.Equity(), 1e-9)
	}
}

func TestSimulateDominatedHand(t *testing.T) {
	// AA vs AK on an AKK board: aces full against kings full, AK needs the
	// last king and draws nearly dead.
	res, err := Simulate(Config{
		Players: []PlayerSpec{exactSpec("AsAh"), exactSpec("AdKd")},
		Board:   handCards("AcKsKh"),
		Trials:  10000,
		Seed:    11,
	})
	require.NoError(t, err)
	assert.Greater(t, res.Players[0].Equity(), 0.95)
}

// AA vs 72o heads-up preflop is the canonical convergence check: the
// reference equity is about 0.88.
func TestSimulateConvergenceAAvs72o(t *testing.T) {
	res, err := Simulate(Config{
		Players: []PlayerSpec{
			RangePlayer(MustParseRange("AA")),
			RangePlayer(MustParseRange("72o")),
		},
		Trials: 100000,
		Seed:   42,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.88, res.Players[0].Equity(), 0.01)
}

func TestSimulateSequentialMatchesSingleWorker(t *testing.T) {
	base := Config{
		Players: []PlayerSpec{exactSpec("AsAh"), exactSpec("7c2d")},
		Trials:  400, // below the parallel threshold
		Seed:    99,
	}
	forced := base
	forced.Workers = 1
	a, err := Simulate(base)
	require.NoError(t, err)
	b, err := Simulate(forced)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEquityResultAccessors(t *testing.T) {
	var e EquityResult
	assert.Zero(t, e.Equity())
	assert.Zero(t, e.WinRate())

	e = EquityResult{Wins: 50, Ties: 10, Trials: 100}
	e.TieWays[2] = 10
	assert.InDelta(t, 0.55, e.Equity(), 1e-9)
	assert.InDelta(t, 0.5, e.WinRate(), 1e-9)
	assert.InDelta(t, 0.1, e.TieRate(), 1e-9)

	lo, hi := e.ConfidenceInterval()
	assert.Less(t, lo, e.Equity())
	assert.Greater(t, hi, e.Equity())
}
