// poker-odds estimates Hold'em equity for a set of players by Monte-Carlo
// simulation. Each player is given either exact hole cards ("AsKd") or a
// range ("TT+,AQs+"); the board may be partially known.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/pokercore/holdem"
	"github.com/lox/pokercore/poker"
)

type CLI struct {
	Players    []string `arg:"" required:"" help:"Hole cards ('AsKd') or a range ('TT+,AQs+') per player"`
	Board      string   `short:"b" help:"Known community cards (e.g. 'Td7s8h')"`
	Iterations int      `short:"i" default:"100000" help:"Number of Monte Carlo trials"`
	Seed       *int64   `help:"Random seed for reproducible results"`
	Workers    int      `short:"w" help:"Worker count (0 = automatic)"`
	Verbose    bool     `short:"v" help:"Enable debug logging"`
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tieStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logger := log.New(os.Stderr)
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := time.Now().UnixNano()
	if cli.Seed != nil {
		seed = *cli.Seed
	}

	specs, labels, err := parsePlayers(cli.Players)
	if err != nil {
		logger.Error("invalid player", "error", err)
		ctx.Exit(1)
	}

	var board []poker.Card
	if cli.Board != "" {
		h, err := poker.ParseHand(cli.Board)
		if err != nil {
			logger.Error("invalid board", "error", err)
			ctx.Exit(1)
		}
		board = h.Sorted()
	}

	cfg := holdem.Config{
		Players: specs,
		Board:   board,
		Trials:  cli.Iterations,
		Seed:    seed,
		Workers: cli.Workers,
	}
	if cli.Verbose {
		cfg.Logger = logger
	}

	start := time.Now()
	result, err := holdem.Simulate(cfg)
	if err != nil {
		logger.Error("simulation failed", "error", err)
		ctx.Exit(1)
	}
	render(labels, board, result, time.Since(start))
}

// parsePlayers turns each argument into a player spec: two exact cards when
// the argument parses as a two-card hand, otherwise a range.
func parsePlayers(args []string) ([]holdem.PlayerSpec, []string, error) {
	specs := make([]holdem.PlayerSpec, 0, len(args))
	labels := make([]string, 0, len(args))
	for _, arg := range args {
		if h, err := poker.ParseHand(arg); err == nil && h.Len() == 2 {
			cards := h.Cards()
			specs = append(specs, holdem.ExactPlayer(cards[0], cards[1]))
			labels = append(labels, h.String())
			continue
		}
		r, err := holdem.ParseRange(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("%q: %w", arg, err)
		}
		specs = append(specs, holdem.RangePlayer(r))
		labels = append(labels, fmt.Sprintf("%s (%d combos)", arg, r.Size()))
	}
	return specs, labels, nil
}

func render(labels []string, board []poker.Card, result *holdem.Result, elapsed time.Duration) {
	if len(board) > 0 {
		cardStrs := make([]string, len(board))
		for i, c := range board {
			cardStrs[i] = c.String()
		}
		fmt.Println(headerStyle.Render("Board: ") + handStyle.Render(strings.Join(cardStrs, " ")))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("Player\tEquity\tWin\tTie\t95% CI"))
	for i, label := range labels {
		p := result.Players[i]
		lo, hi := p.ConfidenceInterval()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			handStyle.Render(label),
			winStyle.Render(fmt.Sprintf("%.2f%%", p.Equity()*100)),
			winStyle.Render(fmt.Sprintf("%.2f%%", p.WinRate()*100)),
			tieStyle.Render(fmt.Sprintf("%.2f%%", p.TieRate()*100)),
			faintStyle.Render(fmt.Sprintf("[%.2f%%, %.2f%%]", lo*100, hi*100)),
		)
	}
	w.Flush()
	fmt.Println(faintStyle.Render(fmt.Sprintf("%d trials in %s", result.Trials, elapsed.Round(time.Millisecond))))
}
