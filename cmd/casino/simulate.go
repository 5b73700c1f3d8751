package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/minicasino/internal/fileutil"
	"github.com/lox/minicasino/internal/simulator"
	"github.com/lox/minicasino/internal/statistics"
	"github.com/lox/minicasino/internal/wager"
)

// SimulateCmd plays automated rounds of each game
type SimulateCmd struct {
	Rounds int      `short:"n" default:"10000" help:"Rounds to play per game"`
	Bet    int64    `default:"10" help:"Stake per round"`
	Games  []string `enum:"blackjack,poker,roulette,slots" default:"slots,blackjack,poker,roulette" help:"Games to simulate"`
	Output string   `short:"o" type:"path" help:"Also write the results as JSON to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger := setupLogger(os.Stderr, cfg.Casino.LogLevel, g.Debug)
	ctx := setupSignalHandler(logger)

	games := make([]wager.Game, 0, len(c.Games))
	for _, name := range c.Games {
		game, err := wager.ParseGame(name)
		if err != nil {
			return err
		}
		games = append(games, game)
	}

	seed := cfg.Casino.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Starting simulation", "rounds", c.Rounds, "bet", c.Bet, "seed", seed, "games", len(games))

	start := time.Now()
	report, err := simulator.New(simulator.Config{
		Rounds:        c.Rounds,
		Bet:           c.Bet,
		Seed:          seed,
		StartingChips: cfg.Casino.StartingChips,
		Games:         games,
		Logger:        logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	printReport(os.Stdout, report, seed, time.Since(start))

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, newJSONReport(report, seed, c.Bet)); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}

type jsonGame struct {
	Game       string  `json:"game"`
	Rounds     int     `json:"rounds"`
	Wins       int     `json:"wins"`
	Pushes     int     `json:"pushes"`
	Staked     int64   `json:"staked"`
	Net        float64 `json:"net"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"stddev"`
	Median     float64 `json:"median"`
	RTP        float64 `json:"rtp"`
	BiggestWin int64   `json:"biggest_win"`
	Rebuys     int     `json:"rebuys"`
}

type jsonReport struct {
	Seed  int64      `json:"seed"`
	Bet   int64      `json:"bet"`
	Games []jsonGame `json:"games"`
}

func newJSONReport(report *simulator.Report, seed, bet int64) jsonReport {
	out := jsonReport{Seed: seed, Bet: bet}
	for _, gr := range report.Games {
		s := gr.Summary
		out.Games = append(out.Games, jsonGame{
			Game:       gr.Game.String(),
			Rounds:     s.Rounds,
			Wins:       s.Wins,
			Pushes:     s.Pushes,
			Staked:     s.Staked,
			Net:        s.SumNet,
			Mean:       s.Mean(),
			StdDev:     s.StdDev(),
			Median:     s.Median(),
			RTP:        s.ReturnToPlayer(),
			BiggestWin: s.BiggestWin,
			Rebuys:     gr.Rebuys,
		})
	}
	return out
}

func printReport(w io.Writer, report *simulator.Report, seed int64, elapsed time.Duration) {
	fmt.Fprintln(w, titleStyle.Render(" Simulation results "))
	fmt.Fprintf(w, "%s seed %d, %s\n\n", mutedStyle.Render("Reproduce with --seed"), seed, elapsed.Round(time.Millisecond))

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-10s %8s %8s %8s %10s %8s %18s %7s",
		"Game", "Rounds", "Win%", "RTP%", "Mean", "StdDev", "95% CI", "Rebuys")))
	for _, gr := range report.Games {
		printSummaryRow(w, gr.Game.Label(), &gr.Summary, gr.Rebuys)
	}
	total := report.Total()
	printSummaryRow(w, "Total", &total, -1)
}

// printSummaryRow prints one table row; a negative rebuys leaves the column blank.
func printSummaryRow(w io.Writer, name string, s *statistics.Summary, rebuys int) {
	low, high := s.ConfidenceInterval95()
	mean := fmt.Sprintf("%+.3f", s.Mean())
	if s.Mean() >= 0 {
		mean = winStyle.Render(fmt.Sprintf("%10s", mean))
	} else {
		mean = lossStyle.Render(fmt.Sprintf("%10s", mean))
	}
	rb := ""
	if rebuys >= 0 {
		rb = fmt.Sprint(rebuys)
	}
	fmt.Fprintf(w, "%-10s %8d %7.2f%% %7.2f%% %s %8.2f %18s %7s\n",
		name, s.Rounds, s.WinRate()*100, s.ReturnToPlayer()*100, mean, s.StdDev(),
		fmt.Sprintf("[%.2f, %.2f]", low, high), rb)
}
