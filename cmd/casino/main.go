package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `short:"c" default:"casino.hcl" type:"path" help:"Path to HCL configuration file (defaults apply if missing)"`
	Debug  bool   `help:"Enable debug logging"`
	Seed   *int64 `help:"Deterministic RNG seed (overrides config)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play a game interactively"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many rounds of each game with fixed strategies"`
	Eval     EvalCmd          `cmd:"" help:"Evaluate a poker hand of 5 to 7 cards"`
	Info     VersionCmd       `cmd:"version" help:"Print version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("casino"),
		kong.Description("A small terminal casino: blackjack, poker, roulette and slots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
