package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version   kong.VersionFlag `short:"v" help:"Show version"`
	Play      PlayCmd          `cmd:"" default:"1" help:"Play interactively in the terminal"`
	Fight     FightCmd         `cmd:"" help:"Auto-play fights with a bot strategy"`
	Stone     StoneCmd         `cmd:"" help:"Show the stone a seed derives"`
	Opponents OpponentsCmd     `cmd:"" help:"List the upcoming opponents"`
	Simulate  SimulateCmd      `cmd:"" help:"Simulate many games to compare strategies"`
	Serve     ServeCmd         `cmd:"" help:"Serve the game over WebSocket"`
	History   HistoryCmd       `cmd:"" help:"Show recorded fights"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("stonefight"),
		kong.Description("Collect stones, build a deck and fight your way up the ladder"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":    version,
			"strategies": "random,aggressive,defensive",
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
