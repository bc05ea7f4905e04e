/*Offline tools over an exported ledger file.*/
package main

import (
	"github.com/alecthomas/kong"
)

// globals holds options shared by every command
type globals struct {
	Today string `help:"Pretend today is this date (YYYY-MM-DD). Defaults to the real date."`
}

// cli commands / args available
var cli struct {
	Globals globals `embed:""`

	Project projectCmd `cmd:"" help:"Show the month view of a ledger, projecting recurring transactions into future months."`
	Months  monthsCmd  `cmd:"" help:"List the months offered by the month picker."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("finai"),
		kong.Description("FinAI ledger tools."),
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
