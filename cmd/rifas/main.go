// rifas renders a 100-number raffle board as a shareable poster.
//
// The board comes from a state file, a share link or flags; edits are
// applied in order and the poster plus any requested exports are written.
//
// Build:
//
//	go build -o rifas ./cmd/rifas
//
// Example:
//
//	rifas -state fiesta.json -title "Fiesta" -mark 07,12 -range 20-29 -pdf fiesta.pdf
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/piwi3910/RifaBoard/internal/cmd/rifas"
	"github.com/piwi3910/RifaBoard/internal/config"
)

func main() {
	cfg, err := rifas.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rifas.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		stop()
		config.Exitf("rifas: %v", err)
	}
}
