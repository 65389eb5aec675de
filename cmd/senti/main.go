package main

import (
	"fmt"
	"os"

	"github.com/tharanidharane77-prog/senti/internal/app"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app.SetVersionInfo(version, commit, date)
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
