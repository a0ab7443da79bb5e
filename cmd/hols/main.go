// Command hols resolves Canadian holiday dates from the command line.
//
// Usage:
//
//	hols observed "Monday before May 25" --year 2023
//	hols list --province ON
package main

import (
	"fmt"
	"os"

	"github.com/mnigh/hols/internal/cli"
	"github.com/mnigh/hols/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	return cli.NewApp(cfg, nil).Execute()
}
