// Command equiflow loads market scenarios, clears them, and exports the
// results.
//
//	equiflow solve    --input market.json [--output results.txt] [--format text|csv]
//	equiflow simulate --input market.json --epochs 5 [--shocks shocks.json]
//	equiflow check    --input market.json
//
// Exit codes: 0 on success, 1 on usage or read problems, 2 when the
// input document is invalid.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/equiflow/scenario"
)

func main() {
	app := &cli.App{
		Name:  "equiflow",
		Usage: "Price settlement across networked markets",
		Commands: []*cli.Command{
			solveCmd,
			simulateCmd,
			checkCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Flags shared across commands.
var (
	flagInput = &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "scenario file to load",
	}
	flagOutput = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file (stdout when omitted)",
	}
	flagWorkers = &cli.IntFlag{
		Name:  "workers",
		Usage: "solver worker count (0 = one per CPU)",
	}
	flagVerbose = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log solver progress at debug level",
	}
)

// newLogger builds the command's logger on stderr, keeping stdout free
// for exported data.
func newLogger(c *cli.Context) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

// loadScenario reads and parses the input document. Read problems exit
// 1; a document that parses or validates badly exits 2.
func loadScenario(path string) (*scenario.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("read %s: %v", path, err), 1)
	}
	sc, err := scenario.Parse(data)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("invalid scenario %s: %v", path, err), 2)
	}

	return sc, nil
}

// writeTo streams fn's output to the given path, or stdout when empty.
func writeTo(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("create %s: %v", path, err), 1)
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("close %s: %v", path, err), 1)
	}

	return nil
}
