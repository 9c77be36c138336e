package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/equiflow/equilibrium"
	"github.com/katalvlaran/equiflow/scenario"
)

var solveCmd = &cli.Command{
	Name:  "solve",
	Usage: "Clear a scenario once and export prices",
	Flags: []cli.Flag{
		flagInput,
		flagOutput,
		flagWorkers,
		flagVerbose,
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "output format: text (RESULTS) or csv (prices)",
		},
		&cli.StringFlag{
			Name:  "flows",
			Usage: "also write cleared flows as CSV to this file",
		},
	},
	Action: func(c *cli.Context) error {
		format := c.String("format")
		if format != "text" && format != "csv" {
			return cli.Exit(fmt.Sprintf("unknown format %q", format), 1)
		}
		if c.Int("workers") < 0 {
			return cli.Exit("workers must be non-negative", 1)
		}

		return doSolve(c, format)
	},
}

func doSolve(c *cli.Context, format string) error {
	sc, err := loadScenario(c.String("input"))
	if err != nil {
		return err
	}
	m, err := sc.Market()
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid scenario %s: %v", c.String("input"), err), 2)
	}

	log := newLogger(c)
	res, err := equilibrium.Solve(m,
		equilibrium.WithWorkers(c.Int("workers")),
		equilibrium.WithLogger(log),
	)
	if err != nil {
		return cli.Exit(fmt.Sprintf("solve: %v", err), 1)
	}
	log.WithFields(logrus.Fields{
		"locations": len(res.Prices),
		"units":     res.Units(),
		"flows":     len(res.Flows),
	}).Info("market cleared")

	if err := writeTo(c.String("output"), func(w io.Writer) error {
		if format == "csv" {
			return scenario.WritePricesCSV(w, res, sc.Scale)
		}

		return scenario.WriteResults(w, res, sc.Scale)
	}); err != nil {
		return err
	}

	if flows := c.String("flows"); flows != "" {
		return writeTo(flows, func(w io.Writer) error {
			return scenario.WriteFlowsCSV(w, res)
		})
	}

	return nil
}
