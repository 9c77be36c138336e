package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/urfave/cli/v2"

	"github.com/katalvlaran/equiflow/simulate"
)

var simulateCmd = &cli.Command{
	Name:  "simulate",
	Usage: "Re-solve a scenario across epochs, applying scheduled shocks",
	Flags: []cli.Flag{
		flagInput,
		flagOutput,
		flagWorkers,
		flagVerbose,
		&cli.IntFlag{
			Name:    "epochs",
			Aliases: []string{"e"},
			Value:   1,
			Usage:   "number of epochs to clear",
		},
		&cli.StringFlag{
			Name:  "shocks",
			Usage: "JSON shock schedule to apply between epochs",
		},
	},
	Action: func(c *cli.Context) error {
		if c.Int("epochs") < 1 {
			return cli.Exit("epochs must be positive", 1)
		}
		if c.Int("workers") < 0 {
			return cli.Exit("workers must be non-negative", 1)
		}

		return doSimulate(c)
	},
}

func doSimulate(c *cli.Context) error {
	sc, err := loadScenario(c.String("input"))
	if err != nil {
		return err
	}
	m, err := sc.Market()
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid scenario %s: %v", c.String("input"), err), 2)
	}

	var shocks []simulate.Shock
	if path := c.String("shocks"); path != "" {
		shocks, err = simulate.LoadShocks(path, sc.Scale)
		if err != nil {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				return cli.Exit(fmt.Sprintf("read %s: %v", path, err), 1)
			}

			return cli.Exit(fmt.Sprintf("invalid shocks %s: %v", path, err), 2)
		}
	}

	sess, err := simulate.New(m,
		simulate.WithWorkers(c.Int("workers")),
		simulate.WithLogger(newLogger(c)),
	)
	if err != nil {
		return cli.Exit(fmt.Sprintf("session: %v", err), 1)
	}

	hist, err := sess.Run(c.Int("epochs"), shocks)
	if err != nil {
		return cli.Exit(fmt.Sprintf("simulate: %v", err), 2)
	}

	return writeTo(c.String("output"), func(w io.Writer) error {
		return hist.WriteCSV(w, sc.Scale)
	})
}
