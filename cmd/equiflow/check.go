package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var checkCmd = &cli.Command{
	Name:  "check",
	Usage: "Validate a scenario without solving it",
	Flags: []cli.Flag{
		flagInput,
		flagVerbose,
	},
	Action: doCheck,
}

func doCheck(c *cli.Context) error {
	sc, err := loadScenario(c.String("input"))
	if err != nil {
		return err
	}

	fmt.Printf("scenario OK: scale=%d locations=%d routes=%d supplies=%d demands=%d\n",
		sc.Scale,
		len(sc.Geography.Locations),
		len(sc.Geography.Routes),
		len(sc.Economy.Supplies),
		len(sc.Economy.Demands),
	)

	return nil
}
