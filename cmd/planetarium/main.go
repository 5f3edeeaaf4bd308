// Package main is the planetarium command: it steps a scene of orbiting bodies and
// reports when watched pairs start and stop overlapping.
package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/overlap"
	"github.com/akmonengine/overlap/config"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagConfig  = "config"
	flagFrames  = "frames"
	flagWorkers = "workers"
	flagDebug   = "debug"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var logger *zap.Logger

	return &cli.App{
		Name:  "planetarium",
		Usage: "step a scene of rigid bodies and report their overlaps",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     flagConfig,
				Aliases:  []string{"c"},
				Usage:    "load the scene from `FILE`",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			if c.Bool(flagDebug) {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			return errors.Wrap(err, "creating logger")
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				_ = logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "step the scene and log overlap events",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagFrames,
						Usage: "number of steps, overrides the scene file",
					},
					&cli.IntFlag{
						Name:  flagWorkers,
						Usage: "number of goroutines testing pairs, overrides the scene file",
					},
				},
				Action: func(c *cli.Context) error {
					return run(c, logger)
				},
			},
			{
				Name:  "check",
				Usage: "validate the scene and print the stage report of every watched pair",
				Action: func(c *cli.Context) error {
					return check(c, logger)
				},
			},
		},
	}
}

func load(c *cli.Context, logger *zap.Logger) (*config.Scene, *overlap.Scene, error) {
	cfg, err := config.Load(c.String(flagConfig))
	if err != nil {
		return nil, nil, err
	}

	scene, err := cfg.Build(logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, "building scene")
	}

	return cfg, scene, nil
}

func run(c *cli.Context, logger *zap.Logger) error {
	cfg, scene, err := load(c, logger)
	if err != nil {
		return err
	}

	frames := cfg.Frames
	if c.IsSet(flagFrames) {
		frames = c.Int(flagFrames)
	}
	if c.IsSet(flagWorkers) {
		scene.Workers = c.Int(flagWorkers)
	}

	counts := make(map[overlap.EventType]int)
	for range frames {
		for _, event := range scene.Step() {
			counts[event.Type()]++
		}
	}

	logger.Info("done",
		zap.Int("frames", scene.Frame()),
		zap.Int("bodies", len(scene.Bodies)),
		zap.Int("pairs", len(scene.Pairs)),
		zap.Int("enter", counts[overlap.OVERLAP_ENTER]),
		zap.Int("exit", counts[overlap.OVERLAP_EXIT]),
	)

	return nil
}

func check(c *cli.Context, logger *zap.Logger) error {
	_, scene, err := load(c, logger)
	if err != nil {
		return err
	}

	out := c.App.Writer
	for _, pair := range scene.Pairs {
		report := overlap.Classify(pair.BodyA, pair.BodyB)
		fmt.Fprintf(out, "%s / %s: sphere=%t aabb=%t obb=%t intersects=%t\n",
			pair.BodyA.Label, pair.BodyB.Label,
			report.Sphere, report.AABB, report.OBB, report.Intersects())
	}

	return nil
}
