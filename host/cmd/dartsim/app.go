package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nobonobo/ar-darts/ar/launch"
	"github.com/nobonobo/ar-darts/ar/material"
)

var orientations = map[string]launch.Orientation{
	launch.OrientationAlignToSurface.String():   launch.OrientationAlignToSurface,
	launch.OrientationRelativeToCamera.String(): launch.OrientationRelativeToCamera,
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dartsim",
		Usage: "replay a recorded AR darts session",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "script",
				Aliases:  []string{"s"},
				Usage:    "path to the JSON replay script",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "orientation",
				Usage: "dart orientation policy (align or relative)",
				Value: launch.OrientationAlignToSurface.String(),
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "dart flight duration",
				Value: launch.DefaultDuration,
			},
			&cli.StringFlag{
				Name:  "texture",
				Usage: "dartboard texture",
				Value: material.DefaultDartboardTexture,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug messages",
			},
		},
		Action: replayAction,
	}
}

func runApplication(args []string) error {
	return newApp().Run(args)
}

func replayAction(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	orientation, ok := orientations[c.String("orientation")]
	if !ok {
		return fmt.Errorf("unknown orientation %q", c.String("orientation"))
	}

	script, err := loadScript(c.String("script"))
	if err != nil {
		return err
	}

	r := newReplayer(script, replayOptions{
		logger:      logger,
		orientation: orientation,
		duration:    c.Duration("duration"),
		texture:     c.String("texture"),
	})
	if err := r.run(script.Events); err != nil {
		return fmt.Errorf("failed to replay script: %w", err)
	}

	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.summary()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
