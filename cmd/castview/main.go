// Package main is the entry point for the castview command.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/Faultbox/castview/internal/logger"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Error("command failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "castview"
	app.Usage = "inspect and convert Cast models"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to a castview.yaml config file",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		cli.StringFlag{
			Name:  "up-axis",
			Usage: "output up axis (Y or Z)",
		},
		cli.BoolFlag{
			Name:  "no-textures",
			Usage: "skip texture files and use procedural colors",
		},
		cli.StringFlag{
			Name:  "folder",
			Usage: "base directory for texture paths",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write JSON logs to this file",
		},
	}
	app.Before = setup
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "print model statistics",
			ArgsUsage: "file.cast ...",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "meshes, m",
					Usage: "also list meshes",
				},
			},
			Action: cmdInfo,
		},
		{
			Name:      "tree",
			Usage:     "print the raw node tree of a Cast file",
			ArgsUsage: "file.cast",
			Action:    cmdTree,
		},
		{
			Name:      "list",
			Usage:     "list Cast files in files and directories",
			ArgsUsage: "path ...",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "search, s",
					Usage: "only show assets whose name contains this term",
				},
			},
			Action: cmdList,
		},
		{
			Name:      "export",
			Usage:     "convert a Cast model to glTF",
			ArgsUsage: "file.cast",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output file (defaults to <name>.gltf or <name>.glb in the output directory)",
				},
				cli.BoolFlag{
					Name:  "binary, b",
					Usage: "write a single .glb file",
				},
			},
			Action: cmdExport,
		},
		{
			Name:      "swatches",
			Usage:     "write one WebP preview per material",
			ArgsUsage: "file.cast",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output directory (defaults to the configured output directory)",
				},
				cli.IntFlag{
					Name:  "size",
					Usage: "swatch edge length in pixels (defaults to the configured size)",
				},
			},
			Action: cmdSwatches,
		},
		{
			Name:      "sample",
			Usage:     "write a small sample Cast file",
			ArgsUsage: "out.cast",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "texture",
					Usage: "diffuse texture path stored in the sample material",
				},
			},
			Action: cmdSample,
		},
		{
			Name:   "init-config",
			Usage:  "write the effective configuration to the user config directory",
			Action: cmdInitConfig,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "write to this path instead",
				},
			},
		},
	}
	return app
}
