package main

import "github.com/urfave/cli/v3"

// App returns the root command.
func (r *Runner) App() *cli.Command {
	return &cli.Command{
		Name:      "mediaui",
		Usage:     "Media management front end",
		Version:   version,
		Writer:    r.out,
		ErrWriter: r.errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML or TOML configuration file",
				Sources: cli.EnvVars("MEDIAUI_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before: r.Before,
		Commands: []*cli.Command{
			serveCommand(r),
			editCommand(r),
			apiCommand(r),
			configCommand(r),
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web front end",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address (overrides server.addr)",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Media API base URL (disables the in-memory API)",
			},
			&cli.StringFlag{
				Name:  "templates",
				Usage: "Directory with page template overrides",
			},
		},
		Action: r.Serve,
	}
}

func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Edit the metadata of a media item in the terminal",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Media API base URL (disables the in-memory API)",
			},
			&cli.StringFlag{
				Name:  "fields",
				Usage: "Comma separated fields to edit (title,description,downloadable,copyright)",
			},
		},
		Action: r.Edit,
	}
}

func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Run the in-memory media API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: ":8081",
			},
			&cli.BoolFlag{
				Name:  "no-validate",
				Usage: "Accept updates without checking them against the API document",
			},
		},
		Action: r.API,
	}
}

func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:  "path",
						Value: "mediaui.yaml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the example configuration",
				Action: r.ConfigShow,
			},
		},
	}
}
