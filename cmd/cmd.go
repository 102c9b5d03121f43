// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand handles database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// searchCommand searches the Streambox catalog.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog for tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// listCommand lists playlists.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List playlists",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.List,
	}
}

// createCommand creates a playlist.
func createCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a playlist (generates a title when omitted)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "title"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Playlist description",
			},
		},
		Action: r.Create,
	}
}

// deleteCommand deletes a playlist.
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"rm"},
		Usage:   "Delete a playlist by ID or title",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Action: r.Delete,
	}
}

// renameCommand retitles a playlist.
func renameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rename",
		Usage: "Rename a playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
			&cli.StringArg{Name: "title"},
		},
		Action: r.Rename,
	}
}

// describeCommand replaces a playlist's description.
func describeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "describe",
		Usage: "Set a playlist's description",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
			&cli.StringArg{Name: "description"},
		},
		Action: r.Describe,
	}
}

// addCommand searches the catalog and appends the best match.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Search the catalog and append the first match to a playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
			&cli.StringArg{Name: "query"},
		},
		Action: r.Add,
	}
}

// removeCommand removes a track by position.
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "remove",
		Usage: "Remove the track at a 1-based position",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
			&cli.StringArg{Name: "position"},
		},
		Action: r.Remove,
	}
}

// moveCommand reorders a track.
func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "move",
		Usage: "Move a track between 1-based positions",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
			&cli.StringArg{Name: "from"},
			&cli.StringArg{Name: "to"},
		},
		Action: r.Move,
	}
}

// undoCommand restores the snapshot taken before the last edit.
func undoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "undo",
		Usage:  "Revert the playlist collection to its state before the last edit",
		Action: r.Undo,
	}
}

// exportCommand writes playlists to files.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist, or every playlist with --all",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, txt",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file (single) or directory (--all)",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every playlist with a worker pool",
			},
		},
		Action: r.Export,
	}
}

// importCommand builds a playlist from a query file.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Build a playlist from a file of search queries, one per line",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Title for the imported playlist",
				Required: true,
			},
		},
		Action: r.Import,
	}
}

// playCommand streams a playlist from its first track.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Stream a playlist from the beginning",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-preload",
				Usage: "Disable preloading the next track",
			},
		},
		Action: r.Play,
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist management",
		Action:  r.TUI,
	}
}
