// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for config and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles account and session operations
func authCommand(r *Runner) *cli.Command {
	credentialFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Aliases:  []string{"e"},
			Usage:    "Account email address",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Account password",
			Required: true,
		},
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your account and session",
		Commands: []*cli.Command{
			{
				Name:   "register",
				Usage:  "Create an account and sign in",
				Flags:  credentialFlags,
				Action: r.AuthRegister,
			},
			{
				Name:   "login",
				Usage:  "Sign in with an existing account",
				Flags:  credentialFlags,
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and discard stored tokens",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session state",
				Action: r.AuthStatus,
			},
		},
	}
}

// quoteCommand requests a recommendation for a profile given via flags
func quoteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Get an insurance recommendation for a profile",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "age",
				Usage:    "Applicant age (18-100)",
				Required: true,
			},
			&cli.IntFlag{
				Name:     "income",
				Usage:    "Annual income in dollars",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "dependents",
				Usage: "Number of dependents",
			},
			&cli.StringFlag{
				Name:  "risk",
				Usage: "Risk tolerance (Low, Medium or High)",
				Value: "Medium",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "Skip recording the recommendation in history",
			},
		},
		Action: r.Quote,
	}
}

// historyCommand handles recommendation history operations
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse past recommendations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recorded recommendations, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "policy",
						Usage: "Only show entries for this policy type",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (text, markdown, csv or json)",
						Value: "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write to a file instead of stdout",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded recommendations",
				Action: r.HistoryClear,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for the interactive workflow.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive recommendation workflow",
		Action:  r.TUI,
	}
}
