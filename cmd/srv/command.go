package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "VideoDanza"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Used for start service api, the main service included all apis.`,
		},
		{
			Action:      server.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start the ledger event subscriber",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Used to start the worker that tails ledger events from the message queue and writes the audit log.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema and seed the ledger account",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Used to create or update tables and insert the ledger account if it does not exist yet.`,
		},
	}

	s.app = app
}
