package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path of the TOML config file",
		EnvVars: []string{"QUESTD_CONFIG"},
	}

	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "questd"
	s.app.Usage = "Guild quest board service"
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Used for start service api, it serves the quest lifecycle and statistic apis.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Flags:       []cli.Flag{configFlag},
			Category:    "Database",
			Description: `Used to create or update the quest, progress and statistic tables.`,
		},
	}
}
