package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	// Local development convenience; silently skipped when no .env exists.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "crowdcube",
		Usage: "Crowdfunding campaign and donation API server",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			nanoidCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
