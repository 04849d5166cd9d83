package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	s := &srv{}

	app := &cli.App{
		Name:  "questdrop",
		Usage: "Quest reward platform backend",
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Start the api server",
				Action: s.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "Apply pending database migrations",
				Action: s.migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
