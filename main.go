package main

import (
	"context"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func init() {
	appVersion = getEnv("APP_VERSION", "dev")
}

func main() {
	app := &cli.Command{
		Name:    "ogtt-cds",
		Usage:   "OGTT risk stratification decision support",
		Version: appVersion,
		Commands: []*cli.Command{
			cmdServe,
			cmdEvaluate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
