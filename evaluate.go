package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

var cmdEvaluate = &cli.Command{
	Name:  "evaluate",
	Usage: "Evaluate an assessment document and print the clinical summary",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Value:   "-",
			Usage:   "assessment JSON file, or - for stdin",
		},
		&cli.StringFlag{
			Name:  "baseline",
			Usage: "assessment JSON file to compare against",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "text",
			Usage: "output format: text or json",
		},
		&cli.StringFlag{
			Name:    "config",
			Value:   configFile,
			Sources: cli.EnvVars("CONFIG_FILE"),
			Usage:   "path to the JSON config file",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := readConfig(cmd.String("config"))
		if err != nil {
			return err
		}
		return evaluate(os.Stdin, os.Stdout, cfg, cmd.String("input"), cmd.String("baseline"), cmd.String("format"))
	},
}

func evaluate(stdin io.Reader, out io.Writer, cfg *Config, input, baselinePath, format string) error {
	if format != "text" && format != "json" {
		return errInvalidFormat
	}
	if input == "-" && baselinePath == "-" {
		return errStdinTwice
	}

	raw, err := readAssessmentFile(input, stdin)
	if err != nil {
		return err
	}
	a := computeAll(raw)

	// Optional baseline comparison
	var cmp *Comparison
	if baselinePath != "" {
		baselineRaw, err := readAssessmentFile(baselinePath, stdin)
		if err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		snapshot := captureBaseline(computeAll(baselineRaw), time.Now())
		cmp = compareBaseline(&snapshot, a)
	}

	if format == "json" {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(AssessmentResponse{Assessment: a, Comparison: cmp})
	}

	_, err = io.WriteString(out, buildSummary(a, cmp, cfg.ToolName, cfg.Disclaimer))
	return err
}
