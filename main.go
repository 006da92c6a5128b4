package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/internal/extract"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/internal/serve"
)

func main() {
	app := &cli.App{
		Name:  "tts-extractor",
		Usage: "extract speech-ready text from web pages",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to extraction config YAML (defaults apply when unset)",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the SQLite run history database (disabled when unset)",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "directory for the extraction result cache (disabled when unset)",
			},
			&cli.DurationFlag{
				Name:  "cache-max-age",
				Value: time.Hour,
				Usage: "how long cached results stay valid",
			},
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "fetch pages over plain HTTP instead of headless Chrome",
			},
			&cli.BoolFlag{
				Name:  "no-textract",
				Usage: "disable the document analysis strategy",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "log errors only",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "extract",
				Usage:     "extract TTS-ready text from one URL",
				ArgsUsage: "[url]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "page to extract",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "json",
						Usage: "output format: json or text",
					},
					&cli.BoolFlag{
						Name:  "sequential",
						Usage: "run DOM strategies one at a time in priority order",
					},
					&cli.Float64Flag{
						Name:  "short-circuit",
						Usage: "stop a sequential run once a result reaches this confidence",
					},
				},
				Action: extract.ExtractAction,
			},
			{
				Name:  "serve",
				Usage: "run the extraction HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Value: ":8080",
						Usage: "listen address",
					},
				},
				Action: serve.ServeAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
