package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/soos-lab/reflectd/pkg/domain/model"
	"github.com/soos-lab/reflectd/pkg/repository/memory"
	"github.com/soos-lab/reflectd/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var text string
	var file string
	var entryID string
	var userID string
	var lite bool
	var asJSON bool
	var pipeline pipelineConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "text",
			Aliases:     []string{"t"},
			Usage:       "Entry text",
			Destination: &text,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Read entry text from file ('-' for stdin)",
			Destination: &file,
		},
		&cli.StringFlag{
			Name:        "entry-id",
			Usage:       "Entry ID. A random UUID is used when empty",
			Destination: &entryID,
		},
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "Owner of the entry",
			Value:       "local",
			Destination: &userID,
		},
		&cli.BoolFlag{
			Name:        "lite",
			Usage:       "Use deterministic analysis only",
			Destination: &lite,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the result as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, pipeline.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Analyze a single entry and print the observation record",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			body, err := readEntryText(text, file, os.Stdin)
			if err != nil {
				return err
			}
			if entryID == "" {
				entryID = uuid.NewString()
			}

			// records go to a throwaway in-memory store
			uc, err := pipeline.Configure(ctx, memory.New())
			if err != nil {
				return err
			}

			entry := &model.Entry{
				ID:        entryID,
				UserID:    userID,
				Text:      body,
				CreatedAt: time.Now().UTC(),
			}

			var result *usecase.AnalyzeResult
			if lite {
				result, err = uc.Analysis.AnalyzeLite(ctx, entry)
			} else {
				result, err = uc.Analysis.Analyze(ctx, entry)
			}
			if err != nil {
				return goerr.Wrap(err, "failed to analyze entry")
			}

			if asJSON {
				enc := json.NewEncoder(c.Root().Writer)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return goerr.Wrap(err, "failed to encode result")
				}
				return nil
			}

			renderResult(c.Root().Writer, result)
			return nil
		},
	}
}

func readEntryText(text, file string, stdin io.Reader) (string, error) {
	switch {
	case text != "" && file != "":
		return "", goerr.New("--text and --file are mutually exclusive")
	case text != "":
		return text, nil
	case file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	case file != "":
		// #nosec G304 - path is provided by the operator
		data, err := os.ReadFile(file)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read entry file", goerr.V("path", file))
		}
		return string(data), nil
	default:
		return "", goerr.New("either --text or --file is required")
	}
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.FgYellow)
	faintColor   = color.New(color.Faint)
	okColor      = color.New(color.FgGreen)
)

func renderResult(w io.Writer, result *usecase.AnalyzeResult) {
	a := result.Analysis

	headingColor.Fprintf(w, "Entry %s (%s)\n", a.EntryID, a.Version)

	renderList(w, "Facts", a.Facts)
	renderList(w, "Story", a.Story)

	headingColor.Fprintln(w, "Emotions")
	for _, e := range a.Emotions {
		fmt.Fprintf(w, "  %s ", labelColor.Sprint(e.Label))
		faintColor.Fprintf(w, "intensity=%.0f certainty=%.2f %s/%s\n", e.Intensity, e.Certainty, e.Valence, e.Arousal)
	}

	headingColor.Fprintln(w, "Patterns")
	for _, p := range a.Patterns {
		fmt.Fprintf(w, "  %s ", labelColor.Sprint(p.Label))
		faintColor.Fprintf(w, "(%s) confidence=%.2f\n", p.PatternID, p.Confidence)
		for _, q := range p.EvidenceQuotes {
			faintColor.Fprintf(w, "    %q\n", q)
		}
	}

	if len(a.Triggers) > 0 {
		headingColor.Fprintln(w, "Triggers")
		fmt.Fprintf(w, "  %s\n", strings.Join(a.Triggers, ", "))
	}

	headingColor.Fprintln(w, "Observation")
	fmt.Fprintf(w, "  %s\n", a.ObservationComment)

	headingColor.Fprintln(w, "Similar")
	if len(result.Similar) == 0 {
		faintColor.Fprintln(w, "  none")
	}
	for _, s := range result.Similar {
		fmt.Fprintf(w, "  %s ", s.EntryID)
		okColor.Fprintf(w, "%.3f\n", s.Score)
	}

	faintColor.Fprintf(w, "embedding: %d dimensions\n", len(result.Embedding))
}

func renderList(w io.Writer, title string, items []string) {
	headingColor.Fprintln(w, title)
	if len(items) == 0 {
		faintColor.Fprintln(w, "  none")
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
