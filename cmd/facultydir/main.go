// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	facultydir "github.com/poiesic/facultydir"
	"github.com/poiesic/facultydir/core"
	"github.com/poiesic/facultydir/datafix"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}

	app := &cli.App{
		Name:  "facultydir",
		Usage: "Department directory with fuzzy search and trending",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import a roster JSON file",
				ArgsUsage: "FILE",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent department writes",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search the directory",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to print",
						Value: 20,
					},
				},
			},
			{
				Name:   "trending",
				Usage:  "Show trending names for a department",
				Action: trendingCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "department",
						Usage:    "Department name",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "window",
						Usage: "Click window to derive trending from",
						Value: 7 * 24 * time.Hour,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of names",
						Value: 10,
					},
				},
			},
			{
				Name:   "track",
				Usage:  "Record a click event",
				Action: trackCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:     "department",
						Usage:    "Department name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Entity name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "lab",
						Usage: "Lab name",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Click type (profile, labWebsite, personalWebsite, email, view)",
						Value: "profile",
					},
				},
			},
			{
				Name:      "fix-names",
				Usage:     "Apply a canonical-name map to stored rosters",
				ArgsUsage: "FIXFILE",
				Action:    fixNamesCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed writes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 500 * time.Millisecond,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDatabase(c *cli.Context) (*facultydir.Database, error) {
	db, err := facultydir.NewDatabase(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one roster file argument")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	importer, err := db.NewImporter()
	if err != nil {
		return err
	}
	defer importer.Release()

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	report, err := importer.Import(context.Background(), f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d departments, %d entities\n", report.Departments, report.Entities)
	for _, skipped := range report.Skipped {
		fmt.Printf("  skipped %q in %s: %s\n", skipped.Name, skipped.Department, skipped.Reason)
	}
	for _, failed := range report.Failed {
		fmt.Printf("  failed %s: %v\n", failed.Department, failed.Err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d departments failed to import", len(report.Failed))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("expected a query")
	}
	query := strings.Join(c.Args().Slice(), " ")

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return err
	}

	result, err := searcher.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(result.Results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	limit := c.Int("limit")
	if len(result.Trending) > 0 {
		fmt.Println("Trending:")
		printResults(result.Trending, limit)
		fmt.Println()
	}
	fmt.Println("Results:")
	printResults(result.Regular, limit)
	return nil
}

func printResults(results []core.SearchResult, limit int) {
	for i, r := range results {
		if i >= limit {
			break
		}
		line := fmt.Sprintf("  %5.2f  %s (%s)", r.Relevance, r.Name, r.Department)
		if r.Lab != "" {
			line += "  " + r.Lab
		}
		line += "  [" + r.MatchType.String() + "]"
		fmt.Println(line)
	}
}

func trendingCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	since := time.Now().Add(-c.Duration("window"))
	names, err := db.AnalyticsRepository().TopNames(context.Background(),
		c.String("department"), since, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("trending lookup failed: %w", err)
	}

	if len(names) == 0 {
		fmt.Println("No trending names.")
		return nil
	}
	for i, name := range names {
		fmt.Printf("%2d. %s\n", i+1, name)
	}
	return nil
}

func trackCommand(c *cli.Context) error {
	clickType := core.ParseClickType(c.String("type"))
	if err := core.ValidateClickType(clickType); err != nil {
		return fmt.Errorf("unknown click type %q: %w", c.String("type"), err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	record := &core.ClickRecord{
		EntityName: c.String("name"),
		Lab:        c.String("lab"),
		Department: c.String("department"),
		Type:       clickType,
	}
	if err := db.AnalyticsRepository().AddClick(context.Background(), record); err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}

	fmt.Printf("Recorded %s click for %s\n", clickType, record.EntityName)
	return nil
}

func fixNamesCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one fix file argument")
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	fixes, err := datafix.ParseFixes(f)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	fixer, err := db.NewFixer(
		datafix.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		datafix.WithProgressWriter(os.Stderr),
	)
	if err != nil {
		return err
	}

	report, err := fixer.Run(context.Background(), fixes)
	if err != nil {
		return fmt.Errorf("fix run failed: %w", err)
	}

	fmt.Printf("Scanned %d departments, rewrote %d, renamed %d entities in %s\n",
		report.Departments, report.Modified, report.Renamed, report.Elapsed.Round(time.Millisecond))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
