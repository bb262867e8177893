// Copyright 2025 Nevis Search Authors
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	nevissearch "github.com/hannakb/NevisSearchAPI"
	"github.com/hannakb/NevisSearchAPI/config"
	"github.com/hannakb/NevisSearchAPI/core"
	"github.com/hannakb/NevisSearchAPI/ingestion"
	"github.com/hannakb/NevisSearchAPI/search"
	"github.com/hannakb/NevisSearchAPI/summary"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "nevis",
		Usage: "Hybrid keyword and semantic search over records and documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (overrides config)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search records and documents",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scope",
						Usage: "Search scope (all, records, documents)",
						Value: "all",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum results per entity kind",
						Value:   10,
					},
				},
			},
			{
				Name:      "summarize",
				Usage:     "Get or generate a document summary",
				ArgsUsage: "<document-id>",
				Action:    summarizeCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "length",
						Usage: "Maximum summary length in characters",
						Value: 200,
					},
					&cli.BoolFlag{
						Name:  "regenerate",
						Usage: "Regenerate the summary even if cached",
					},
				},
			},
			{
				Name:   "create-record",
				Usage:  "Create a profile record",
				Action: createRecordCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "first-name", Required: true},
					&cli.StringFlag{Name: "last-name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "description"},
				},
			},
			{
				Name:   "create-document",
				Usage:  "Create a document owned by a record",
				Action: createDocumentCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "owner", Usage: "Owning record ID", Required: true},
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "content", Required: true},
				},
			},
			{
				Name:      "delete-record",
				Usage:     "Delete a record and all of its documents",
				ArgsUsage: "<record-id>",
				Action:    deleteRecordCommand,
			},
			{
				Name:      "import",
				Usage:     "Bulk import documents from a JSON file",
				ArgsUsage: "<file>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "owner",
						Usage:    "Owning record ID",
						Required: true,
					},
				},
			},
			{
				Name:   "backfill",
				Usage:  "Embed documents that are missing embeddings",
				Action: backfillCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig builds the effective configuration from the --config file (if
// given) and the --db override.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dbPath := c.String("db"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

func openDatabase(c *cli.Context) (*nevissearch.Database, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	db, err := nevissearch.NewDatabase(cfg.Database.Path, nevissearch.WithAIConfig(cfg.AIConfig()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, cfg, nil
}

func parseScope(s string) (search.Scope, error) {
	switch strings.ToLower(s) {
	case "all", "":
		return search.ScopeAll, nil
	case "records":
		return search.ScopeRecords, nil
	case "documents":
		return search.ScopeDocuments, nil
	default:
		return search.ScopeAll, fmt.Errorf("invalid scope %q: must be one of all, records, documents", s)
	}
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	scope, err := parseScope(c.String("scope"))
	if err != nil {
		return err
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher(search.WithConfig(cfg.SearchConfig()))
	if err != nil {
		return err
	}

	results, err := searcher.Search(context.Background(), query, scope, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", results.TotalCount)
	for i, hit := range results.Records {
		fmt.Printf("R%d: %s <%s> (%s)[%0.3f %s]\n",
			i, hit.Entity.FullName(), hit.Entity.Email, hit.Entity.Id, hit.Score, hit.MatchField)
	}
	for i, hit := range results.Documents {
		fmt.Printf("D%d: '%s' (%s)[%0.3f %s]\n",
			i, hit.Entity.Title, hit.Entity.Id, hit.Score, hit.MatchField)
	}
	return nil
}

func summarizeCommand(c *cli.Context) error {
	documentID := c.Args().First()
	if documentID == "" {
		return fmt.Errorf("document ID is required")
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	cache, err := db.NewSummaryCache(summary.WithConfig(cfg.SummaryConfig()))
	if err != nil {
		return err
	}

	result, err := cache.GetOrGenerate(context.Background(), documentID, c.Int("length"), c.Bool("regenerate"))
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	fmt.Println(result.Summary)
	if result.WasCached {
		fmt.Fprintln(os.Stderr, "(cached)")
	}
	return nil
}

func createRecordCommand(c *cli.Context) error {
	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	record, err := pipeline.CreateRecord(context.Background(), &core.Record{
		FirstName:   c.String("first-name"),
		LastName:    c.String("last-name"),
		Email:       c.String("email"),
		Description: c.String("description"),
	})
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	fmt.Println(record.Id)
	return nil
}

func createDocumentCommand(c *cli.Context) error {
	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	document, err := pipeline.CreateDocument(context.Background(), &core.Document{
		OwnerId: c.String("owner"),
		Title:   c.String("title"),
		Content: c.String("content"),
	})
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	fmt.Println(document.Id)
	return nil
}

func deleteRecordCommand(c *cli.Context) error {
	recordID := c.Args().First()
	if recordID == "" {
		return fmt.Errorf("record ID is required")
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	if err := pipeline.DeleteRecord(context.Background(), recordID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func importCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("import file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var items []ingestion.ImportItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}

	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.ImportDocuments(context.Background(), c.String("owner"), items)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d documents, skipped %d duplicates\n", report.Imported, report.Skipped)
	return nil
}

func backfillCommand(c *cli.Context) error {
	db, cfg, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := newPipeline(db, cfg)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.BackfillEmbeddings(context.Background())
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}

	fmt.Printf("Embedded %d documents, %d still pending\n", report.Embedded, report.Remaining)
	return nil
}

func newPipeline(db *nevissearch.Database, cfg *config.Config) (*ingestion.Pipeline, error) {
	opts := []ingestion.Option{
		ingestion.WithBatchSize(cfg.Ingestion.BatchSize),
	}
	if cfg.Ingestion.PoolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(cfg.Ingestion.PoolSize))
	}
	return db.NewIngestionPipeline(opts...)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
