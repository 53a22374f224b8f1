// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/panjf2000/ants/v2"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/inquest"
	"github.com/poiesic/inquest/ai"
	"github.com/poiesic/inquest/config"
	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/ingest"
	"github.com/poiesic/inquest/pipeline"
	"github.com/poiesic/inquest/reprocess"
	"github.com/poiesic/inquest/search"
)

func main() {
	app := &cli.App{
		Name:  "inquest",
		Usage: "Document processing pipeline for scanned document releases",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
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
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "worker",
				Usage:  "Run pipeline workers against the job queue",
				Action: workerCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of concurrent worker loops (overrides config)",
					},
				},
			},
			{
				Name:      "import",
				Usage:     "Import documents from a local directory",
				ArgsUsage: "<directory>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Force the source archive instead of detecting it from paths",
					},
					&cli.BoolFlag{
						Name:  "no-recursive",
						Usage: "Do not descend into subdirectories",
					},
				},
			},
			{
				Name:   "reprocess",
				Usage:  "Re-enqueue pipeline stages for stored documents",
				Action: reprocessCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only documents in this status (pending, text_extracted, failed)",
					},
					&cli.StringSliceFlag{
						Name:     "stage",
						Usage:    "Stage to enqueue (extract_text, detect_redaction, ner, embed); repeatable",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to enqueue in each batch",
						Value: 100,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Semantic search over embedded document chunks",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
					&cli.Float64Flag{
						Name:  "min-similarity",
						Usage: "Similarity floor for results",
						Value: 0.60,
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Show document and job queue counts",
				Action: statusCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig merges the config file with global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if db := c.String("db"); db != "" {
		cfg.DBPath = db
	}
	return cfg, nil
}

// openArchive opens the archive configured by cfg.
func openArchive(cfg *config.Config) (*inquest.Archive, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedding.Host),
		ai.WithEmbeddingModel(cfg.Embedding.Model),
		ai.WithRecognizerHost(cfg.Recognizer.Host),
		ai.WithRecognizerModel(cfg.Recognizer.Model),
		ai.WithRecognizerMaxInput(cfg.Recognizer.MaxInput),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	archive, err := inquest.OpenArchive(cfg.DBPath, inquest.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return archive, nil
}

func workerCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	workers := cfg.Workers.Count
	if c.Int("workers") > 0 {
		workers = c.Int("workers")
	}

	archive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer archive.Close()

	pipe, err := archive.NewPipeline(pipeline.WithChunking(cfg.Chunking.Size, cfg.Chunking.Overlap))
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	slog.Info("starting workers", "workers", workers, "db", cfg.DBPath)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		worker, err := archive.NewWorker(pipe,
			pipeline.WithIdleDelay(cfg.Workers.IdleDelay.Std()),
			pipeline.WithErrorDelay(cfg.Workers.ErrorDelay.Std()),
		)
		if err != nil {
			return fmt.Errorf("failed to build worker: %w", err)
		}

		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("worker exited", "err", err)
			}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("failed to start worker: %w", err)
		}
	}

	wg.Wait()
	slog.Info("workers stopped")
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one directory argument")
	}
	dir := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	archive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer archive.Close()

	opts := []ingest.Option{ingest.WithRecursive(!c.Bool("no-recursive"))}
	if source := c.String("source"); source != "" {
		opts = append(opts, ingest.WithSource(source))
	}

	importer, err := archive.NewImporter(opts...)
	if err != nil {
		return fmt.Errorf("failed to build importer: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	imported, err := importer.ImportDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("import failed after %d documents: %w", imported, err)
	}

	fmt.Printf("Imported %d documents from %s\n", imported, dir)
	return nil
}

func reprocessCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	kinds := make([]core.JobKind, 0, len(c.StringSlice("stage")))
	for _, stage := range c.StringSlice("stage") {
		kinds = append(kinds, core.JobKind(stage))
	}

	archive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer archive.Close()

	reprocessConfig := reprocess.DefaultConfig()
	if c.Int("batch-size") > 0 {
		reprocessConfig.BatchSize = c.Int("batch-size")
	}

	r, err := archive.NewReprocessor(reprocessConfig, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to build reprocessor: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = r.Run(ctx, core.DocumentStatus(c.String("status")), kinds)
	if err != nil {
		return fmt.Errorf("reprocessing failed: %w", err)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query argument")
	}
	query := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	archive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer archive.Close()

	searcher, err := archive.NewSearcher(search.WithMinSimilarity(float32(c.Float64("min-similarity"))))
	if err != nil {
		return fmt.Errorf("failed to build searcher: %w", err)
	}

	results, err := searcher.FindSimilar(context.Background(), query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. [%.3f] %s (%s, chunk %d)\n", i+1, result.Score,
			result.Document.Filename, result.Document.Source, result.Chunk.ChunkIndex)
		fmt.Printf("   %s\n", snippet(result.Chunk.ChunkText, 200))
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	archive, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := context.Background()

	docCounts, err := archive.DocumentRepository().CountDocumentsByStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to count documents: %w", err)
	}
	jobCounts, err := archive.JobRepository().CountJobsByStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to count jobs: %w", err)
	}

	fmt.Println("Documents:")
	for _, status := range []core.DocumentStatus{core.DocumentPending, core.DocumentTextExtracted, core.DocumentFailed} {
		fmt.Printf("  %-16s %d\n", status, docCounts[status])
	}
	fmt.Println("Jobs:")
	for _, status := range []core.JobStatus{core.JobQueued, core.JobRunning, core.JobCompleted, core.JobFailed} {
		fmt.Printf("  %-16s %d\n", status, jobCounts[status])
	}
	return nil
}

// snippet truncates text for terminal output.
func snippet(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
