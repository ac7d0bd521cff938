// The classifier binary runs the batch maintenance flows: job classification
// over the raw_jobs staging table, and the legacy link URL repair.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/fractionalquest/repo-agent/internal/config"
	"github.com/fractionalquest/repo-agent/internal/database"
	"github.com/fractionalquest/repo-agent/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[classifier] No .env file found, using process environment")
	}

	root := &cobra.Command{
		Use:           "classifier",
		Short:         "Batch job classification and link maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(classifyCmd(), fixLinksCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

// newClassifierService wires config, database and the LLM client for one run.
func newClassifierService(ctx context.Context) (*services.ClassifierService, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("configuration error: %w", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	llmService, err := services.NewLLMService(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[classifier] LLM provider: %s", llmService.Provider)

	graph := services.NewGraphService(cfg.GraphSyncEnabled, cfg.APIBaseURL, cfg.RevalidateSecret)
	return services.NewClassifierService(db, llmService, graph), cfg, nil
}

func classifyCmd() *cobra.Command {
	var (
		limit      int
		all        bool
		source     string
		everyHours int
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify pending raw jobs with the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cfg, err := newClassifierService(ctx)
			if err != nil {
				return err
			}

			if all {
				limit = 1000
			}
			opts := services.ProcessOptions{Limit: limit, Source: source, Delay: cfg.ClassifyDelay}

			runOnce := func() {
				tally, err := svc.ProcessPending(ctx, opts)
				if err != nil {
					log.Printf("[classifier] Run failed: %v", err)
					return
				}
				fmt.Printf("COMPLETE: %d processed, %d errors\n", tally.Processed, tally.Errors)
			}

			if everyHours <= 0 {
				runOnce()
				return nil
			}

			// Watch mode: run immediately, then on schedule until interrupted.
			c := cron.New(cron.WithLogger(cron.DefaultLogger))
			if _, err := c.AddFunc(fmt.Sprintf("@every %dh", everyHours), runOnce); err != nil {
				return fmt.Errorf("cron.AddFunc: %w", err)
			}
			c.Start()
			defer c.Stop()
			log.Printf("[classifier] Watch mode - running every %dh", everyHours)

			runOnce()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop
			log.Println("[classifier] Shutting down")
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of jobs to process")
	cmd.Flags().BoolVar(&all, "all", false, "process all pending jobs")
	cmd.Flags().StringVar(&source, "source", "", "filter by source (e.g. linkedin, greenhouse)")
	cmd.Flags().IntVar(&everyHours, "every", 0, "watch mode: re-run every N hours")
	return cmd
}

func fixLinksCmd() *cobra.Command {
	var (
		limit  int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "fix-links",
		Short: "Convert legacy query-parameter link URLs to dedicated pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newClassifierService(cmd.Context())
			if err != nil {
				return err
			}

			fixed, converted, err := svc.FixLinks(cmd.Context(), limit, dryRun)
			if err != nil {
				return err
			}
			fmt.Printf("COMPLETE: %d jobs fixed, %d URLs converted\n", fixed, converted)
			if dryRun {
				fmt.Println("(dry run - no changes saved)")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 1000, "number of jobs to process")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview changes without saving")
	return cmd
}
