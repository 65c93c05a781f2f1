package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Bahjat/formsearch/internal/app"
	"github.com/Bahjat/formsearch/internal/model"
	"github.com/Bahjat/formsearch/internal/platform/config"
	"github.com/Bahjat/formsearch/internal/platform/logger"
	"github.com/Bahjat/formsearch/internal/report"
	"github.com/Bahjat/formsearch/internal/source"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:     "formsearch",
		Short:   "Search career pages through their own search forms",
		Version: version,
		Long: `formsearch finds the search form on each career page, submits a query
through it and prints the first result links of every page.`,
		Example: `  # Search the first 10 pages listed in companies.csv
  formsearch run --csv companies.csv --limit 10

  # Look for graduate roles on one page through a POST form
  formsearch lookup --method post --action /search --field-name q --query graduate https://example.com/careers`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.FormAction, "action", cfg.FormAction, "exact action attribute of the search form")
	flags.StringVar(&cfg.FormMethod, "method", cfg.FormMethod, "method attribute of the search form (case-insensitive)")
	flags.StringVar(&cfg.QueryFieldType, "field-type", cfg.QueryFieldType, "type attribute of the query input")
	flags.StringVar(&cfg.QueryFieldName, "field-name", cfg.QueryFieldName, "name attribute of the query input")
	flags.StringVarP(&cfg.Query, "query", "q", cfg.Query, "text to search for")
	flags.IntVar(&cfg.ResultCap, "cap", cfg.ResultCap, "maximum result links per page")
	flags.DurationVar(&cfg.FetchTimeout, "fetch-timeout", cfg.FetchTimeout, "timeout for fetching each page")
	flags.DurationVar(&cfg.SubmitTimeout, "submit-timeout", cfg.SubmitTimeout, "timeout for each form submission")
	flags.BoolVar(&cfg.FollowRedirects, "follow-redirects", cfg.FollowRedirects, "follow redirects when fetching")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (DEBUG, INFO, WARN, ERROR)")

	root.AddCommand(newRunCmd(cfg), newLookupCmd(cfg))
	return root
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	var (
		csvPath string
		limit   int
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search every page listed in the first column of a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative, got %d", limit)
			}

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("opening CSV: %w", err)
			}
			defer func() { _ = f.Close() }()

			urls, err := source.ReadURLs(f, limit)
			if err != nil {
				return err
			}

			stack := app.New(*cfg, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel))
			outcomes := runBatch(cmd.Context(), stack, urls, cfg.Query, cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "Search completed!")

			if outPath != "" {
				saved, err := report.SaveCSV(outPath, outcomes)
				if err != nil {
					return fmt.Errorf("saving results: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Results saved to %s\n", saved)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file whose first column holds the page URLs")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries to search through (0 for all)")
	cmd.Flags().IntVar(&cfg.LookupConcurrency, "concurrency", cfg.LookupConcurrency, "pages searched in parallel")
	cmd.Flags().Float64Var(&cfg.HostRateLimit, "host-rate", cfg.HostRateLimit, "requests per second per host (0 for unlimited)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "also save results to this CSV file (never overwritten)")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

func newLookupCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup URL",
		Short: "Search a single page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			stack := app.New(*cfg, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel))
			out := stack.Service.Lookup(cmd.Context(), args[0], cfg.Query)
			return report.WriteText(cmd.OutOrStdout(), cfg.Query, out)
		},
	}
}

// runBatch prints each outcome as soon as it and every earlier one are done.
func runBatch(ctx context.Context, stack app.Stack, urls []string, query string, w io.Writer) []model.Outcome {
	outcomes := make([]model.Outcome, 0, len(urls))
	stack.Batch.RunEach(ctx, urls, query, func(_ int, o model.Outcome) {
		_ = report.WriteText(w, query, o)
		outcomes = append(outcomes, o)
	})
	return outcomes
}
