// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oss-pulse/repo-trends/internal/gateway"
	"github.com/oss-pulse/repo-trends/internal/presenter"
	"github.com/oss-pulse/repo-trends/internal/usecase"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetches yearly repository metadata and renders the trend report",
	Long: `Fetches repository records for each requested year from the configured
endpoint, aggregates them into per-year summaries and a top-N ranking by stars,
and renders a growth chart, an average-stars chart and the ranking table.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		endpoint, _ := cmd.Flags().GetString("endpoint")
		years, _ := cmd.Flags().GetIntSlice("years")
		topN, _ := cmd.Flags().GetInt("top")

		// Inject dependencies and run the pipeline: fetch, aggregate, present.
		apiGateway := gateway.NewAPIGateway(endpoint, logger.WithField("component", "gateway")).WithProgress()
		aggregator := usecase.NewAggregator(apiGateway, logger.WithField("component", "aggregator"), topN)

		report, err := aggregator.Run(ctx, years)
		if err != nil {
			logger.WithError(err).Fatal("failed to build trend report")
		}

		if err := presenter.New(os.Stdout).Render(report); err != nil {
			logger.WithError(err).Fatal("failed to render trend report")
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringP("endpoint", "e", "", "Base URL of the yearly repository metadata API (required)")
	fetchCmd.MarkFlagRequired("endpoint")
	fetchCmd.Flags().IntSlice("years", []int{2018, 2019, 2020, 2021, 2022}, "Years to fetch")
	fetchCmd.Flags().IntP("top", "n", 10, "Number of repositories in the ranking")
}
