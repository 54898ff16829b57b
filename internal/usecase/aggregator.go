// Package usecase contains the aggregation logic of the pipeline.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/sirupsen/logrus"

	"github.com/oss-pulse/repo-trends/internal/domain"
	"github.com/oss-pulse/repo-trends/internal/gateway"
)

// createdAtLayouts are the accepted wire formats for the created_at field.
var createdAtLayouts = []string{time.RFC3339, "2006-01-02"}

// Aggregator is the use case that turns the combined record sequence into a
// TrendReport: per-year summaries plus a top-N ranking by stars.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *logrus.Entry
	topN    int
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *logrus.Entry, topN int) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		topN:    topN,
	}
}

// Run fetches all requested years through the gateway and builds the report.
func (a *Aggregator) Run(ctx context.Context, years []int) (*domain.TrendReport, error) {
	a.logger.Debug("starting fetch")
	records, err := a.fetcher.FetchYears(ctx, years)
	if err != nil {
		return nil, err
	}
	return a.BuildReport(records)
}

// BuildReport groups records by creation year and computes the count and mean-star
// summaries plus the stable top-N ranking. A record with an unparseable created_at
// fails the whole report; there is no per-record error isolation.
func (a *Aggregator) BuildReport(records []domain.Repository) (*domain.TrendReport, error) {
	grouped := make(map[int][]float64)
	for _, r := range records {
		year, err := createdYear(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", r.RepoName, err)
		}
		grouped[year] = append(grouped[year], float64(r.Stars))
	}

	years := make([]domain.YearSummary, 0, len(grouped))
	for year, starCounts := range grouped {
		mean, err := stats.Mean(starCounts)
		if err != nil {
			return nil, fmt.Errorf("mean stars for year %d: %w", year, err)
		}
		years = append(years, domain.YearSummary{
			Year:      year,
			Count:     len(starCounts),
			MeanStars: mean,
		})
	}
	sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })

	a.logger.Debugf("aggregated %d records into %d year groups", len(records), len(years))

	return &domain.TrendReport{
		Years:    years,
		TopRepos: topByStars(records, a.topN),
	}, nil
}

// topByStars returns the first n records by stars descending, projected to
// (repo_name, stars). The sort is stable so ties keep original relative order.
func topByStars(records []domain.Repository, n int) []domain.RankedRepo {
	sorted := make([]domain.Repository, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Stars > sorted[j].Stars })

	if n > len(sorted) {
		n = len(sorted)
	}
	top := make([]domain.RankedRepo, 0, n)
	for _, r := range sorted[:n] {
		top = append(top, domain.RankedRepo{RepoName: r.RepoName, Stars: r.Stars})
	}
	return top
}

func createdYear(createdAt string) (int, error) {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, createdAt); err == nil {
			return t.Year(), nil
		}
	}
	return 0, fmt.Errorf("unparseable created_at %q", createdAt)
}
