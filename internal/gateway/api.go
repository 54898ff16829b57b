// Package gateway provides a gateway to the remote yearly repository metadata API.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"

	"github.com/oss-pulse/repo-trends/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching yearly repository records.
type Fetcher interface {
	FetchYears(ctx context.Context, years []int) ([]domain.Repository, error)
}

// APIGateway is the concrete implementation of the Fetcher interface.
// It issues one GET per year against `<endpoint>?year=<YYYY>`.
type APIGateway struct {
	endpoint   string
	httpClient *http.Client
	logger     *logrus.Entry
	progress   bool
}

// NewAPIGateway is a constructor that creates a new instance of APIGateway.
func NewAPIGateway(endpoint string, logger *logrus.Entry) *APIGateway {
	return &APIGateway{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		logger:     logger,
	}
}

// WithProgress enables a terminal progress bar over the year loop.
// Intended for interactive runs; leave off in tests.
func (g *APIGateway) WithProgress() *APIGateway {
	g.progress = true
	return g
}

// FetchYears fetches each year's records in order and returns the combined sequence.
// Each fetch blocks until its response arrives; there is no overlap between years.
// A non-200 response is logged and contributes zero records for that year; transport
// and decode failures abort the whole fetch.
func (g *APIGateway) FetchYears(ctx context.Context, years []int) ([]domain.Repository, error) {
	var bar *pb.ProgressBar
	if g.progress {
		bar = pb.New(len(years)).SetWriter(os.Stderr)
		bar.Start()
		defer bar.Finish()
	}

	records := make([]domain.Repository, 0)
	for _, year := range years {
		yearRecords, err := g.fetchYear(ctx, year)
		if err != nil {
			return nil, err
		}
		records = append(records, yearRecords...)
		if bar != nil {
			bar.Increment()
		}
	}
	g.logger.Debugf("fetched %d records across %d years", len(records), len(years))
	return records, nil
}

func (g *APIGateway) fetchYear(ctx context.Context, year int) ([]domain.Repository, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for year %d: %w", year, err)
	}
	q := req.URL.Query()
	q.Set("year", strconv.Itoa(year))
	req.URL.RawQuery = q.Encode()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching year %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warnf("year %d: unexpected status %d, skipping", year, resp.StatusCode)
		return nil, nil
	}

	var records []domain.Repository
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding response for year %d: %w", year, err)
	}
	g.logger.Debugf("year %d: %d records", year, len(records))
	return records, nil
}
