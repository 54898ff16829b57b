package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oss-pulse/repo-trends/internal/domain"
)

// discardLogger returns a logrus entry that swallows all output.
func discardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "gateway")
}

func TestAPIGateway_FetchYears(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		years          []int
		expected       []domain.Repository
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - combines records from all years",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				year := r.URL.Query().Get("year")
				require.NotEmpty(t, year)
				w.WriteHeader(http.StatusOK)
				fmt.Fprintf(w, `[{"repo_name":"org/repo-%s","created_at":"%s-06-01T12:00:00Z","stars":10,"forks":2}]`, year, year)
			},
			years: []int{2018, 2019},
			expected: []domain.Repository{
				{RepoName: "org/repo-2018", CreatedAt: "2018-06-01T12:00:00Z", Stars: 10, Forks: 2},
				{RepoName: "org/repo-2019", CreatedAt: "2019-06-01T12:00:00Z", Stars: 10, Forks: 2},
			},
		},
		{
			name: "non-200 year contributes zero records and no error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("year") == "2019" {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"repo_name":"org/repo-a","created_at":"2018-01-02T00:00:00Z","stars":5,"forks":1}]`)
			},
			years: []int{2018, 2019},
			expected: []domain.Repository{
				{RepoName: "org/repo-a", CreatedAt: "2018-01-02T00:00:00Z", Stars: 5, Forks: 1},
			},
		},
		{
			name: "all years non-200 yields empty sequence",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			years:    []int{2018, 2019, 2020},
			expected: []domain.Repository{},
		},
		{
			name: "malformed body aborts the fetch",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"not":"an array"`)
			},
			years:          []int{2018},
			expectError:    true,
			expectedErrMsg: "decoding response for year 2018",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			gateway := NewAPIGateway(server.URL, discardLogger())
			records, err := gateway.FetchYears(context.Background(), tc.years)

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, records)
			}
		})
	}
}

func TestAPIGateway_FetchYears_TransportError(t *testing.T) {
	// Point the gateway at a server that is already closed to force a
	// connection-level failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	gateway := NewAPIGateway(url, discardLogger())
	records, err := gateway.FetchYears(context.Background(), []int{2018})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fetching year 2018")
	assert.Nil(t, records)
}

func TestAPIGateway_FetchYears_SequentialOrder(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query().Get("year"))
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	gateway := NewAPIGateway(server.URL, discardLogger())
	_, err := gateway.FetchYears(context.Background(), []int{2018, 2019, 2020, 2021, 2022})

	require.NoError(t, err)
	assert.Equal(t, []string{"2018", "2019", "2020", "2021", "2022"}, seen)
}
