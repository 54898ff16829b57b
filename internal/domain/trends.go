// Package domain contains the core data structures for the yearly repository trends pipeline.
package domain

// Repository is one repository's metadata as returned by the API for a query year.
// Duplicate names across years are possible and pass through untouched.
type Repository struct {
	RepoName  string `json:"repo_name"`
	CreatedAt string `json:"created_at"`
	Stars     int    `json:"stars"`
	Forks     int    `json:"forks"`
}

// YearSummary aggregates all repositories created in a single calendar year.
// Years with no records have no summary; they are absent, not zero-filled.
type YearSummary struct {
	Year      int     `json:"year"`
	Count     int     `json:"count"`
	MeanStars float64 `json:"mean_stars"`
}

// RankedRepo is one entry of the top-N ranking by stars.
type RankedRepo struct {
	RepoName string `json:"repo_name"`
	Stars    int    `json:"stars"`
}

// TrendReport is the full output of the aggregation stage.
type TrendReport struct {
	Years    []YearSummary `json:"years"`
	TopRepos []RankedRepo  `json:"top_repos"`
}
