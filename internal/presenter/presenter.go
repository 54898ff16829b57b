// Package presenter renders the trend report in the terminal.
package presenter

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/pterm/pterm"

	"github.com/oss-pulse/repo-trends/internal/domain"
)

// Presenter writes the charts and the ranking table for a TrendReport.
// Purely presentational; nothing it produces is consumed downstream.
type Presenter struct {
	out io.Writer
}

// New creates a Presenter writing to out.
func New(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Render writes the growth line chart, the average-stars bar chart and the
// top-N table, in that order.
func (p *Presenter) Render(report *domain.TrendReport) error {
	p.renderGrowthChart(report.Years)
	if err := p.renderStarsChart(report.Years); err != nil {
		return err
	}
	return p.renderTopRepos(report.TopRepos)
}

func (p *Presenter) renderGrowthChart(years []domain.YearSummary) {
	fmt.Fprintln(p.out, "Repositories created per year")
	if len(years) == 0 {
		fmt.Fprintln(p.out, "  no data")
		fmt.Fprintln(p.out)
		return
	}
	counts := make([]float64, 0, len(years))
	for _, y := range years {
		counts = append(counts, float64(y.Count))
	}
	caption := fmt.Sprintf("%d - %d", years[0].Year, years[len(years)-1].Year)
	fmt.Fprintln(p.out, asciigraph.Plot(counts, asciigraph.Height(10), asciigraph.Caption(caption)))
	fmt.Fprintln(p.out)
}

func (p *Presenter) renderStarsChart(years []domain.YearSummary) error {
	fmt.Fprintln(p.out, "Average stars per year")
	if len(years) == 0 {
		fmt.Fprintln(p.out, "  no data")
		fmt.Fprintln(p.out)
		return nil
	}
	bars := make([]pterm.Bar, 0, len(years))
	for _, y := range years {
		bars = append(bars, pterm.Bar{
			Label: strconv.Itoa(y.Year),
			// Bars hold integers; the rounding is display-only.
			Value: int(math.Round(y.MeanStars)),
		})
	}
	chart, err := pterm.DefaultBarChart.WithHorizontal().WithShowValue().WithBars(bars).Srender()
	if err != nil {
		return fmt.Errorf("rendering stars chart: %w", err)
	}
	fmt.Fprintln(p.out, chart)
	return nil
}

func (p *Presenter) renderTopRepos(top []domain.RankedRepo) error {
	fmt.Fprintf(p.out, "Top %d repositories by stars\n", len(top))
	if len(top) == 0 {
		fmt.Fprintln(p.out, "  no data")
		return nil
	}
	data := pterm.TableData{{"#", "Repository", "Stars"}}
	for i, r := range top {
		data = append(data, []string{strconv.Itoa(i + 1), r.RepoName, strconv.Itoa(r.Stars)})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("rendering ranking table: %w", err)
	}
	fmt.Fprintln(p.out, table)
	return nil
}
