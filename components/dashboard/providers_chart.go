package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// PortfolioHistoryPoint is one sample of portfolio value over time.
type PortfolioHistoryPoint struct {
	Timestamp time.Time
	Value     float64
}

// PortfolioHistoryRepository fetches the value series for the portfolio chart.
type PortfolioHistoryRepository interface {
	FetchPortfolioHistory(ctx context.Context, userID string, days int) ([]PortfolioHistoryPoint, error)
}

// PortfolioChartProvider renders the portfolio value series as server-side
// echarts markup. Rendered HTML is memoized per user/day-window.
type PortfolioChartProvider struct {
	repo  PortfolioHistoryRepository
	cache RenderCache
	theme string
	days  int
}

// PortfolioChartOption customizes chart provider behavior.
type PortfolioChartOption func(*PortfolioChartProvider)

// WithChartTheme overrides the echarts theme (defaults to Westeros).
func WithChartTheme(theme string) PortfolioChartOption {
	return func(p *PortfolioChartProvider) { p.theme = theme }
}

// WithChartWindow sets how many days of history to chart.
func WithChartWindow(days int) PortfolioChartOption {
	return func(p *PortfolioChartProvider) { p.days = days }
}

// NewPortfolioChartProvider builds the chart provider. A nil cache uses the
// shared 5 minute TTL cache; a nil repository uses demo data.
func NewPortfolioChartProvider(repo PortfolioHistoryRepository, cache RenderCache, options []PortfolioChartOption) Provider {
	if repo == nil {
		repo = DemoWalletRepository{}
	}
	if cache == nil {
		cache = sharedChartCache
	}
	p := &PortfolioChartProvider{
		repo:  repo,
		cache: cache,
		theme: types.ThemeWesteros,
		days:  30,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Fetch renders the chart and returns its HTML alongside the raw series.
func (p *PortfolioChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	points, err := p.repo.FetchPortfolioHistory(ctx, meta.UserID, p.days)
	if err != nil {
		return nil, fmt.Errorf("portfolio chart provider: %w", err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("portfolio chart provider: history series is empty")
	}

	title := DefaultTitleFor(TypePortfolioChart, meta.Locale)
	key := chartKey(map[string]any{
		"user":   meta.UserID,
		"days":   p.days,
		"theme":  p.theme,
		"locale": meta.Locale,
		"last":   points[len(points)-1].Timestamp.Unix(),
	})
	html, err := p.cache.ChartHTML(key, func() (string, error) {
		return p.renderLine(title, points)
	})
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(points))
	for i, point := range points {
		values[i] = point.Value
	}
	return WidgetData{
		"chart_html": html,
		"chart_type": "line",
		"title":      title,
		"days":       p.days,
		"values":     values,
	}, nil
}

func (p *PortfolioChartProvider) renderLine(title string, points []PortfolioHistoryPoint) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  p.theme,
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	labels := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		labels[i] = point.Timestamp.Format("Jan 2")
		data[i] = opts.LineData{Value: point.Value}
	}
	line.SetXAxis(labels)
	line.AddSeries(title, data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
