// Package charts renders report and task charts as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"bizledger/internal/core"
	"bizledger/internal/tasks"
)

var (
	revenueColor = drawing.ColorFromHex("10b981")
	expenseColor = drawing.ColorFromHex("ef4444")

	// Status slice colours: pending, in-progress, completed.
	statusColors = []drawing.Color{
		drawing.ColorFromHex("94a3b8"),
		drawing.ColorFromHex("f59e0b"),
		drawing.ColorFromHex("10b981"),
	}
)

var background = chart.Style{
	Padding: chart.Box{
		Top:    50,
		Left:   50,
		Right:  50,
		Bottom: 50,
	},
	FillColor: chart.ColorWhite,
}

// Generator renders charts. The zero value is ready to use.
type Generator struct {
	Width  int
	Height int
}

func NewGenerator() *Generator {
	return &Generator{Width: 1200, Height: 600}
}

func (g *Generator) size() (int, int) {
	w, h := g.Width, g.Height
	if w <= 0 {
		w = 1200
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

// DailyChart draws daily revenue and expense totals across the month.
// It returns nil when the month has no records.
func (g *Generator) DailyChart(rep core.MonthlyReport) ([]byte, error) {
	if rep.IsEmpty() {
		return nil, nil
	}

	days := daysIn(rep.Month)
	x := make([]float64, days)
	for i := range x {
		x[i] = float64(i + 1)
	}
	revenues := fillDays(rep.DailyRevenues, days)
	expenses := fillDays(rep.DailyExpenses, days)

	top := 0.0
	for i := range revenues {
		top = max(top, revenues[i], expenses[i])
	}
	if top <= 0 {
		top = 1
	}

	w, h := g.size()
	graph := chart.Chart{
		Title:      rep.Month.String(),
		Width:      w,
		Height:     h,
		Background: background,
		XAxis: chart.XAxis{
			Range:          &chart.ContinuousRange{Min: 1, Max: float64(days)},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v.(float64)) },
			Style:          chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string { return core.Money(v.(float64)).String() },
			Style:          chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "수입",
				XValues: x,
				YValues: revenues,
				Style:   chart.Style{StrokeColor: revenueColor, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "지출",
				XValues: x,
				YValues: expenses,
				Style:   chart.Style{StrokeColor: expenseColor, StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{FontSize: 12, FontColor: chart.ColorBlack}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render daily chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// CategoryPie draws the category split of one side of the report. It returns
// nil when that side has no positive totals.
func (g *Generator) CategoryPie(rep core.MonthlyReport, expenses bool) ([]byte, error) {
	categories, title := rep.RevenueByCategory, "수입 분포"
	total := rep.TotalRevenue
	if expenses {
		categories, title = rep.ExpenseByCategory, "지출 분포"
		total = rep.TotalExpense
	}

	values := make([]chart.Value, 0, len(categories))
	for _, c := range categories {
		if c.Amount <= 0 {
			continue
		}
		share := float64(c.Amount) / float64(total) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", c.Name, c.Amount, share),
			Value: float64(c.Amount),
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		})
	}
	return g.renderPie(title, values)
}

// TaskStatusPie draws the task count per status. It returns nil for an empty list.
func (g *Generator) TaskStatusPie(sum tasks.Summary) ([]byte, error) {
	statuses := []core.Status{core.StatusPending, core.StatusInProgress, core.StatusCompleted}
	values := make([]chart.Value, 0, len(statuses))
	for i, s := range statuses {
		n := sum.ByStatus[s]
		if n == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %d", s, n),
			Value: float64(n),
			Style: chart.Style{FillColor: statusColors[i], FontSize: 12, FontColor: chart.ColorBlack},
		})
	}
	return g.renderPie(fmt.Sprintf("완료율 %d%%", sum.CompletionRate), values)
}

func (g *Generator) renderPie(title string, values []chart.Value) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	w, h := g.size()
	pie := chart.PieChart{
		Title:      title,
		Width:      w,
		Height:     h,
		Values:     values,
		Background: background,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func daysIn(m core.MonthKey) int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func fillDays(series []core.DayAmount, days int) []float64 {
	out := make([]float64, days)
	for _, d := range series {
		if d.Day >= 1 && d.Day <= days {
			out[d.Day-1] = float64(d.Amount)
		}
	}
	return out
}
