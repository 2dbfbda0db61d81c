package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"bizledger/internal/core"
	"bizledger/internal/tasks"
)

var (
	PrimaryColor = lipgloss.Color("#3B82F6")
	SuccessColor = lipgloss.Color("#10B981")
	WarningColor = lipgloss.Color("#F59E0B")
	ErrorColor   = lipgloss.Color("#EF4444")
	SubtleColor  = lipgloss.Color("#666666")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 2)
)

// RenderReport writes the monthly summary box followed by the category and
// daily breakdowns.
func RenderReport(w io.Writer, rep core.MonthlyReport) {
	profitStyle := SuccessStyle
	if rep.Profit < 0 {
		profitStyle = ErrorStyle
	}

	summary := strings.Join([]string{
		TitleStyle.Render(rep.Month.Label() + " 보고서"),
		fmt.Sprintf("총 수입   %s", SuccessStyle.Render(rep.TotalRevenue.String())),
		fmt.Sprintf("총 지출   %s", ErrorStyle.Render(rep.TotalExpense.String())),
		fmt.Sprintf("순이익    %s", profitStyle.Render(rep.Profit.String())),
		fmt.Sprintf("이익률    %.1f%%", rep.ProfitMargin),
	}, "\n")
	fmt.Fprintln(w, BoxStyle.Render(summary))

	if rep.IsEmpty() {
		fmt.Fprintln(w, SubtleStyle.Render("이 달에는 기록이 없습니다."))
		return
	}

	if rep.MaxRevenueDay > 0 {
		fmt.Fprintf(w, "최고 수입일: %d일\n", rep.MaxRevenueDay)
	}
	if rep.MaxExpenseDay > 0 {
		fmt.Fprintf(w, "최고 지출일: %d일\n", rep.MaxExpenseDay)
	}

	renderCategories(w, "수입 카테고리", rep.RevenueByCategory, rep.TotalRevenue)
	renderCategories(w, "지출 카테고리", rep.ExpenseByCategory, rep.TotalExpense)
	renderDaily(w, rep)
}

func renderCategories(w io.Writer, title string, rows []core.CategoryAmount, total core.Money) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render(title))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range rows {
		share := 0.0
		if total != 0 {
			share = float64(c.Amount) / float64(total) * 100
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", c.Name, c.Amount, share)
	}
	tw.Flush()
}

func renderDaily(w io.Writer, rep core.MonthlyReport) {
	revenue := make(map[int]core.Money, len(rep.DailyRevenues))
	for _, d := range rep.DailyRevenues {
		revenue[d.Day] = d.Amount
	}
	expense := make(map[int]core.Money, len(rep.DailyExpenses))
	for _, d := range rep.DailyExpenses {
		expense[d.Day] = d.Amount
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("일별 추이"))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", HeaderStyle.Render("일"), HeaderStyle.Render("수입"), HeaderStyle.Render("지출"))
	for day := 1; day <= 31; day++ {
		r, hasR := revenue[day]
		e, hasE := expense[day]
		if !hasR && !hasE {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", day, r, e)
	}
	tw.Flush()
}

// RenderMonths lists month keys, marking the current one.
func RenderMonths(w io.Writer, months []core.MonthKey, current core.MonthKey) {
	if len(months) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("기록된 월이 없습니다."))
		return
	}
	for _, m := range months {
		line := fmt.Sprintf("  %s  %s", m, m.Label())
		if m == current {
			line = TitleStyle.Render(fmt.Sprintf("* %s  %s", m, m.Label()))
		}
		fmt.Fprintln(w, line)
	}
}

func RenderVendors(w io.Writer, vendors []core.Vendor) {
	if len(vendors) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("등록된 거래처가 없습니다."))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"), HeaderStyle.Render("이름"), HeaderStyle.Render("분류"), HeaderStyle.Render("연락처"))
	for _, v := range vendors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Category, orDash(v.ContactInfo))
	}
	tw.Flush()
}

func RenderExpenses(w io.Writer, expenses []core.Expense) {
	if len(expenses) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("지출 내역이 없습니다."))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"), HeaderStyle.Render("날짜"), HeaderStyle.Render("금액"),
		HeaderStyle.Render("카테고리"), HeaderStyle.Render("거래처"), HeaderStyle.Render("설명"))
	var total core.Money
	for _, e := range expenses {
		total += e.Amount
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date, e.Amount, e.Category, orDash(e.VendorName), e.Description)
	}
	tw.Flush()
	fmt.Fprintf(w, "합계 %s (%d건)\n", total, len(expenses))
}

func RenderRevenues(w io.Writer, revenues []core.Revenue) {
	if len(revenues) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("수입 내역이 없습니다."))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("ID"), HeaderStyle.Render("날짜"), HeaderStyle.Render("금액"),
		HeaderStyle.Render("카테고리"), HeaderStyle.Render("설명"))
	var total core.Money
	for _, r := range revenues {
		total += r.Amount
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Date, r.Amount, r.Category, r.Description)
	}
	tw.Flush()
	fmt.Fprintf(w, "합계 %s (%d건)\n", total, len(revenues))
}

// RenderCategories prints both category lists side by side with their usage.
func RenderCategories(w io.Writer, expense, revenue []string) {
	fmt.Fprintln(w, TitleStyle.Render("지출 카테고리"))
	for _, c := range expense {
		if c == core.VendorCategory {
			fmt.Fprintf(w, "  %s %s\n", c, SubtleStyle.Render("(예약됨)"))
			continue
		}
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintln(w, TitleStyle.Render("수입 카테고리"))
	for _, c := range revenue {
		fmt.Fprintf(w, "  %s\n", c)
	}
}

var priorityStyles = map[core.Priority]lipgloss.Style{
	core.PriorityHigh:   ErrorStyle,
	core.PriorityMedium: WarningStyle,
	core.PriorityLow:    SubtleStyle,
}

func statusMark(s core.Status) string {
	switch s {
	case core.StatusCompleted:
		return SuccessStyle.Render("[x]")
	case core.StatusInProgress:
		return WarningStyle.Render("[~]")
	default:
		return "[ ]"
	}
}

func RenderTasks(w io.Writer, list []core.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("할 일이 없습니다."))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			statusMark(t.Status), t.ID, t.Title,
			priorityStyles[t.Priority].Render(string(t.Priority)),
			t.DueDate, orDash(t.Category))
	}
	tw.Flush()
}

func RenderTaskSummary(w io.Writer, sum tasks.Summary) {
	lines := []string{
		TitleStyle.Render("할 일 요약"),
		fmt.Sprintf("전체 %d건", sum.Total),
		fmt.Sprintf("대기 %d / 진행 %d / 완료 %d",
			sum.ByStatus[core.StatusPending], sum.ByStatus[core.StatusInProgress], sum.ByStatus[core.StatusCompleted]),
		fmt.Sprintf("높음 %d / 보통 %d / 낮음 %d",
			sum.ByPriority[core.PriorityHigh], sum.ByPriority[core.PriorityMedium], sum.ByPriority[core.PriorityLow]),
		fmt.Sprintf("완료율 %d%%", sum.CompletionRate),
	}
	fmt.Fprintln(w, BoxStyle.Render(strings.Join(lines, "\n")))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
