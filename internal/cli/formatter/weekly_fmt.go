package formatter

import (
	"fmt"
	"strings"

	"github.com/simibol/planpoint/internal/app"
)

const weeklyBarWidth = 16

// FormatWeekly renders one row per week with completion against plan. A
// week with nothing planned reads as complete.
func FormatWeekly(resp *app.WeeklyResponse) string {
	var b strings.Builder
	b.WriteString(Header("Weekly progress"))
	b.WriteString("\n")

	headers := []string{"WEEK", "DATES", "DONE", "PLANNED", "PROGRESS", "STATUS"}
	rows := make([][]string, 0, len(resp.Weeks))
	var planned, done float64
	for _, w := range resp.Weeks {
		planned += w.PlannedHours
		done += w.CompletedHours
		pct := 1.0
		if w.PlannedHours > 0 {
			pct = w.CompletedHours / w.PlannedHours
		}
		rows = append(rows, []string{
			w.WeekLabel,
			Dim(w.StartDate.Format("02 Jan") + " – " + w.EndDate.Format("02 Jan")),
			FormatHours(w.CompletedHours),
			FormatHours(w.PlannedHours),
			RenderProgress(pct, weeklyBarWidth),
			ProgressPill(w.Status),
		})
	}
	b.WriteString(RenderTableRight(headers, rows, 2, 3))
	fmt.Fprintf(&b, "\n%s %s of %s\n", Dim("Total:"), Bold(FormatHours(done)), FormatHours(planned))
	return b.String()
}
