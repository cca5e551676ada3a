package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/simibol/planpoint/internal/app"
	"github.com/simibol/planpoint/internal/domain"
)

const loadBarWidth = 12

// FormatPlan renders a plan result as a day-by-day agenda followed by any
// warnings and unplaced sessions.
func FormatPlan(resp *app.PlanResponse, today time.Time) string {
	var b strings.Builder
	res := resp.Result

	title := "Plan preview"
	if resp.Applied {
		title = "Plan applied"
	}
	b.WriteString(Header(title))
	b.WriteString("\n")

	totalMin := 0
	for _, s := range res.Sessions {
		totalMin += s.DurationMin
	}
	fmt.Fprintf(&b, "%s sessions · %s scheduled",
		Bold(fmt.Sprint(len(res.Sessions))), Bold(FormatMinutes(totalMin)))
	if resp.Applied {
		fmt.Fprintf(&b, " · %s replaced", Bold(fmt.Sprint(resp.Replaced)))
	}
	b.WriteString("\n\n")

	for _, day := range res.Days {
		if len(day.Sessions) == 0 {
			continue
		}
		b.WriteString(formatDay(day, today))
	}

	if len(res.Warnings) > 0 {
		b.WriteString(FormatWarnings(res.Warnings))
	}
	if len(res.Unplaced) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Unplaced"))
		b.WriteString("\n")
		for _, s := range res.Unplaced {
			fmt.Fprintf(&b, "  %s  %s %s\n", TruncID(s.ID), sessionTitle(s), Dim(FormatMinutes(s.DurationMin)))
		}
	}
	return b.String()
}

func formatDay(day domain.DaySummary, today time.Time) string {
	var b strings.Builder
	label := DayLabel(day.Date)
	if day.IsWeekend {
		label += " " + Dim("(weekend)")
	}
	fmt.Fprintf(&b, "%s  %s  %s %s\n",
		Bold(label),
		Dim(RelativeDay(day.Date, today)),
		RenderLoadBar(day.TotalMin, day.CapacityMin, loadBarWidth),
		Dim(FormatMinutes(day.TotalMin)+" / "+FormatMinutes(day.CapacityMin)),
	)
	for _, s := range day.Sessions {
		fmt.Fprintf(&b, "  %s  %s  %s\n", TimeRange(s.Start, s.End), sessionTitle(s), RiskIndicator(s.RiskLevel))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatWarnings renders plan warnings grouped in input order.
func FormatWarnings(warnings []domain.PlanWarning) string {
	var b strings.Builder
	b.WriteString(Header("Warnings"))
	b.WriteString("\n")
	for _, w := range warnings {
		marker := StyleYellow.Render("!")
		switch w.Type {
		case domain.WarningDeadline:
			marker = StyleRed.Render("!")
		case domain.WarningInfo:
			marker = StyleBlue.Render("i")
		}
		fmt.Fprintf(&b, "  %s %s", marker, w.Message)
		if w.Detail != "" {
			fmt.Fprintf(&b, " %s", Dim("("+w.Detail+")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSessions renders stored sessions as a table.
func FormatSessions(sessions []domain.PlannedSession, today time.Time) string {
	if len(sessions) == 0 {
		return Dim("No sessions scheduled.") + "\n"
	}
	headers := []string{"ID", "DAY", "TIME", "SESSION", "LENGTH", "STATUS", "RISK"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			TruncID(s.ID),
			DayLabel(s.Date) + " " + Dim(RelativeDay(s.Date, today)),
			TimeRange(s.Start, s.End),
			sessionTitle(s),
			FormatMinutes(s.DurationMin),
			StatusPill(s.Status),
			RiskIndicator(s.RiskLevel),
		})
	}
	return RenderTableRight(headers, rows, 4)
}

// FormatReschedule summarizes a reschedule run.
func FormatReschedule(resp *app.RescheduleResponse) string {
	var b strings.Builder
	b.WriteString(Header("Reschedule " + string(resp.Mode)))
	b.WriteString("\n")
	if resp.Moved == 0 && len(resp.Result.Unplaced) == 0 {
		b.WriteString(Dim("Nothing to move.") + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Moved %s sessions.\n\n", Bold(fmt.Sprint(resp.Moved)))
	for _, s := range resp.Result.Sessions {
		from := ""
		if s.RolledFromDate != nil {
			from = Dim(" from " + DayLabel(*s.RolledFromDate))
		}
		fmt.Fprintf(&b, "  %s  %s %s  %s%s\n",
			TruncID(s.ID), DayLabel(s.Date), TimeRange(s.Start, s.End), sessionTitle(s), from)
	}
	if len(resp.Result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarnings(resp.Result.Warnings))
	}
	if n := len(resp.Result.Unplaced); n > 0 {
		fmt.Fprintf(&b, "\n%s\n", StyleRed.Render(fmt.Sprintf("%d sessions could not be placed and keep their old times.", n)))
	}
	return b.String()
}

// FormatMilestones renders milestones as a table.
func FormatMilestones(milestones []domain.Milestone, today time.Time) string {
	if len(milestones) == 0 {
		return Dim("No milestones imported.") + "\n"
	}
	headers := []string{"ID", "MILESTONE", "ASSESSMENT", "ESTIMATE", "TARGET", "DUE"}
	rows := make([][]string, 0, len(milestones))
	for _, m := range milestones {
		target := Dim("—")
		if m.TargetDate != nil {
			target = DayLabel(*m.TargetDate)
		}
		due := Dim("—")
		if !m.AssessmentDueDate.IsZero() {
			due = DayLabel(m.AssessmentDueDate) + " " + Dim(RelativeDay(m.AssessmentDueDate, today))
		}
		rows = append(rows, []string{
			TruncID(m.ID),
			m.Title,
			domain.CoalesceStr(m.AssessmentTitle, "—"),
			FormatHours(m.EstimateHours),
			target,
			due,
		})
	}
	return RenderTableRight(headers, rows, 3)
}

func sessionTitle(s domain.PlannedSession) string {
	title := domain.CoalesceStr(s.SubtaskTitle, s.MilestoneTitle)
	if s.AssessmentTitle != "" && s.AssessmentTitle != title {
		title += " " + Dim("· "+s.AssessmentTitle)
	}
	return title
}
