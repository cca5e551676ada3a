package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/simibol/planpoint/internal/app"
)

// FormatNotifications renders the open notifications, most pressing first
// as returned by the service.
func FormatNotifications(resp *app.NotificationsResponse) string {
	if len(resp.Items) == 0 {
		return Dim("No notifications. You're all caught up.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Notifications (%d)", len(resp.Items))))
	b.WriteString("\n")
	for _, n := range resp.Items {
		fmt.Fprintf(&b, "%s  %s\n", SeverityPill(n.Severity), Bold(n.Title))
		fmt.Fprintf(&b, "    %s\n", n.Message)
		fmt.Fprintf(&b, "    %s\n", Dim(fmt.Sprintf("%s · %s", n.ID, dueIn(n.DueAt, resp.GeneratedAt))))
	}
	return b.String()
}

func dueIn(due, now time.Time) string {
	d := due.Sub(now).Round(time.Minute)
	switch {
	case d < 0:
		return FormatMinutes(int(-d.Minutes())) + " ago"
	case d == 0:
		return "now"
	default:
		return "in " + FormatMinutes(int(d.Minutes()))
	}
}
