package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/simibol/planpoint/internal/app"
)

// resolveID matches arg against ids: an exact match wins, otherwise a
// unique prefix, since tables print truncated ids.
func resolveID(kind, arg string, ids []string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == arg {
			return id, nil
		}
		if strings.HasPrefix(id, arg) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, arg)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%q matches %d %ss; use more characters", arg, len(matches), kind)
}

func resolveSessionID(ctx context.Context, a *App, arg string) (string, error) {
	sessions, err := a.Sessions.List(ctx, app.SessionListRequest{})
	if err != nil {
		return "", err
	}
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return resolveID("session", arg, ids)
}

func resolveMilestoneID(ctx context.Context, a *App, arg string) (string, error) {
	milestones, err := a.Milestones.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(milestones))
	for i, m := range milestones {
		ids[i] = m.ID
	}
	return resolveID("milestone", arg, ids)
}
