package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/blogit/internal/client/guard"
)

func (a *App) Notifications(ctx context.Context) error {
	if !a.enter(guard.ViewFeed) {
		return nil
	}
	list := a.poller.Snapshot()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No new followers.")
		return nil
	}
	for i, n := range list {
		fmt.Fprintf(a.out, "%d. %s started following you\n", i+1, n.Username)
	}
	return nil
}

// Open acknowledges the n-th notification, clearing the list, and shows the
// follower's profile.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: open <n>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("usage: open <n>")
	}
	if !a.enter(guard.ViewFeed) {
		return nil
	}

	list := a.poller.Snapshot()
	if i < 1 || i > len(list) {
		return fmt.Errorf("no notification %d", i)
	}
	n, ok := a.poller.Acknowledge(list[i-1].SubjectUserID)
	if !ok {
		return fmt.Errorf("notification %d is gone", i)
	}
	return a.showProfile(ctx, n.Username)
}
