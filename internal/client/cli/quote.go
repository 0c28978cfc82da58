package cli

import (
	"context"
	"fmt"
)

// Quote prints the quote of the hour. It works signed out too.
func (a *App) Quote(ctx context.Context) error {
	q, ok := a.quotes.Get(ctx)
	if !ok {
		fmt.Fprintln(a.out, "No quote right now.")
		return nil
	}
	fmt.Fprintf(a.out, "\"%s\" - %s\n", q.Text, q.Author)
	return nil
}
