package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/blogit/internal/client/guard"
	"github.com/dmitrijs2005/blogit/internal/client/models"
	"github.com/dmitrijs2005/blogit/internal/client/services"
)

// Feed prints the quote of the hour, if any, followed by one page of posts.
func (a *App) Feed(ctx context.Context, args []string) error {
	if !a.enter(guard.ViewFeed) {
		return nil
	}

	page := services.DefaultFeedPage
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("usage: feed [page]")
		}
		page = n
	}

	if q, ok := a.quotes.Get(ctx); ok {
		fmt.Fprintf(a.out, "\"%s\" - %s\n\n", q.Text, q.Author)
	}

	posts, err := a.posts.Feed(ctx, page, services.DefaultFeedLimit)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet.")
		return nil
	}
	printPosts(a, posts)
	return nil
}

// CreatePost prompts for a title and a multi-line body.
func (a *App) CreatePost(ctx context.Context) error {
	if !a.enter(guard.ViewCreatePost) {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	p, err := a.posts.Create(ctx, title, content)
	if err != nil {
		return err
	}
	if p == nil {
		fmt.Fprintln(a.out, "Post published.")
		return nil
	}
	fmt.Fprintf(a.out, "Post %s published.\n", p.ID)
	return nil
}

func (a *App) DeletePost(ctx context.Context, args []string) error {
	if !a.enter(guard.ViewFeed) {
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: delete <id>")
	}
	if err := a.posts.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}

func printPosts(a *App, posts []models.Post) {
	for _, p := range posts {
		fmt.Fprintf(a.out, "[%s] %s by %s", p.ID, p.Title, p.Author.Username)
		if !p.CreatedAt.IsZero() {
			fmt.Fprintf(a.out, " (%s)", p.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(a.out)
		fmt.Fprintf(a.out, "    %s\n", p.Content)
	}
}
