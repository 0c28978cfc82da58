package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogit/internal/client/follow"
	"github.com/dmitrijs2005/blogit/internal/client/guard"
	"github.com/dmitrijs2005/blogit/internal/client/models"
)

var errNoProfile = errors.New("no profile displayed, use: profile <username>")

func (a *App) Users(ctx context.Context) error {
	if !a.enter(guard.ViewUsers) {
		return nil
	}
	users, err := a.users.All(ctx)
	if err != nil {
		return err
	}
	printUsers(a, users)
	return nil
}

func (a *App) Followers(ctx context.Context) error {
	if !a.enter(guard.ViewUsers) {
		return nil
	}
	users, err := a.users.Followers(ctx)
	if err != nil {
		return err
	}
	printUsers(a, users)
	return nil
}

func (a *App) Following(ctx context.Context) error {
	if !a.enter(guard.ViewUsers) {
		return nil
	}
	users, err := a.users.Following(ctx)
	if err != nil {
		return err
	}
	printUsers(a, users)
	return nil
}

// Profile loads and displays a user's profile. The displayed profile is the
// target of the follow command.
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: profile <username>")
	}
	return a.showProfile(ctx, args[0])
}

func (a *App) showProfile(ctx context.Context, username string) error {
	if !a.enter(guard.ViewProfile) {
		return nil
	}
	p, err := a.users.Profile(ctx, username)
	if err != nil {
		return err
	}

	a.leaveProfile()
	a.follows.Show(p.User)
	a.mu.Lock()
	a.profile = p
	a.mu.Unlock()

	st, _ := a.follows.Displayed(p.User.ID)
	a.printProfile(st, p.Posts)
	return nil
}

// ToggleFollow follows or unfollows the displayed profile.
func (a *App) ToggleFollow(ctx context.Context) error {
	if !a.enter(guard.ViewProfile) {
		return nil
	}
	a.mu.Lock()
	p := a.profile
	a.mu.Unlock()
	if p == nil {
		return errNoProfile
	}

	st, ok := a.follows.Displayed(p.User.ID)
	if !ok {
		return errNoProfile
	}
	if a.follows.InFlight(p.User.ID) {
		return follow.ErrToggleInFlight
	}

	updated, err := a.follows.Toggle(ctx, st.User, a.session.CurrentUser())
	var ferr *follow.FollowError
	if errors.As(err, &ferr) {
		if st, ok := a.follows.Displayed(p.User.ID); ok {
			a.printProfile(st, nil)
			return nil
		}
	}
	if err != nil {
		return err
	}
	me := a.session.CurrentUser()
	if me != nil && follow.IsFollowing(updated, me.ID) {
		fmt.Fprintf(a.out, "You now follow %s (%d followers).\n", updated.Username, len(updated.Followers))
	} else {
		fmt.Fprintf(a.out, "You unfollowed %s (%d followers).\n", updated.Username, len(updated.Followers))
	}
	return nil
}

func (a *App) leaveProfile() {
	a.mu.Lock()
	p := a.profile
	a.profile = nil
	a.mu.Unlock()
	if p != nil {
		a.follows.Hide(p.User.ID)
	}
}

func (a *App) printProfile(st follow.ProfileState, posts []models.Post) {
	u := st.User
	fmt.Fprintf(a.out, "%s <%s>\n", u.Username, u.Email)
	fmt.Fprintf(a.out, "Followers: %d  Following: %d\n", len(u.Followers), len(u.Following))

	switch {
	case st.Phase == follow.PhasePending:
		fmt.Fprintln(a.out, "Follow request pending...")
	case st.Err != nil:
		fmt.Fprintf(a.out, "Follow request failed: %v\n", st.Err)
	}

	if me := a.session.CurrentUser(); me != nil && me.ID != u.ID {
		if follow.IsFollowing(u, me.ID) {
			fmt.Fprintln(a.out, "You follow this user (type 'follow' to unfollow).")
		} else {
			fmt.Fprintln(a.out, "Type 'follow' to follow this user.")
		}
	}
	if len(posts) > 0 {
		fmt.Fprintln(a.out)
		printPosts(a, posts)
	}
}

func printUsers(a *App, users []models.UserSummary) {
	if len(users) == 0 {
		fmt.Fprintln(a.out, "Nobody here yet.")
		return
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%s (%d followers)\n", u.Username, len(u.Followers))
	}
}
