package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogit/internal/client/guard"
	"github.com/dmitrijs2005/blogit/internal/client/session"
	"github.com/dmitrijs2005/blogit/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and creates the
// account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	a.setView(guard.ViewRegister)

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, userName, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can log in now.")
	a.setView(guard.ViewLogin)
	return nil
}

// Login prompts for credentials and signs in. A failed attempt leaves the
// previous session as it was.
func (a *App) Login(ctx context.Context) error {
	if a.session.IsAuthenticated() {
		return session.ErrAlreadyAuthenticated
	}
	a.setView(guard.ViewLogin)

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.session.Login(ctx, userName, string(password))
	if err != nil {
		var ae *session.AuthError
		if errors.As(err, &ae) {
			a.log.Info(ctx, "login unsuccessful", "user", userName)
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", s.User.Username)
	a.setView(guard.ViewFeed)
	return nil
}

// Logout ends the session. Polling stops through the session subscription.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.setView(guard.ViewLogin)
	fmt.Fprintln(a.out, "Logged out.")
	return err
}
