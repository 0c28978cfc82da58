package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Feed(ctx context.Context, args []string) error
	CreatePost(ctx context.Context) error
	DeletePost(ctx context.Context, args []string) error
	Users(ctx context.Context) error
	Profile(ctx context.Context, args []string) error
	ToggleFollow(ctx context.Context) error
	Followers(ctx context.Context) error
	Following(ctx context.Context) error
	Notifications(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Quote(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the BlogIT CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit". Commands read their own prompts from the same reader.
//
//	Not logged in:
//	  - help                : show available commands
//	  - register            : create an account
//	  - login               : authenticate
//	  - exit | quit         : leave the program
//
//	Logged in:
//	  - feed [page]         : list posts
//	  - post                : write a post
//	  - delete <id>         : delete one of your posts
//	  - users               : list all users
//	  - profile <username>  : show a profile and its posts
//	  - follow              : follow or unfollow the displayed profile
//	  - followers/following : list your relationships
//	  - notifications       : list new followers
//	  - open <n>            : acknowledge notification n and show that profile
//	  - quote               : show the quote of the hour
//	  - logout              : log out
//
// Errors returned by command handlers are printed; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("blogit %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed [page], post, delete <id>, users, profile <username>, follow, followers, following, notifications, open <n>, quote, logout, exit")
			} else {
				printlnFn("Available commands: register, login, quote, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "feed":
			cmdErr = a.Feed(ctx, args)
		case "post":
			cmdErr = a.CreatePost(ctx)
		case "delete":
			cmdErr = a.DeletePost(ctx, args)
		case "users":
			cmdErr = a.Users(ctx)
		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "follow":
			cmdErr = a.ToggleFollow(ctx)
		case "followers":
			cmdErr = a.Followers(ctx)
		case "following":
			cmdErr = a.Following(ctx)
		case "notifications", "n":
			cmdErr = a.Notifications(ctx)
		case "open":
			cmdErr = a.Open(ctx, args)
		case "quote":
			cmdErr = a.Quote(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
