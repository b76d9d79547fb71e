package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Ping(ctx context.Context) error
	Signup(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	UpdatePassword(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	AddApp(ctx context.Context, args []string) error
	DeleteApp(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: ping, signup <username> <app>[,<app>...], login <username>, exit"
	helpLoggedIn  = "Available commands: ping, whoami, passwd, addapp <name>, delapp <name>, logout, exit"
)

// runREPL reads commands from scanner until EOF or "exit"/"quit".
//
// Handler errors are reported by the handlers themselves, so the loop only
// deals with parsing and dispatch.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("uk%s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "ping":
			_ = a.Ping(ctx)

		case "signup":
			_ = a.Signup(ctx, args)

		case "login":
			_ = a.Login(ctx, args)

		case "passwd":
			_ = a.UpdatePassword(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "addapp":
			_ = a.AddApp(ctx, args)

		case "delapp":
			_ = a.DeleteApp(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
