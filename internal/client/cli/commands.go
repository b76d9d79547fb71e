package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// getPassword is swapped in tests to avoid touching the terminal.
var getPassword = GetPassword

// describe turns client errors into short user-facing messages.
func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrBadCredentials):
		return "Invalid username or password"
	case errors.Is(err, client.ErrUnauthenticated):
		return "Not logged in or session expired, please login again"
	case errors.Is(err, client.ErrForbidden):
		return "Permission denied"
	case errors.Is(err, client.ErrAlreadyExists):
		return "Already exists"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable"
	default:
		return err.Error()
	}
}

func (a *App) report(err error) error {
	printlnFn("Error:", describe(err))
	return err
}

func usage(text string) error {
	printlnFn("Usage:", text)
	return common.ErrorValidation
}

func (a *App) Ping(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		return a.report(err)
	}
	printlnFn("OK")
	return nil
}

// Signup registers a new account with access to the listed apps.
// Apps may be separated by commas or spaces.
func (a *App) Signup(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("signup <username> <app>[,<app>...]")
	}
	username, apps := args[0], splitApps(args[1:])
	if len(apps) == 0 {
		return usage("signup <username> <app>[,<app>...]")
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Signup(ctx, username, string(password), apps)
	if err != nil {
		return a.report(err)
	}
	printlnFn("Signed up", u.Username, "with apps:", strings.Join(u.Apps, ", "))
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("login <username>")
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	exp, err := a.client.Login(ctx, args[0], string(password))
	if err != nil {
		return a.report(err)
	}
	a.userName = args[0]
	a.expiresAt = exp
	printlnFn("Logged in, session valid until", exp.Local().Format(time.RFC1123))
	return nil
}

func (a *App) UpdatePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.report(client.ErrUnauthenticated)
	}

	oldPassword, err := getPassword(a.out, "Enter current password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(newPassword)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.UpdatePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		return a.report(err)
	}
	printlnFn("Password updated")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Me(ctx)
	if err != nil {
		return a.report(err)
	}
	role := u.Role
	if role == "" {
		role = "user"
	}
	printlnFn("User:", u.Username)
	printlnFn("Role:", role)
	printlnFn("Apps:", strings.Join(u.Apps, ", "))
	if !a.expiresAt.IsZero() {
		printlnFn("Session expires:", a.expiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) AddApp(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("addapp <name>")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	app, err := a.client.CreateApp(ctx, args[0])
	if err != nil {
		return a.report(err)
	}
	printlnFn(fmt.Sprintf("Created app %s (id %d)", app.Name, app.ID))
	return nil
}

func (a *App) DeleteApp(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delapp <name>")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.DeleteApp(ctx, args[0]); err != nil {
		return a.report(err)
	}
	printlnFn("Deleted app", args[0])
	return nil
}

// Logout drops the local session. Issued tokens stay valid until expiry.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	a.expiresAt = time.Time{}
	printlnFn("Logged out")
	return nil
}
