package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/client/config"
)

type App struct {
	config    *config.Config
	client    client.Client
	userName  string
	expiresAt time.Time
	in        io.Reader
	out       io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	cl, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return &App{config: c, client: cl, in: os.Stdin, out: os.Stdout}, nil
}

// Run blocks in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.client.Close()

	printlnFn("Welcome to UserKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.in))
	return nil
}

// withTimeout bounds a single request by the configured timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

// getStatus renders the prompt suffix. The session may have been dropped by
// the client after an auth failure, so the local user name is reset then.
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		a.userName = ""
		return ""
	}
	if a.userName == "" {
		return ""
	}
	return " (" + a.userName + ")"
}
