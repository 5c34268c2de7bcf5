package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
)

type App struct {
	config  *config.Config
	api     client.Client
	session sessionStore
	token   string
	user    string
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	a := &App{
		config:  c,
		api:     client.NewHTTPClient(c.ServerURL, c.RequestTimeout),
		session: sessionStore{dir: c.SessionDir},
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	token, err := a.session.Load()
	if err != nil {
		return nil, err
	}
	a.token = token

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "authkeeper CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %s is not reachable: %v\n", a.config.ServerURL, err)
	}
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Restored saved session; run 'dashboard' to check it.")
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) status() string {
	switch {
	case a.user != "":
		return a.user
	case a.isLoggedIn():
		return "(session)"
	default:
		return "(anonymous)"
	}
}
