package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/postguard/internal/client/client"
	"github.com/dmitrijs2005/postguard/internal/client/config"
	"github.com/jonboulle/clockwork"
)

type App struct {
	config *config.Config
	client client.Client
	clock  clockwork.Clock
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewPostGuardClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: apiClient,
		clock:  clockwork.NewRealClock(),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

// Run drives the REPL until exit or EOF. A session still open at that point
// is closed so its state reaches the server's store.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Welcome to PostGuard CLI (type 'help' for commands)")

	if err := a.client.Ping(ctx); err != nil {
		fmt.Fprintln(a.out, describeError(err))
	}

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.isLoggedIn() {
		_ = a.Logout(context.WithoutCancel(ctx))
	}
}

// fail prints the user-facing text for err and returns it. A session the
// client dropped is reflected in the prompt.
func (a *App) fail(err error) error {
	if !a.isLoggedIn() {
		a.email = ""
	}
	fmt.Fprintln(a.out, describeError(err))
	return err
}
