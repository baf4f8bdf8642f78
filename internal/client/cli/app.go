package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/examprep-admin/internal/client/cache"
	"github.com/dmitrijs2005/examprep-admin/internal/client/client"
	"github.com/dmitrijs2005/examprep-admin/internal/client/config"
	"github.com/dmitrijs2005/examprep-admin/internal/client/models"
	"github.com/dmitrijs2005/examprep-admin/internal/client/services"
	"github.com/dmitrijs2005/examprep-admin/internal/common"
	"github.com/dmitrijs2005/examprep-admin/internal/filex"
	"github.com/dmitrijs2005/examprep-admin/internal/logging"
)

type App struct {
	config  *config.Config
	auth    services.AuthService
	catalog *services.Catalog
	router  *Router
	log     logging.Logger
	db      *sql.DB

	admin  *models.Admin
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and wires the HTTP client, the query cache
// and the services behind the console.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	router := NewRouter(func(msg string) { printlnFn(msg) })
	store := client.NewMetadataSessionStore(db)

	api, err := client.NewHTTPClient(c.ServerURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithNavigator(router),
		client.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	qc := cache.New(c.CacheTTL)
	app := newApp(c, services.NewAuthService(api, store, qc, log), services.NewCatalog(api, qc), router, log,
		bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c *config.Config, auth services.AuthService, catalog *services.Catalog, router *Router,
	log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop{}
	}
	return &App{config: c, auth: auth, catalog: catalog, router: router, log: log, reader: reader, out: out}
}

// Run restores a remembered session, then serves commands until the user
// exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Welcome to the exam-prep admin console (type 'help' for commands)")
	a.restore(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) restore(ctx context.Context) {
	admin, err := a.auth.RestoreSession(ctx)
	switch {
	case err == nil:
		a.admin = admin
		a.router.Go(common.DashboardLocation)
		printlnFn("Welcome back,", admin.Email)
	case errors.Is(err, services.ErrNotLoggedIn):
		a.router.Go(common.LoginLocation)
	case errors.Is(err, client.ErrSessionExpired):
		// The console starts on the login screen, so the redirect was silent.
		a.log.Info(ctx, "remembered session expired", "err", err)
		printlnFn("Your previous session has expired. Please log in again.")
	default:
		a.log.Warn(ctx, "session restore failed", "err", err)
		if email := a.auth.RememberedEmail(ctx); email != "" {
			printlnFn("Could not restore the session of", email+":", err)
		} else {
			printlnFn("Could not restore the previous session:", err)
		}
		a.router.Go(common.LoginLocation)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok := a.auth.IsAuthenticated(ctx)
	if !ok {
		a.admin = nil
		if a.router.Location() != common.LoginLocation {
			a.router.Go(common.LoginLocation)
		}
	}
	return ok
}

func (a *App) getStatus() string {
	s := a.router.Location()
	if a.admin != nil && a.admin.Email != "" {
		s = a.admin.Email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}
