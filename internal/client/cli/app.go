package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/config"
	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
	"github.com/dmitrijs2005/nehruadmin/internal/client/repositories/session"
	"github.com/dmitrijs2005/nehruadmin/internal/client/services"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

// App is the admin console: one ResourceService per module, a session and
// a notification queue drained after every command.
type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	session services.SessionService
	catalog models.Catalog
	modules map[string]*services.ResourceService
	current string
	queue   *notify.Queue
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session database and connects the modules to the
// backend at c.ServerBaseURL.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := session.Open(ctx, c.SessionDB)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	a := &App{config: c, db: db}
	api := client.NewHTTPClient(c.ServerBaseURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithHeaders(c.Headers),
		client.WithLogger(logger),
		client.WithTokenProvider(func(ctx context.Context) (string, error) {
			return a.session.Token(ctx)
		}),
	)
	sess := services.NewSessionService(api, db)
	catalog := models.DefaultCatalog().WithPaths(c.Resources)

	a.init(api, sess, catalog, logger, bufio.NewReader(os.Stdin), os.Stdout)
	return a, nil
}

func (a *App) init(c client.Client, sess services.SessionService, catalog models.Catalog, logger logging.Logger, r *bufio.Reader, w io.Writer) {
	a.logger = logger
	a.session = sess
	a.catalog = catalog
	a.queue = notify.NewQueue(0)
	a.reader = r
	a.out = w
	a.modules = make(map[string]*services.ResourceService, len(catalog))
	for _, name := range catalog.Names() {
		res, _ := catalog.Lookup(name)
		a.modules[name] = services.NewResourceService(res, c, a.queue, logger)
	}
}

// Run starts the REPL and blocks until the user leaves it.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	printlnFn("Nehru admin console (type 'help' for commands)")
	if !a.isLoggedIn(ctx) {
		_ = a.Login(ctx)
		a.flush()
	}
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

// Close detaches every module and closes the session database.
func (a *App) Close() {
	for _, m := range a.modules {
		m.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	s, err := a.session.Current(ctx)
	return err == nil && s != nil
}

func (a *App) status(ctx context.Context) string {
	s := ""
	if cur, err := a.session.Current(ctx); err == nil {
		s = cur.Email
	}
	if a.current != "" {
		if s != "" {
			s += " "
		}
		s += a.current
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// flush prints and clears the queued notifications.
func (a *App) flush() {
	for _, n := range a.queue.Drain() {
		line := fmt.Sprintf("[%s] %s", n.Level, n.Message)
		if n.Link != "" {
			line += " " + n.Link
		}
		fmt.Fprintln(a.out, line)
	}
}

// module returns the selected module or tells the user to pick one.
func (a *App) module() (*services.ResourceService, bool) {
	m, ok := a.modules[a.current]
	if !ok {
		fmt.Fprintln(a.out, "No module selected, use: use <module>")
		return nil, false
	}
	return m, true
}
