package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdiner/internal/client/client"
	"github.com/dmitrijs2005/gophdiner/internal/client/config"
	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/client/notify"
	"github.com/dmitrijs2005/gophdiner/internal/client/services"
	"github.com/dmitrijs2005/gophdiner/internal/filex"
	"github.com/dmitrijs2005/gophdiner/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// The App talks to its services through these narrow views so tests can
// replace any of them.
type (
	backendAPI interface {
		Ping(ctx context.Context) error
		ListMenu(ctx context.Context, search string) ([]models.MenuItem, error)
		Close() error
	}

	sessionAPI interface {
		Hydrate(ctx context.Context) error
		Login(ctx context.Context, creds models.Credentials) error
		Register(ctx context.Context, payload models.RegisterPayload) error
		Logout(ctx context.Context) error
		Current() services.Session
		ExpireIfStale(ctx context.Context) (bool, error)
	}

	cartAPI interface {
		Refresh(ctx context.Context) error
		AddItem(ctx context.Context, req models.AddItemRequest) error
		View() services.CartView
		OrderID() string
	}

	availabilityAPI interface {
		SetQuery(ctx context.Context, q models.AvailabilityQuery)
		Reload(ctx context.Context)
		Snapshot() services.AvailabilitySnapshot
		Wait()
		Close()
	}

	bookingAPI interface {
		Book(ctx context.Context, draft services.ReservationDraft) (*models.Reservation, error)
	}
)

const notificationBuffer = 32

type App struct {
	config *config.Config
	log    logging.Logger

	db        *sql.DB
	backend   backendAPI
	session   sessionAPI
	cart      cartAPI
	tables    availabilityAPI
	booking   bookingAPI
	selection *services.TableSelection
	sink      *notify.ChannelSink
	prompt    *authPrompt

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	Mode Mode
	menu map[int64]models.MenuItem
}

// NewApp opens the local store, builds the HTTP gateway and wires the
// services around it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dsn, err := filex.EnsureParentDir(c.StoragePath)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, dsn)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.StoragePath, "error", err)
		return nil, err
	}

	gateway, err := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sink := notify.NewChannelSink(notificationBuffer, logger)
	a := &App{
		config:    c,
		log:       logger,
		db:        db,
		backend:   gateway,
		selection: &services.TableSelection{},
		sink:      sink,
		prompt:    &authPrompt{},
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		menu:      make(map[int64]models.MenuItem),
	}

	a.session = services.NewSessionStore(gateway, gateway, db, sink, logger, services.WithAuthDialog(a.prompt))
	a.cart = services.NewCartService(gateway, c.OrderID, sink, logger)
	a.tables = services.NewAvailabilityResolver(gateway, logger, a.onTables)
	a.booking = services.NewReservationService(gateway, sink, logger)

	return a, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().Authenticated()
}

// Hydrate restores the saved session before the REPL starts. A failure is
// logged and the app continues signed out.
func (a *App) Hydrate(ctx context.Context) {
	if err := a.session.Hydrate(ctx); err != nil {
		a.log.Warn(ctx, "could not restore session", "error", err)
	}
}

// Run restores the session, starts the background workers and blocks in the
// REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer a.close()
	defer cancel()

	a.Hydrate(ctx)
	a.loadCart(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		a.PrintNotifications(ctx)
	}()
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	printlnFn("Welcome to the storefront CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))

	cancel()
	wg.Wait()
}

// loadCart reads the server cart so that the first "add" merges into lines
// already stored there. Failures are notified by the cart service.
func (a *App) loadCart(ctx context.Context) {
	if err := a.cart.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "could not load cart", "error", err)
	}
}

func (a *App) close() {
	if a.tables != nil {
		a.tables.Close()
	}
	if a.sink != nil {
		a.sink.Close()
	}
	if err := a.backend.Close(); err != nil {
		a.log.Warn(context.Background(), "closing gateway", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) getStatus() string {
	s := ""
	if cur := a.session.Current(); cur.Authenticated() && cur.User != nil {
		s = cur.User.DisplayName() + " "
	}
	if m := a.mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// PrintNotifications writes queued notifications until the sink is closed or
// ctx is done.
func (a *App) PrintNotifications(ctx context.Context) {
	if a.sink == nil {
		return
	}
	for {
		select {
		case n, ok := <-a.sink.Notifications():
			if !ok {
				return
			}
			printlnFn(formatNotification(n))
		case <-ctx.Done():
			return
		}
	}
}

func formatNotification(n notify.Notification) string {
	var tag string
	switch n.Severity {
	case notify.SeveritySuccess:
		tag = "[ok]"
	case notify.SeverityError:
		tag = "[error]"
	default:
		tag = "[info]"
	}
	if n.Description == "" {
		return fmt.Sprintf("%s %s", tag, n.Title)
	}
	return fmt.Sprintf("%s %s: %s", tag, n.Title, n.Description)
}

// StartOnlineStatusWatcher pings the backend every interval, tracks the
// online/offline mode and ends the session once its token has expired.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkStatus(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkStatus(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.backend.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
	} else {
		a.setMode(ctx, ModeOnline)
	}

	if _, err := a.session.ExpireIfStale(ctx); err != nil {
		a.log.Warn(ctx, "expiring session", "error", err)
	}
}
