package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/client/services"
)

type fakeBackend struct {
	mu       sync.Mutex
	pingErr  error
	pings    int
	menu     []models.MenuItem
	menuErr  error
	searches []string
	closed   bool
}

func (f *fakeBackend) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeBackend) ListMenu(ctx context.Context, search string) ([]models.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, search)
	return f.menu, f.menuErr
}

func (f *fakeBackend) Close() error {
	f.closed = true
	return nil
}

type fakeSession struct {
	mu      sync.Mutex
	current services.Session
	dialog  services.AuthDialog

	loginErr    error
	registerErr error
	logoutErr   error
	hydrateErr  error

	lastCreds    models.Credentials
	lastRegister models.RegisterPayload
	logouts      int
	expireChecks int
	expireNow    bool
}

func (f *fakeSession) Hydrate(ctx context.Context) error { return f.hydrateErr }

func (f *fakeSession) Login(ctx context.Context, creds models.Credentials) error {
	f.lastCreds = creds
	if f.loginErr != nil {
		return f.loginErr
	}
	f.signIn(models.UserProfile{Email: creds.Email})
	return nil
}

func (f *fakeSession) Register(ctx context.Context, p models.RegisterPayload) error {
	f.lastRegister = p
	if f.registerErr != nil {
		return f.registerErr
	}
	f.signIn(models.UserProfile{Name: p.Name, Email: p.Email, Phone: p.Phone})
	return nil
}

func (f *fakeSession) signIn(u models.UserProfile) {
	f.mu.Lock()
	f.current = services.Session{User: &u, Token: "T1"}
	f.mu.Unlock()
	if f.dialog != nil {
		f.dialog.Close()
	}
}

func (f *fakeSession) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.current = services.Session{}
	return f.logoutErr
}

func (f *fakeSession) Current() services.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeSession) ExpireIfStale(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.expireChecks++
	if f.expireNow {
		f.current = services.Session{}
		return true, nil
	}
	return false, nil
}

type fakeCart struct {
	orderID  string
	view     services.CartView
	added    []models.AddItemRequest
	addErr   error
	refreshs int
	refErr   error
	calls    []string
}

func (f *fakeCart) Refresh(ctx context.Context) error {
	f.refreshs++
	f.calls = append(f.calls, "refresh")
	if f.refErr != nil {
		f.view.State, f.view.Err = services.CartFailed, f.refErr
	}
	return f.refErr
}

func (f *fakeCart) AddItem(ctx context.Context, req models.AddItemRequest) error {
	f.added = append(f.added, req)
	f.calls = append(f.calls, "add")
	if f.addErr != nil {
		return f.addErr
	}
	f.view = services.CartView{State: services.CartReady, Items: []models.CartLine{
		{ID: 1, MenuItemID: req.MenuItemID, Quantity: max(req.Quantity, 1), Name: req.Name},
	}}
	return nil
}

func (f *fakeCart) View() services.CartView { return f.view }
func (f *fakeCart) OrderID() string         { return f.orderID }

type fakeTables struct {
	snap    services.AvailabilitySnapshot
	queries []models.AvailabilityQuery
	result  func(q models.AvailabilityQuery) services.AvailabilitySnapshot
	reloads int
	waits   int
	closed  bool
}

func (f *fakeTables) Reload(ctx context.Context) {
	f.reloads++
	if f.result != nil {
		f.snap = f.result(f.snap.Query)
	}
}

func (f *fakeTables) SetQuery(ctx context.Context, q models.AvailabilityQuery) {
	f.queries = append(f.queries, q)
	if f.result != nil {
		f.snap = f.result(q)
	}
}
func (f *fakeTables) Snapshot() services.AvailabilitySnapshot { return f.snap }
func (f *fakeTables) Wait()                                  { f.waits++ }
func (f *fakeTables) Close()                                 { f.closed = true }

type fakeBooking struct {
	last *services.ReservationDraft
	ret  *models.Reservation
	err  error
}

func (f *fakeBooking) Book(ctx context.Context, d services.ReservationDraft) (*models.Reservation, error) {
	f.last = &d
	return f.ret, f.err
}
