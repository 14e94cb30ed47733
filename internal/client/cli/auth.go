package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// authPrompt tracks whether a login or registration prompt is waiting for a
// successful answer. The session store closes it on success.
type authPrompt struct {
	mu   sync.Mutex
	open bool
}

func (p *authPrompt) begin() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = true
}

func (p *authPrompt) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
}

func (p *authPrompt) isOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Register prompts for a name, email, optional phone and password and signs
// the new account in. Service failures are reported by notification and
// returned.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	a.prompt.begin()
	err = a.session.Register(ctx, models.RegisterPayload{
		Name: name, Email: email, Phone: phone, Password: string(password),
	})
	a.afterAuth(ctx, err)
	return err
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	a.prompt.begin()
	err = a.session.Login(ctx, models.Credentials{Email: email, Password: string(password)})
	a.afterAuth(ctx, err)
	return err
}

// afterAuth reloads the cart for the new identity, or hints at a retry when
// the prompt was left open.
func (a *App) afterAuth(ctx context.Context, err error) {
	if err == nil {
		a.loadCart(ctx)
	}
	if a.prompt.isOpen() {
		a.prompt.Close()
		printlnFn("Type 'login' or 'register' to try again.")
	}
}

// Logout ends the session locally. It works without a connection.
func (a *App) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	cur := a.session.Current()
	if !cur.Authenticated() || cur.User == nil {
		printlnFn("Not signed in.")
		return nil
	}
	u := cur.User
	printlnFn("Signed in as", u.DisplayName())
	if u.Email != "" && u.Email != u.DisplayName() {
		printlnFn("Email:", u.Email)
	}
	if !cur.ExpiresAt.IsZero() {
		printlnFn("Session expires:", cur.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
