package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdiner/internal/client/client"
	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/client/notify"
	"github.com/dmitrijs2005/gophdiner/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophdiner/internal/common"
	"github.com/dmitrijs2005/gophdiner/internal/dbx"
	"github.com/dmitrijs2005/gophdiner/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Session is a snapshot of the authenticated identity. User and Token are
// either both set or both empty; Loading is true only until Hydrate returns.
type Session struct {
	User      *models.UserProfile
	Token     string
	ExpiresAt time.Time
	Loading   bool
}

// Authenticated reports whether the session carries a credential.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// AuthDialog is whatever UI collected the credentials. It is closed after a
// successful login or registration.
type AuthDialog interface {
	Close()
}

type SessionOption func(*SessionStore)

// WithAuthDialog registers the dialog to close on successful sign-in.
func WithAuthDialog(d AuthDialog) SessionOption {
	return func(s *SessionStore) { s.dialog = d }
}

// WithClock overrides time.Now, used for token expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}

// SessionStore owns the authenticated identity and is the only writer of the
// gateway's Authorization header.
type SessionStore struct {
	auth     AuthClient
	tokens   client.TokenHolder
	db       *sql.DB
	notifier notify.Notifier
	log      logging.Logger
	dialog   AuthDialog
	now      func() time.Time

	// op serializes transitions so that a clear never lands on top of a
	// session established after the clear was decided.
	op      sync.Mutex
	mu      sync.RWMutex
	session Session
}

// sessionBundle is the persisted form of a session, stored as JSON under
// common.SessionBundleKey.
type sessionBundle struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

func NewSessionStore(auth AuthClient, tokens client.TokenHolder, db *sql.DB, notifier notify.Notifier,
	logger logging.Logger, opts ...SessionOption) *SessionStore {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	s := &SessionStore{
		auth:     auth,
		tokens:   tokens,
		db:       db,
		notifier: notifier,
		log:      logger.With("component", "session"),
		now:      time.Now,
		session:  Session{Loading: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Current returns a copy of the session.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Hydrate restores the persisted session without touching the network. The
// bundle key is preferred; a legacy token/user pair is accepted and rewritten
// as a bundle. Unreadable, incomplete or expired data is removed and the
// session starts empty. The session is ready when Hydrate returns, whatever
// the outcome.
func (s *SessionStore) Hydrate(ctx context.Context) error {
	now := s.now()
	repo := s.getMetadataRepo()

	s.op.Lock()
	defer s.op.Unlock()

	b, legacy, err := readPersisted(ctx, repo)
	var expiresAt time.Time
	if err == nil && b != nil {
		expiresAt, err = b.check(now)
	}

	switch {
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		s.log.Warn(ctx, "discarding persisted session", "error", err)
		s.setEmpty()
		if derr := repo.Delete(ctx, sessionKeys...); derr != nil {
			return fmt.Errorf("failed to clear persisted session: %w", derr)
		}
		return nil
	case err != nil:
		s.log.Error(ctx, "failed to read persisted session", "error", err)
		s.setEmpty()
		return err
	case b == nil:
		s.setEmpty()
		return nil
	}

	if legacy {
		if err := s.saveBundleOnly(ctx, b); err != nil {
			s.log.Warn(ctx, "failed to migrate legacy session", "error", err)
		} else {
			s.log.Info(ctx, "migrated legacy session to bundle")
		}
	}

	s.setAuthenticated(b, expiresAt)
	s.log.Debug(ctx, "session restored", "user", b.User.DisplayName())
	return nil
}

// Login signs in against the auth service. Failures are both notified and
// returned; the session is unchanged unless Login returns nil.
func (s *SessionStore) Login(ctx context.Context, creds models.Credentials) error {
	res, err := s.auth.Login(ctx, strings.TrimSpace(creds.Email), creds.Password)
	if err != nil {
		s.notifier.Error("Login failed", err.Error())
		return err
	}
	return s.establish(ctx, res, "Signed in")
}

// Register creates an account and treats the response as a signed-in session.
func (s *SessionStore) Register(ctx context.Context, payload models.RegisterPayload) error {
	payload.Email = strings.TrimSpace(payload.Email)
	res, err := s.auth.Register(ctx, payload)
	if err != nil {
		s.notifier.Error("Registration failed", err.Error())
		return err
	}
	return s.establish(ctx, res, "Account created")
}

func (s *SessionStore) establish(ctx context.Context, res *models.AuthResult, title string) error {
	if res == nil || strings.TrimSpace(res.Token) == "" {
		err := fmt.Errorf("%w: auth response carried no token", common.ErrInvalidToken)
		s.notifier.Error(title+" failed", err.Error())
		return err
	}

	user := res.User
	b := &sessionBundle{Token: res.Token, User: &user}

	s.op.Lock()
	if err := s.persist(ctx, b); err != nil {
		s.op.Unlock()
		s.log.Error(ctx, "failed to persist session", "error", err)
		s.notifier.Error("Could not save session", err.Error())
		return err
	}
	s.setAuthenticated(b, tokenExpiry(b.Token))
	s.op.Unlock()

	if s.dialog != nil {
		s.dialog.Close()
	}

	s.log.Info(ctx, "signed in", "user_id", user.ID)
	s.notifier.Success(title, "Welcome, "+user.DisplayName())
	return nil
}

// Logout ends the session locally; no request is made. Memory and the
// Authorization header are always cleared, even if storage cannot be.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.op.Lock()
	err := s.clearLocked(ctx)
	s.op.Unlock()
	s.notifier.Info("Signed out", "")
	return err
}

// ExpireIfStale signs the user out once the credential's expiry has passed.
// Opaque tokens never expire here. It reports whether the session was ended.
// Only the token that was found expired is cleared: a sign-in that completes
// while the check runs is kept.
func (s *SessionStore) ExpireIfStale(ctx context.Context) (bool, error) {
	s.mu.RLock()
	token := s.session.Token
	exp := s.session.ExpiresAt
	s.mu.RUnlock()

	if token == "" || exp.IsZero() || s.now().Before(exp) {
		return false, nil
	}

	s.op.Lock()
	s.mu.RLock()
	current := s.session.Token
	s.mu.RUnlock()
	if current != token {
		s.op.Unlock()
		s.log.Debug(ctx, "session replaced during expiry check")
		return false, nil
	}

	s.log.Info(ctx, "session expired", "expires_at", exp)
	err := s.clearLocked(ctx)
	s.op.Unlock()
	s.notifier.Info("Session expired", "Please sign in again")
	return true, err
}

// clearLocked empties the session and its storage. op must be held.
func (s *SessionStore) clearLocked(ctx context.Context) error {
	s.setEmpty()
	if err := s.getMetadataRepo().Delete(ctx, sessionKeys...); err != nil {
		s.log.Error(ctx, "failed to clear persisted session", "error", err)
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

func (s *SessionStore) setEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.tokens.ClearToken()
}

func (s *SessionStore) setAuthenticated(b *sessionBundle, expiresAt time.Time) {
	u := *b.User

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{User: &u, Token: b.Token, ExpiresAt: expiresAt}
	s.tokens.SetToken(b.Token)
}

var sessionKeys = []string{common.SessionBundleKey, common.LegacyTokenKey, common.LegacyUserKey}

// persist writes the bundle and the legacy pair in one transaction.
func (s *SessionStore) persist(ctx context.Context, b *sessionBundle) error {
	bundle, err := json.Marshal(b)
	if err != nil {
		return err
	}
	user, err := json.Marshal(b.User)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionBundleKey, string(bundle)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.LegacyTokenKey, b.Token); err != nil {
			return err
		}
		return repo.Set(ctx, common.LegacyUserKey, string(user))
	})
}

func (s *SessionStore) saveBundleOnly(ctx context.Context, b *sessionBundle) error {
	bundle, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.getMetadataRepo().Set(ctx, common.SessionBundleKey, string(bundle))
}

// readPersisted returns the stored session, nil if there is none. legacy is
// true when it came from the standalone token/user keys, which also stand in
// for an unreadable or incomplete bundle. Decoding problems are reported as
// common.ErrInvalidToken.
func readPersisted(ctx context.Context, repo metadata.Repository) (b *sessionBundle, legacy bool, err error) {
	raw, ok, err := repo.Get(ctx, common.SessionBundleKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return readLegacy(ctx, repo)
	}

	var decoded sessionBundle
	bundleErr := json.Unmarshal([]byte(raw), &decoded)
	if bundleErr == nil && decoded.complete() {
		return &decoded, false, nil
	}
	if bundleErr != nil {
		bundleErr = fmt.Errorf("%w: session bundle: %v", common.ErrInvalidToken, bundleErr)
	} else {
		bundleErr = fmt.Errorf("%w: session bundle is incomplete", common.ErrInvalidToken)
	}

	fallback, _, err := readLegacy(ctx, repo)
	if err != nil && !errors.Is(err, common.ErrInvalidToken) {
		return nil, false, err
	}
	if fallback == nil || !fallback.complete() {
		return nil, false, bundleErr
	}
	return fallback, true, nil
}

func readLegacy(ctx context.Context, repo metadata.Repository) (*sessionBundle, bool, error) {
	token, hasToken, err := repo.Get(ctx, common.LegacyTokenKey)
	if err != nil {
		return nil, false, err
	}
	rawUser, hasUser, err := repo.Get(ctx, common.LegacyUserKey)
	if err != nil {
		return nil, false, err
	}

	switch {
	case !hasToken && !hasUser:
		return nil, false, nil
	case hasToken != hasUser:
		return nil, true, fmt.Errorf("%w: legacy session is incomplete", common.ErrInvalidToken)
	}

	var user models.UserProfile
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, true, fmt.Errorf("%w: legacy user: %v", common.ErrInvalidToken, err)
	}
	return &sessionBundle{Token: token, User: &user}, true, nil
}

func (b *sessionBundle) complete() bool {
	return strings.TrimSpace(b.Token) != "" && b.User != nil
}

// check validates a decoded bundle and returns the credential's expiry.
func (b *sessionBundle) check(now time.Time) (time.Time, error) {
	if !b.complete() {
		return time.Time{}, fmt.Errorf("%w: token and user must both be present", common.ErrInvalidToken)
	}
	exp := tokenExpiry(b.Token)
	if !exp.IsZero() && !now.Before(exp) {
		return exp, common.ErrTokenExpired
	}
	return exp, nil
}

// tokenExpiry reads the exp claim of a JWT without verifying it. The client
// cannot verify the signature; the claim only decides when to stop sending
// the token. Non-JWT tokens report the zero time.
func tokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
