package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophdiner/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubInputs answers text prompts in order and returns password for the
// password prompt.
func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestLogin_Success(t *testing.T) {
	out := capturePrint(t)
	ta := newTestApp(t, "")
	pw := []byte("secret")
	stubInputs(t, []string{"a@b.com"}, pw)

	require.NoError(t, ta.Login(context.Background()))

	assert.Equal(t, "a@b.com", ta.session.lastCreds.Email)
	assert.Equal(t, "secret", ta.session.lastCreds.Password)
	assert.Equal(t, make([]byte, len(pw)), pw, "password is wiped")
	assert.True(t, ta.isLoggedIn())
	assert.False(t, ta.prompt.isOpen())
	assert.NotContains(t, *out, "Type 'login' or 'register' to try again.")
	assert.Equal(t, []string{"refresh"}, ta.cart.calls, "cart is reloaded for the new identity")
}

func TestLogin_FailureKeepsPromptHint(t *testing.T) {
	out := capturePrint(t)
	ta := newTestApp(t, "")
	ta.session.loginErr = errors.New("Invalid credentials")
	stubInputs(t, []string{"a@b.com"}, []byte("bad"))

	require.EqualError(t, ta.Login(context.Background()), "Invalid credentials")
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, *out, "Type 'login' or 'register' to try again.")
	assert.Empty(t, ta.cart.calls)
}

func TestLogin_InputError(t *testing.T) {
	ta := newTestApp(t, "")
	stubInputs(t, nil, nil)

	require.ErrorIs(t, ta.Login(context.Background()), io.EOF)
	assert.Empty(t, ta.session.lastCreds.Email)
}

func TestRegister_Success(t *testing.T) {
	capturePrint(t)
	ta := newTestApp(t, "")
	stubInputs(t, []string{"Alice", "alice@example.org", ""}, []byte("secret"))

	require.NoError(t, ta.Register(context.Background()))

	p := ta.session.lastRegister
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "alice@example.org", p.Email)
	assert.Empty(t, p.Phone)
	assert.Equal(t, "secret", p.Password)
	assert.True(t, ta.isLoggedIn())
	assert.Equal(t, []string{"refresh"}, ta.cart.calls)
}

func TestLogout(t *testing.T) {
	ta := newTestApp(t, "")
	stubInputs(t, []string{"a@b.com"}, []byte("x"))
	capturePrint(t)
	require.NoError(t, ta.Login(context.Background()))

	require.NoError(t, ta.Logout(context.Background()))
	assert.Equal(t, 1, ta.session.logouts)
	assert.False(t, ta.isLoggedIn())
}

func TestLogout_ErrorPropagates(t *testing.T) {
	ta := newTestApp(t, "")
	ta.session.logoutErr = errors.New("clean-fail")
	require.Error(t, ta.Logout(context.Background()))
}

func TestWhoAmI(t *testing.T) {
	out := capturePrint(t)
	ta := newTestApp(t, "")

	require.NoError(t, ta.WhoAmI(context.Background()))
	assert.Equal(t, []string{"Not signed in."}, *out)

	*out = nil
	ta.session.current = services.Session{
		Token: "T1", User: ptrUser("A", "a@b.com"),
		ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local),
	}
	require.NoError(t, ta.WhoAmI(context.Background()))
	assert.Equal(t, []string{"Signed in as A", "Email: a@b.com", "Session expires: 2030-01-01 00:00"}, *out)
}
