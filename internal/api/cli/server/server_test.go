package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/eventhub-auth/internal/api/cli/handler"
	"github.com/dtroode/eventhub-auth/internal/api/cli/router"
	"github.com/dtroode/eventhub-auth/internal/app"
	"github.com/dtroode/eventhub-auth/internal/config"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/testutil"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type noPasswords struct{}

func (noPasswords) ReadPassword(string) (string, error) { return "", handler.ErrNoTerminal }

func newTestREPL(t *testing.T, delayer model.Delayer, in io.Reader, out io.Writer) *REPL {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	a := app.New(config.Delays{}, delayer, lg)
	require.NoError(t, a.SeedUsers(model.CredentialRecord{
		ID:       "1",
		Username: "TestUser",
		Email:    "test@eventhub.com",
		Password: "Testeur123@test",
	}))

	r := router.New(handler.New(a, noPasswords{}, lg), a, lg)
	return NewREPL(r, a, in, out, "> ", lg)
}

func TestREPL_Script(t *testing.T) {
	t.Parallel()

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login test@eventhub.com Testeur123@test",
		"foobar",
		"",
		"state",
		"exit",
		"profile",
	}, "\n"))

	out := &safeBuffer{}
	s := newTestREPL(t, &testutil.InstantDelayer{}, input, out)

	require.NoError(t, s.Serve(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Commandes:")
	assert.Contains(t, got, "Connexion réussie, bienvenue TestUser")
	assert.Contains(t, got, "error: unknown command: foobar")
	assert.Contains(t, got, "authenticated: true")
	assert.Contains(t, got, "Au revoir")
	assert.NotContains(t, got, "Profil 1", "nothing runs after exit")
	assert.True(t, strings.HasPrefix(got, "> "))
}

func TestREPL_EndOfInput(t *testing.T) {
	t.Parallel()

	out := &safeBuffer{}
	s := newTestREPL(t, &testutil.InstantDelayer{}, strings.NewReader("state\n"), out)

	require.NoError(t, s.Serve(context.Background()))
	assert.Contains(t, out.String(), "authenticated: false")
}

func TestREPL_ReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("input closed")
	s := newTestREPL(t, &testutil.InstantDelayer{}, iotest.ErrReader(readErr), io.Discard)

	err := s.Serve(context.Background())
	assert.ErrorIs(t, err, readErr)
}

func TestREPL_StopAndCancel(t *testing.T) {
	t.Parallel()

	t.Run("stop", func(t *testing.T) {
		t.Parallel()

		pr, pw := io.Pipe()
		defer pw.Close()

		s := newTestREPL(t, &testutil.InstantDelayer{}, pr, io.Discard)

		done := make(chan error, 1)
		go func() { done <- s.Serve(context.Background()) }()

		s.Stop()
		s.Stop()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after Stop")
		}
	})

	t.Run("context canceled", func(t *testing.T) {
		t.Parallel()

		pr, pw := io.Pipe()
		defer pw.Close()

		s := newTestREPL(t, &testutil.InstantDelayer{}, pr, io.Discard)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Serve(ctx) }()

		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancel")
		}
	})
}

func TestREPL_AnnouncesPendingWorkflow(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()

	delayer := testutil.NewManualDelayer()
	out := &safeBuffer{}
	s := newTestREPL(t, delayer, pr, out)

	done := make(chan error, 1)
	go func() { done <- s.Serve(context.Background()) }()

	go func() {
		_, _ = io.WriteString(pw, "login test@eventhub.com Testeur123@test\n")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, delayer.AwaitPending(ctx, 1))

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "… authentification en cours")
	}, 5*time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "Connexion réussie")

	delayer.ReleaseAll()

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Connexion réussie")
	}, 5*time.Second, 10*time.Millisecond)

	go func() {
		_, _ = io.WriteString(pw, "exit\n")
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after exit")
	}
}
