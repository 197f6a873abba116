package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/eventhub-auth/internal/mocks"
	"github.com/dtroode/eventhub-auth/internal/model"
	"github.com/dtroode/eventhub-auth/internal/store"
	"github.com/dtroode/eventhub-auth/internal/testutil"
	"github.com/dtroode/eventhub-auth/internal/validate"
)

var testDelays = AuthDelays{
	Register: model.DefaultRegisterDelay,
	Login:    model.DefaultLoginDelay,
}

var seededUser = model.CredentialRecord{
	ID:       "1",
	Username: "TestUser",
	Email:    "test@eventhub.com",
	Password: "Testeur123@test",
}

func newTestAuth(t *testing.T, delayer model.Delayer, syncer model.ProfileSyncer, seed ...model.CredentialRecord) (*Auth, *store.Store) {
	t.Helper()

	s := store.New(testutil.MakeNoopLogger())
	for _, rec := range seed {
		require.NoError(t, s.Commit(store.AddKnownUser(rec)))
	}

	return NewAuth(s, syncer, delayer, testDelays, testutil.MakeNoopLogger()), s
}

func TestAuth_Register_Success(t *testing.T) {
	t.Parallel()

	delayer := &testutil.InstantDelayer{}
	a, s := newTestAuth(t, delayer, mocks.NewProfileSyncer(t), seededUser)
	a.newID = func() string { return "generated-id" }

	a.Register(context.Background(), "Testeur", "new@eventhub.com", "Testeur123@")

	st := s.State()
	assert.True(t, st.Auth.IsAuthenticated)
	assert.False(t, st.Auth.IsPending)
	assert.Empty(t, st.Auth.LastError)
	assert.Equal(t, &model.User{ID: "generated-id", Username: "Testeur", Email: "new@eventhub.com"}, st.Auth.CurrentUser)
	require.Len(t, st.Auth.KnownUsers, 2)
	assert.Equal(t, model.CredentialRecord{
		ID:       "generated-id",
		Username: "Testeur",
		Email:    "new@eventhub.com",
		Password: "Testeur123@",
	}, st.Auth.KnownUsers[1])
	assert.Equal(t, []time.Duration{model.DefaultRegisterDelay}, delayer.Calls())
}

func TestAuth_Register_GeneratesUniqueIDs(t *testing.T) {
	t.Parallel()

	a, s := newTestAuth(t, &testutil.InstantDelayer{}, mocks.NewProfileSyncer(t))

	a.Register(context.Background(), "One", "one@eventhub.com", "Testeur123@")
	a.Register(context.Background(), "Two", "two@eventhub.com", "Testeur123@")

	users := s.State().Auth.KnownUsers
	require.Len(t, users, 2)
	assert.NotEmpty(t, users[0].ID)
	assert.NotEqual(t, users[0].ID, users[1].ID)
	assert.Equal(t, "two@eventhub.com", s.State().Auth.CurrentUser.Email)
}

func TestAuth_Register_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantErr  string
	}{
		{name: "missing username", email: "a@b.c", password: "Testeur123@", wantErr: model.ErrMissingFields.Message},
		{name: "missing email", username: "Testeur", password: "Testeur123@", wantErr: model.ErrMissingFields.Message},
		{name: "missing password", username: "Testeur", email: "a@b.c", wantErr: model.ErrMissingFields.Message},
		{name: "invalid email", username: "Testeur", email: "test@eventhub", password: "Testeur123@", wantErr: "Email invalide"},
		{
			name:     "weak password",
			username: "Testeur",
			email:    "new@eventhub.com",
			password: "weak",
			wantErr: validate.MsgPasswordLength + ", " + validate.MsgPasswordUppercase + ", " +
				validate.MsgPasswordDigit + ", " + validate.MsgPasswordSpecial,
		},
		{name: "duplicate email", username: "Testeur", email: "test@eventhub.com", password: "Testeur123@", wantErr: "Cet email est déjà utilisé"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, s := newTestAuth(t, &testutil.InstantDelayer{}, mocks.NewProfileSyncer(t), seededUser)

			a.Register(context.Background(), tt.username, tt.email, tt.password)

			st := s.State()
			assert.Equal(t, tt.wantErr, st.Auth.LastError)
			assert.False(t, st.Auth.IsAuthenticated)
			assert.Nil(t, st.Auth.CurrentUser)
			assert.False(t, st.Auth.IsPending)
			assert.Len(t, st.Auth.KnownUsers, 1)
		})
	}
}

func TestAuth_Register_WeakPasswordMentionsRequirements(t *testing.T) {
	t.Parallel()

	a, s := newTestAuth(t, &testutil.InstantDelayer{}, mocks.NewProfileSyncer(t))

	a.Register(context.Background(), "Testeur", "test@eventhub.com", "weak")

	st := s.State()
	assert.Contains(t, st.Auth.LastError, "mot de passe")
	assert.False(t, st.Auth.IsAuthenticated)
	assert.Empty(t, st.Auth.KnownUsers)
}

func TestAuth_Register_FailureKeepsExistingSession(t *testing.T) {
	t.Parallel()

	syncer := mocks.NewProfileSyncer(t)
	syncer.On("SyncFromAuth").Return().Once()

	a, s := newTestAuth(t, &testutil.InstantDelayer{}, syncer, seededUser)

	a.Login(context.Background(), seededUser.Email, seededUser.Password)
	a.Register(context.Background(), "Other", seededUser.Email, "Testeur123@")

	st := s.State()
	assert.Equal(t, "Cet email est déjà utilisé", st.Auth.LastError)
	assert.True(t, st.Auth.IsAuthenticated)
	assert.Equal(t, seededUser.User(), *st.Auth.CurrentUser)
}

func TestAuth_Register_PendingIsObservable(t *testing.T) {
	t.Parallel()

	delayer := testutil.NewManualDelayer()
	a, s := newTestAuth(t, delayer, mocks.NewProfileSyncer(t))

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Register(context.Background(), "Testeur", "test@eventhub.com", "Testeur123@")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, delayer.AwaitPending(ctx, 1))

	st := s.State()
	assert.True(t, st.Auth.IsPending)
	assert.False(t, st.Auth.IsAuthenticated)
	assert.Empty(t, st.Auth.KnownUsers, "nothing is written before the delay ends")

	assert.Equal(t, 1, delayer.ReleaseAll())
	<-done

	st = s.State()
	assert.False(t, st.Auth.IsPending)
	assert.True(t, st.Auth.IsAuthenticated)
	assert.Equal(t, "Testeur", st.Auth.CurrentUser.Username)
	assert.Equal(t, "test@eventhub.com", st.Auth.CurrentUser.Email)
}

func TestAuth_Login_Success(t *testing.T) {
	t.Parallel()

	syncer := mocks.NewProfileSyncer(t)
	syncer.On("SyncFromAuth").Return().Once()

	delayer := &testutil.InstantDelayer{}
	a, s := newTestAuth(t, delayer, syncer, seededUser)

	a.Login(context.Background(), "test@eventhub.com", "Testeur123@test")

	st := s.State()
	assert.True(t, st.Auth.IsAuthenticated)
	assert.False(t, st.Auth.IsPending)
	assert.Equal(t, &model.User{ID: "1", Username: "TestUser", Email: "test@eventhub.com"}, st.Auth.CurrentUser)
	assert.Equal(t, []time.Duration{model.DefaultLoginDelay}, delayer.Calls())
}

func TestAuth_Login_SyncsAfterAuthSettles(t *testing.T) {
	t.Parallel()

	s := store.New(testutil.MakeNoopLogger())
	require.NoError(t, s.Commit(store.AddKnownUser(seededUser)))

	syncer := mocks.NewProfileSyncer(t)
	syncer.On("SyncFromAuth").Run(func(mock.Arguments) {
		st := s.State()
		assert.True(t, st.Auth.IsAuthenticated, "auth success is committed before sync")
		assert.False(t, st.Auth.IsPending)
	}).Return().Once()

	a := NewAuth(s, syncer, &testutil.InstantDelayer{}, testDelays, testutil.MakeNoopLogger())
	a.Login(context.Background(), seededUser.Email, seededUser.Password)
}

func TestAuth_Login_InvalidCredentialsDoNotLeakAccountExistence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "test@eventhub.com", password: "WrongPassword123@"},
		{name: "unknown user", email: "nonexistent@eventhub.com", password: "Password123@"},
		{name: "email differs in case", email: "TEST@eventhub.com", password: "Testeur123@test"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			syncer := mocks.NewProfileSyncer(t)
			a, s := newTestAuth(t, &testutil.InstantDelayer{}, syncer, seededUser)

			a.Login(context.Background(), tt.email, tt.password)

			st := s.State()
			assert.Equal(t, "Email ou mot de passe incorrect", st.Auth.LastError)
			assert.False(t, st.Auth.IsAuthenticated)
			assert.False(t, st.Auth.IsPending)
			syncer.AssertNotCalled(t, "SyncFromAuth")
		})
	}
}

func TestAuth_Login_MissingFields(t *testing.T) {
	t.Parallel()

	for _, creds := range [][2]string{{"", "Testeur123@test"}, {"test@eventhub.com", ""}, {"", ""}} {
		a, s := newTestAuth(t, &testutil.InstantDelayer{}, mocks.NewProfileSyncer(t), seededUser)

		a.Login(context.Background(), creds[0], creds[1])

		st := s.State()
		assert.Equal(t, "Tous les champs sont requis", st.Auth.LastError)
		assert.False(t, st.Auth.IsAuthenticated)
	}
}

func TestAuth_Login_CanceledDuringDelay(t *testing.T) {
	t.Parallel()

	delayer := mocks.NewDelayer(t)
	delayer.On("Delay", mock.Anything, model.DefaultLoginDelay).Return(context.Canceled).Once()

	syncer := mocks.NewProfileSyncer(t)
	a, s := newTestAuth(t, delayer, syncer, seededUser)

	a.Login(context.Background(), seededUser.Email, seededUser.Password)

	st := s.State()
	assert.False(t, st.Auth.IsPending, "pending is cleared even when canceled")
	assert.Equal(t, "Opération annulée", st.Auth.LastError)
	assert.False(t, st.Auth.IsAuthenticated)
	syncer.AssertNotCalled(t, "SyncFromAuth")
}

func TestAuth_Login_NewAttemptClearsPreviousError(t *testing.T) {
	t.Parallel()

	delayer := testutil.NewManualDelayer()
	syncer := mocks.NewProfileSyncer(t)
	syncer.On("SyncFromAuth").Return().Maybe()
	a, s := newTestAuth(t, delayer, syncer, seededUser)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Login(ctx, seededUser.Email, "bad")
	}()
	require.NoError(t, delayer.AwaitPending(ctx, 1))
	delayer.ReleaseAll()
	<-done
	require.NotEmpty(t, s.State().Auth.LastError)

	done = make(chan struct{})
	go func() {
		defer close(done)
		a.Login(ctx, seededUser.Email, seededUser.Password)
	}()
	require.NoError(t, delayer.AwaitPending(ctx, 1))

	st := s.State()
	assert.True(t, st.Auth.IsPending)
	assert.Empty(t, st.Auth.LastError)

	delayer.ReleaseAll()
	<-done
	assert.True(t, s.State().Auth.IsAuthenticated)
}

func TestAuth_LogoutAndClearError(t *testing.T) {
	t.Parallel()

	syncer := mocks.NewProfileSyncer(t)
	syncer.On("SyncFromAuth").Return().Once()
	a, s := newTestAuth(t, &testutil.InstantDelayer{}, syncer, seededUser)

	a.Login(context.Background(), seededUser.Email, "wrong")
	require.NotEmpty(t, s.State().Auth.LastError)
	a.ClearError()
	assert.Empty(t, s.State().Auth.LastError)

	a.Login(context.Background(), seededUser.Email, seededUser.Password)
	require.True(t, s.State().Auth.IsAuthenticated)

	a.Logout()
	st := s.State()
	assert.False(t, st.Auth.IsAuthenticated)
	assert.Nil(t, st.Auth.CurrentUser)
	assert.Len(t, st.Auth.KnownUsers, 1, "logout keeps the user database")
}
