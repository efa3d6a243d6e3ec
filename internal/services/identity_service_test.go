package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"indicamais/internal/authz"
	"indicamais/internal/models"
)

type fakeAuth struct {
	sessions []string
}

func (f *fakeAuth) HashPassword(password string) (string, error)   { return password, nil }
func (f *fakeAuth) CheckPassword(hash, password string) error      { return nil }
func (f *fakeAuth) ResolveSession(id string) (*models.User, error) { return nil, nil }
func (f *fakeAuth) UserByID(id string) (*models.User, error)       { return nil, nil }
func (f *fakeAuth) EndSession(id string) error                     { return nil }
func (f *fakeAuth) NewAccessToken(u *models.User) (string, error)  { return "token", nil }

func (f *fakeAuth) StartSession(userID string) (*models.Session, error) {
	f.sessions = append(f.sessions, userID)
	return &models.Session{ID: "sess-" + userID, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// discordStub serve /token e /users/@me como o provedor real faria.
func discordStub(t *testing.T, profile *DiscordUser) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "stub-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/users/@me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(profile)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func identityService(srv *httptest.Server, users *fakeUserRepo, auth *fakeAuth) *IdentityService {
	cfg := &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/login/discord/callback",
		Scopes:       []string{"identify", "email"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/authorize",
			TokenURL: srv.URL + "/token",
		},
	}
	return NewIdentityService(NewUserService(users, nil), auth, cfg, srv.URL+"/users/@me")
}

func TestHandleCallbackRejectsUnverifiedEmail(t *testing.T) {
	srv := discordStub(t, &DiscordUser{ID: "d1", Username: "ana", Email: "ana@example.com", Verified: false})
	users := newFakeUserRepo()
	auth := &fakeAuth{}

	_, err := identityService(srv, users, auth).HandleCallback(context.Background(), "code")

	assert.ErrorIs(t, err, ErrEmailNotVerified)
	assert.Empty(t, users.created)
	assert.Empty(t, auth.sessions)
}

func TestHandleCallbackRejectsMissingEmail(t *testing.T) {
	srv := discordStub(t, &DiscordUser{ID: "d1", Username: "ana", Verified: true})
	users := newFakeUserRepo()
	auth := &fakeAuth{}

	_, err := identityService(srv, users, auth).HandleCallback(context.Background(), "code")

	assert.ErrorIs(t, err, ErrNoEmail)
	assert.Empty(t, users.created)
}

func TestHandleCallbackReusesExistingAccount(t *testing.T) {
	srv := discordStub(t, &DiscordUser{ID: "d1", Username: "ana", Email: "ana@example.com", Verified: true})
	users := newFakeUserRepo()
	provider := "discord"
	providerID := "d1"
	users.add(&models.User{
		ID: "existing-id", Email: "ana@example.com",
		Provider: &provider, ProviderUserID: &providerID, Active: true,
	})
	auth := &fakeAuth{}

	sess, err := identityService(srv, users, auth).HandleCallback(context.Background(), "code")
	require.NoError(t, err)

	assert.Empty(t, users.created)
	assert.Equal(t, []string{"existing-id"}, auth.sessions)
	assert.Equal(t, "existing-id", sess.UserID)
}

func TestHandleCallbackRegistersNewUser(t *testing.T) {
	srv := discordStub(t, &DiscordUser{ID: "d1", Username: "ana", Email: "ana@example.com", Verified: true})
	users := newFakeUserRepo()
	auth := &fakeAuth{}

	sess, err := identityService(srv, users, auth).HandleCallback(context.Background(), "code")
	require.NoError(t, err)

	require.Len(t, users.created, 1)
	u := users.created[0]
	assert.True(t, len(u.ID) > len("ana@example.com"))
	assert.Equal(t, "ana@example.com", u.ID[:len("ana@example.com")])
	assert.Equal(t, "ana", u.Name)
	assert.Equal(t, authz.RoleVendedorExterno, u.Job)
	require.NotNil(t, u.PromoCode)
	assert.Len(t, *u.PromoCode, 15)
	require.NotNil(t, u.Provider)
	assert.Equal(t, "discord", *u.Provider)
	assert.True(t, u.Active)

	assert.Equal(t, u.ID, sess.UserID)
}

func TestHandleCallbackEmailTakenByAnotherProvider(t *testing.T) {
	srv := discordStub(t, &DiscordUser{ID: "d1", Username: "ana", Email: "ana@example.com", Verified: true})
	users := newFakeUserRepo()
	// mesma caixa de email, mas cadastrada sem vínculo com o Discord
	users.add(&models.User{ID: "old-id", Email: "ana@example.com", Active: true})
	auth := &fakeAuth{}

	sess, err := identityService(srv, users, auth).HandleCallback(context.Background(), "code")
	require.NoError(t, err)

	require.Len(t, users.created, 1)
	u := users.created[0]
	assert.NotEqual(t, "old-id", u.ID)
	require.NotNil(t, u.PromoCode)
	assert.Len(t, *u.PromoCode, 8)
	assert.Equal(t, u.ID, sess.UserID)
}
