package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indicamais/internal/models"
)

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	deleted  []string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionRepo) Create(s *models.Session) error {
	f.sessions[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) Get(id string) (*models.Session, error) {
	return f.sessions[id], nil
}

func (f *fakeSessionRepo) Delete(id string) error {
	delete(f.sessions, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired() error { return nil }

func TestStartSessionCreatesOpaqueID(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := NewAuthService(sessions, newFakeUserRepo(), 30)

	sess, err := svc.StartSession("u1")
	require.NoError(t, err)

	assert.Len(t, sess.ID, 32)
	assert.Equal(t, "u1", sess.UserID)
	assert.True(t, sess.ExpiresAt.After(time.Now().Add(29*24*time.Hour)))
	assert.Contains(t, sessions.sessions, sess.ID)
}

func TestResolveSessionHappyPath(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	users.add(&models.User{ID: "u1", Name: "Ana", Active: true})
	sessions.sessions["sess1"] = &models.Session{ID: "sess1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}

	svc := NewAuthService(sessions, users, 30)

	user, err := svc.ResolveSession("sess1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}

func TestResolveSessionExpiredIsDeleted(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	users.add(&models.User{ID: "u1", Active: true})
	sessions.sessions["sess1"] = &models.Session{ID: "sess1", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}

	svc := NewAuthService(sessions, users, 30)

	user, err := svc.ResolveSession("sess1")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, []string{"sess1"}, sessions.deleted)
}

func TestResolveSessionInactiveUser(t *testing.T) {
	sessions := newFakeSessionRepo()
	users := newFakeUserRepo()
	users.add(&models.User{ID: "u1", Active: false})
	sessions.sessions["sess1"] = &models.Session{ID: "sess1", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}

	svc := NewAuthService(sessions, users, 30)

	user, err := svc.ResolveSession("sess1")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestPasswordRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeSessionRepo(), newFakeUserRepo(), 30)

	hash, err := svc.HashPassword("segredo123")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo123", hash)

	assert.NoError(t, svc.CheckPassword(hash, "segredo123"))
	assert.Error(t, svc.CheckPassword(hash, "outra-senha"))
}
