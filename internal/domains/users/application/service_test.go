package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/florenda/florenda-api/internal/domains/users/domain"
	"github.com/florenda/florenda-api/internal/domains/users/ports"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	copy := *user
	f.users[user.Username] = &copy
	return &copy, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.users[username]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeUserRepo) Delete(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return ports.ErrNotFound
	}
	delete(f.users, username)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	var list []*domain.User
	for _, u := range f.users {
		copy := *u
		list = append(list, &copy)
	}
	return list, nil
}

type fakeSessionStore struct {
	sessions map[string]string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]string{}}
}

func (f *fakeSessionStore) Save(_ context.Context, username, token string) error {
	f.sessions[username] = token
	return nil
}

func (f *fakeSessionStore) Username(_ context.Context, token string) (string, error) {
	for username, stored := range f.sessions {
		if stored == token {
			return username, nil
		}
	}
	return "", ports.ErrSessionNotFound
}

func (f *fakeSessionStore) Delete(_ context.Context, username string) error {
	delete(f.sessions, username)
	return nil
}

func TestCreateAndLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser(1, "admin", "admin", domain.RoleAdmin)
	require.NoError(t, err)
	created, err := svc.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, "admin", created.Username)

	token, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, sessions.sessions["admin"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	_, err := svc.Login(context.Background(), "missing", "secret")
	require.ErrorIs(t, err, ErrAuthentication)

	user, err := domain.NewUser(1, "admin", "admin", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogin_InactiveAccountRejected(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeSessionStore())

	user, err := domain.NewUser(1, "retired", "secret", domain.RoleStaff)
	require.NoError(t, err)
	user.Active = false
	_, err = repo.Save(context.Background(), user)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "retired", "secret")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestAuthenticate_ResolvesTokenToUser(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser(1, "admin", "admin", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	authed, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, "admin", authed.Username)
	require.Equal(t, domain.RoleAdmin, authed.Role)

	_, err = svc.Authenticate(context.Background(), "bogus-token")
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestLogout_DropsSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := NewService(repo, sessions)

	user, err := domain.NewUser(1, "admin", "admin", domain.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "admin", "admin")
	require.NoError(t, err)

	svc.Logout(context.Background(), "admin")

	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestUpdate_KeepsIdentity(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, nil)

	user, err := domain.NewUser(7, "ola", "kwiaty", domain.RoleStaff)
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), user)
	require.NoError(t, err)

	updated, err := domain.NewUser(0, "ola", "kwiaty", domain.RoleStaff)
	require.NoError(t, err)
	require.NoError(t, updated.UpdateProfile("Ola", "Nowak", "ola@florenda.pl"))

	saved, err := svc.Update(context.Background(), "ola", updated)
	require.NoError(t, err)
	require.Equal(t, int64(7), saved.ID)
	require.Equal(t, "Ola", saved.FirstName)
	require.Equal(t, "ola@florenda.pl", saved.Email)
}

func TestCreateUser_RejectsWeakPassword(t *testing.T) {
	svc := NewService(newFakeUserRepo(), nil)

	user := &domain.User{Username: "admin", Password: "abc", Role: domain.RoleAdmin}
	_, err := svc.CreateUser(context.Background(), user)
	require.ErrorIs(t, err, ErrInvalidInput)
}
