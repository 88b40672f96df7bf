package user

import (
	"context"
	"testing"

	"homely/config"
	"homely/models"
	"homely/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(u *models.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) Update(u *models.User) error { r.users[u.ID] = u; return nil }

func (r *fakeUserRepo) UpdateSetDocument(id string, doc bson.M) error {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	if v, ok := doc["token_hash"]; ok {
		u.TokenHash = v.(string)
	}
	if v, ok := doc["verified"]; ok {
		u.Verified = v.(bool)
	}
	if v, ok := doc["fcm_token"]; ok {
		u.FCMToken = v.(string)
	}
	return nil
}

func (r *fakeUserRepo) Delete(id string) error { delete(r.users, id); return nil }

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) { return r.users[id], nil }

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Count() (int64, error) { return int64(len(r.users)), nil }

type fakeSessions struct {
	invalidated []string
}

func (f *fakeSessions) Invalidate(_ context.Context, accountID string) error {
	f.invalidated = append(f.invalidated, accountID)
	return nil
}

func seedUser(repo *fakeUserRepo, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &models.User{
		ID:           "user-1",
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: string(hash),
		PhoneNumber:  "+15550001111",
		Role:         models.RoleCustomer,
		Verified:     true,
		TokenHash:    "stale-hash",
	}
	repo.users[u.ID] = u
	return u
}

func TestRevokeAuthToken_ClearsSessionAndCache(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := &fakeSessions{}
	svc := &DefaultUserService{Repo: repo, Sessions: sessions}
	seedUser(repo, "hunter2secret")

	require.NoError(t, svc.RevokeAuthToken("user-1"))

	assert.Empty(t, repo.users["user-1"].TokenHash, "persisted hash must be cleared")
	assert.Equal(t, []string{"user-1"}, sessions.invalidated,
		"cached hash must be dropped so the old token stops working at once")
}

func TestAuthenticate_RotatesSessionAndClearsCache(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	repo := newFakeUserRepo()
	sessions := &fakeSessions{}
	svc := &DefaultUserService{Repo: repo, Sessions: sessions}
	seedUser(repo, "hunter2secret")

	resp, err := svc.Authenticate("dana@example.com", "hunter2secret")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	assert.Equal(t, utils.HashToken(resp.Token), repo.users["user-1"].TokenHash,
		"new session hash replaces the old one")
	assert.Equal(t, []string{"user-1"}, sessions.invalidated,
		"re-login must evict the previous token's cache entry")
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := &DefaultUserService{Repo: repo}
	seedUser(repo, "hunter2secret")

	_, err := svc.Authenticate("dana@example.com", "not-it")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUser_ClearsCache(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := &fakeSessions{}
	svc := &DefaultUserService{Repo: repo, Sessions: sessions}
	seedUser(repo, "hunter2secret")

	require.NoError(t, svc.DeleteUser("user-1"))

	assert.NotContains(t, repo.users, "user-1")
	assert.Equal(t, []string{"user-1"}, sessions.invalidated)
}
