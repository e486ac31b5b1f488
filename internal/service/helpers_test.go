package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dailypush/dailypush/internal/domain"
	"github.com/dailypush/dailypush/internal/markdown"
	"github.com/dailypush/dailypush/internal/session"
	"github.com/dailypush/dailypush/internal/validation"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword = "validUser#1"
	testAdmin    = "admin"
)

type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: map[string]time.Time{}}
}

func (r *fakeRevoker) Revoke(_ context.Context, tokenId string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenId] = expiresAt
	return nil
}

func (r *fakeRevoker) IsRevoked(_ context.Context, tokenId string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenId]
	return ok, nil
}

func newTestTokens() *session.Tokens {
	return session.NewTokens("test-secret", time.Hour)
}

type fixture struct {
	storage *memStorage
	revoker *fakeRevoker
	tokens  *session.Tokens
	auth    *Auth
	topics  *Topic
	posts   *Post
	admin   *Admin
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	storage := newMemStorage()
	v := validation.New(validation.DefaultLimits)
	renderer := markdown.New()
	revoker := newFakeRevoker()
	tokens := newTestTokens()

	auth := NewAuth(storage, v, tokens, revoker)
	auth.cost = bcrypt.MinCost

	return &fixture{
		storage: storage,
		revoker: revoker,
		tokens:  tokens,
		auth:    auth,
		topics:  NewTopic(storage, v),
		posts:   NewPost(storage, v, renderer, 10),
		admin: NewAdmin(storage, v, renderer, AdminConfig{
			Username:      testAdmin,
			UsersPerPage:  50,
			TopicsPerPage: 10,
			PostsPerPage:  50,
		}),
	}
}

// register creates a user and returns it as an acting principal.
func (f *fixture) register(t *testing.T, username string) domain.Principal {
	t.Helper()
	user, err := f.auth.Register(context.Background(), domain.RegistrationData{
		Username:     username,
		Password:     testPassword,
		Confirmation: testPassword,
	})
	require.NoError(t, err)
	return domain.PrincipalOf(user)
}

func (f *fixture) topic(t *testing.T, owner domain.Principal, name string, public bool) domain.Topic {
	t.Helper()
	topic, err := f.topics.Create(context.Background(), owner, name, public)
	require.NoError(t, err)
	return topic
}

func (f *fixture) post(t *testing.T, owner domain.Principal, topic domain.TopicId, body string) domain.Post {
	t.Helper()
	post, err := f.posts.Create(context.Background(), owner, topic, "", body)
	require.NoError(t, err)
	return post
}
