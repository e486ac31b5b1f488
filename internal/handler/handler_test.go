package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dailypush/dailypush/internal/config"
	"github.com/dailypush/dailypush/internal/domain"
	mw "github.com/dailypush/dailypush/internal/middleware"
)

// --- Mocks ---

type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, data domain.RegistrationData) (domain.User, error)
	AuthenticateFunc func(ctx context.Context, creds domain.Credentials) (domain.User, error)
	LoginFunc        func(ctx context.Context, creds domain.Credentials) (string, error)
	LogoutFunc       func(ctx context.Context, token string) error
}

func (m *MockAuthService) Register(ctx context.Context, data domain.RegistrationData) (domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, data)
	}
	return domain.User{}, nil
}

func (m *MockAuthService) Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, creds)
	}
	return domain.User{}, nil
}

func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return "", nil
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// Resolve maps the fixed test tokens to principals.
func (m *MockAuthService) Resolve(ctx context.Context, token string) domain.Principal {
	switch token {
	case aliceToken:
		return alice
	case bobToken:
		return bob
	case adminToken:
		return admin
	}
	return domain.Anonymous
}

type MockTopicService struct {
	CreateFunc func(ctx context.Context, p domain.Principal, name domain.TopicName, isPublic bool) (domain.Topic, error)
	GetFunc    func(ctx context.Context, p domain.Principal, id domain.TopicId) (domain.Topic, error)
	ListFunc   func(ctx context.Context, p domain.Principal, scope domain.TopicScope) ([]domain.Topic, error)
	UpdateFunc func(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error)
	DeleteFunc func(ctx context.Context, p domain.Principal, id domain.TopicId) error
}

func (m *MockTopicService) Create(ctx context.Context, p domain.Principal, name domain.TopicName, isPublic bool) (domain.Topic, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p, name, isPublic)
	}
	return domain.Topic{}, nil
}

func (m *MockTopicService) Get(ctx context.Context, p domain.Principal, id domain.TopicId) (domain.Topic, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, p, id)
	}
	return domain.Topic{}, nil
}

func (m *MockTopicService) List(ctx context.Context, p domain.Principal, scope domain.TopicScope) ([]domain.Topic, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, p, scope)
	}
	return nil, nil
}

func (m *MockTopicService) Update(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p, id, data)
	}
	return domain.Topic{}, nil
}

func (m *MockTopicService) Delete(ctx context.Context, p domain.Principal, id domain.TopicId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, p, id)
	}
	return nil
}

type MockPostService struct {
	CreateFunc      func(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	GetFunc         func(ctx context.Context, p domain.Principal, id domain.PostId) (domain.Post, error)
	ListByTopicFunc func(ctx context.Context, p domain.Principal, topicId domain.TopicId, page int) (domain.PostPage, error)
	UpdateFunc      func(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	DeleteFunc      func(ctx context.Context, p domain.Principal, id domain.PostId) error
}

func (m *MockPostService) Create(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p, topicId, title, body)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Get(ctx context.Context, p domain.Principal, id domain.PostId) (domain.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, p, id)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) ListByTopic(ctx context.Context, p domain.Principal, topicId domain.TopicId, page int) (domain.PostPage, error) {
	if m.ListByTopicFunc != nil {
		return m.ListByTopicFunc(ctx, p, topicId, page)
	}
	return domain.PostPage{}, nil
}

func (m *MockPostService) Update(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, p, id, title, body)
	}
	return domain.Post{}, nil
}

func (m *MockPostService) Delete(ctx context.Context, p domain.Principal, id domain.PostId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, p, id)
	}
	return nil
}

type MockHealthChecker struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// --- Fixtures ---

const (
	aliceToken = "alice-token"
	bobToken   = "bob-token"
	adminToken = "admin-token"
)

var (
	alice = domain.Principal{UserId: 2, Username: "alice"}
	bob   = domain.Principal{UserId: 3, Username: "bob"}
	admin = domain.Principal{UserId: 1, Username: "admin"}
)

type testEnv struct {
	auth   *MockAuthService
	topic  *MockTopicService
	post   *MockPostService
	admin  *MockAdminService
	health *MockHealthChecker
	router http.Handler
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Public.AdminUsername = "admin"
	return cfg
}

// newTestEnv mounts the handlers on a chi router with the same guards the
// server uses, so URL params and principals reach them the real way.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		auth:   &MockAuthService{},
		topic:  &MockTopicService{},
		post:   &MockPostService{},
		admin:  &MockAdminService{},
		health: &MockHealthChecker{},
	}
	h := New(env.auth, env.topic, env.post, env.admin, env.health, newTestConfig())
	auth := mw.NewAuth(env.auth, "admin")

	r := chi.NewRouter()
	r.Use(auth.Resolve())
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		r.Get("/topics", h.ListTopics)
		r.Get("/topics/{topic}", h.GetTopic)
		r.Get("/topics/{topic}/posts", h.ListPosts)
		r.Get("/posts/{post}", h.GetPost)
		r.Group(func(r chi.Router) {
			r.Use(auth.NeedAuth())
			r.Post("/topics", h.CreateTopic)
			r.Patch("/topics/{topic}", h.UpdateTopic)
			r.Delete("/topics/{topic}", h.DeleteTopic)
			r.Post("/topics/{topic}/posts", h.CreatePost)
			r.Patch("/posts/{post}", h.UpdatePost)
			r.Delete("/posts/{post}", h.DeletePost)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.AdminOnly())
			r.Get("/", h.AdminIndex)
			r.Get("/users", h.AdminListUsers)
			r.Patch("/users/{user}", h.AdminUpdateUser)
			r.Delete("/users/{user}", h.AdminDeleteUser)
			r.Get("/topics", h.AdminListTopics)
			r.Post("/topics", h.AdminCreateTopic)
			r.Patch("/topics/{topic}", h.AdminUpdateTopic)
			r.Delete("/topics/{topic}", h.AdminDeleteTopic)
			r.Get("/posts", h.AdminListPosts)
			r.Post("/posts", h.AdminCreatePost)
			r.Patch("/posts/{post}", h.AdminUpdatePost)
			r.Delete("/posts/{post}", h.AdminDeletePost)
		})
	})
	env.router = r
	return env
}

// do sends a request as the principal owning token ("" for anonymous).
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rr)["error"]
}
