package handler

import (
	"context"

	"github.com/dailypush/dailypush/internal/domain"
)

type MockAdminService struct {
	StatsFunc       func(ctx context.Context, p domain.Principal) (domain.Stats, error)
	UsersFunc       func(ctx context.Context, p domain.Principal, q string, page int) ([]domain.User, domain.Pagination, error)
	RenameUserFunc  func(ctx context.Context, p domain.Principal, id domain.UserId, username domain.Username) (domain.User, error)
	DeleteUserFunc  func(ctx context.Context, p domain.Principal, id domain.UserId) error
	TopicsFunc      func(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Topic, domain.Pagination, error)
	CreateTopicFunc func(ctx context.Context, p domain.Principal, data domain.TopicCreationData) (domain.Topic, error)
	UpdateTopicFunc func(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error)
	DeleteTopicFunc func(ctx context.Context, p domain.Principal, id domain.TopicId) error
	PostsFunc       func(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Post, domain.Pagination, error)
	CreatePostFunc  func(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	UpdatePostFunc  func(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error)
	DeletePostFunc  func(ctx context.Context, p domain.Principal, id domain.PostId) error
}

func (m *MockAdminService) IsAdmin(p domain.Principal) bool {
	return p.IsAdmin("admin")
}

func (m *MockAdminService) Stats(ctx context.Context, p domain.Principal) (domain.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, p)
	}
	return domain.Stats{}, nil
}

func (m *MockAdminService) Users(ctx context.Context, p domain.Principal, q string, page int) ([]domain.User, domain.Pagination, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc(ctx, p, q, page)
	}
	return nil, domain.NewPagination(page, 50, 0), nil
}

func (m *MockAdminService) RenameUser(ctx context.Context, p domain.Principal, id domain.UserId, username domain.Username) (domain.User, error) {
	if m.RenameUserFunc != nil {
		return m.RenameUserFunc(ctx, p, id, username)
	}
	return domain.User{Id: id, Username: username}, nil
}

func (m *MockAdminService) DeleteUser(ctx context.Context, p domain.Principal, id domain.UserId) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, p, id)
	}
	return nil
}

func (m *MockAdminService) Topics(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Topic, domain.Pagination, error) {
	if m.TopicsFunc != nil {
		return m.TopicsFunc(ctx, p, q, page)
	}
	return nil, domain.NewPagination(page, 10, 0), nil
}

func (m *MockAdminService) CreateTopic(ctx context.Context, p domain.Principal, data domain.TopicCreationData) (domain.Topic, error) {
	if m.CreateTopicFunc != nil {
		return m.CreateTopicFunc(ctx, p, data)
	}
	return domain.Topic{}, nil
}

func (m *MockAdminService) UpdateTopic(ctx context.Context, p domain.Principal, id domain.TopicId, data domain.TopicUpdateData) (domain.Topic, error) {
	if m.UpdateTopicFunc != nil {
		return m.UpdateTopicFunc(ctx, p, id, data)
	}
	return domain.Topic{}, nil
}

func (m *MockAdminService) DeleteTopic(ctx context.Context, p domain.Principal, id domain.TopicId) error {
	if m.DeleteTopicFunc != nil {
		return m.DeleteTopicFunc(ctx, p, id)
	}
	return nil
}

func (m *MockAdminService) Posts(ctx context.Context, p domain.Principal, q string, page int) ([]domain.Post, domain.Pagination, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(ctx, p, q, page)
	}
	return nil, domain.NewPagination(page, 50, 0), nil
}

func (m *MockAdminService) CreatePost(ctx context.Context, p domain.Principal, topicId domain.TopicId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(ctx, p, topicId, title, body)
	}
	return domain.Post{}, nil
}

func (m *MockAdminService) UpdatePost(ctx context.Context, p domain.Principal, id domain.PostId, title domain.PostTitle, body domain.PostBody) (domain.Post, error) {
	if m.UpdatePostFunc != nil {
		return m.UpdatePostFunc(ctx, p, id, title, body)
	}
	return domain.Post{}, nil
}

func (m *MockAdminService) DeletePost(ctx context.Context, p domain.Principal, id domain.PostId) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(ctx, p, id)
	}
	return nil
}
