package api

import "github.com/dailypush/dailypush/internal/domain"

// Request DTOs

type AdminUpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type AdminCreateTopicRequest struct {
	Name     string `json:"name" validate:"required"`
	AuthorId int64  `json:"author_id" validate:"required,gt=0"`
	IsPublic bool   `json:"is_public"`
}

type AdminCreatePostRequest struct {
	TopicId int64  `json:"topic_id" validate:"required,gt=0"`
	Title   string `json:"title"`
	Body    string `json:"body" validate:"required"`
}

// Response DTOs

type AdminUserListResponse struct {
	Users      []domain.User `json:"users"`
	Pagination PageMeta      `json:"pagination"`
}

type AdminTopicListResponse struct {
	Topics     []domain.Topic `json:"topics"`
	Pagination PageMeta       `json:"pagination"`
}

type AdminPostListResponse struct {
	Posts      []domain.Post `json:"posts"`
	Pagination PageMeta      `json:"pagination"`
}

type AdminIndexResponse struct {
	domain.Stats
	Admin domain.Username `json:"admin"`
}
