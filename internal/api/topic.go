package api

import "github.com/dailypush/dailypush/internal/domain"

// Request DTOs

type CreateTopicRequest struct {
	Name     string `json:"name" validate:"required"`
	IsPublic bool   `json:"is_public"`
}

type UpdateTopicRequest struct {
	Name     string `json:"name" validate:"required"`
	IsPublic bool   `json:"is_public"`
}

// Response DTOs

type TopicResponse struct {
	domain.Topic
	Message string `json:"message,omitempty"`
}

type TopicListResponse struct {
	Scope  domain.TopicScope `json:"scope"`
	Topics []domain.Topic    `json:"topics"`
}
