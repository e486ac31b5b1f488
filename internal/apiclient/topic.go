package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dailypush/dailypush/internal/api"
	"github.com/dailypush/dailypush/internal/domain"
)

func (c *APIClient) ListTopics(ctx context.Context, scope domain.TopicScope) ([]domain.Topic, error) {
	var resp api.TopicListResponse
	path := "/v1/topics?scope=" + url.QueryEscape(string(scope))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Topics, nil
}

func (c *APIClient) CreateTopic(ctx context.Context, name string, isPublic bool) (domain.Topic, error) {
	var resp api.TopicResponse
	err := c.do(ctx, http.MethodPost, "/v1/topics", api.CreateTopicRequest{Name: name, IsPublic: isPublic}, &resp)
	return resp.Topic, err
}

func (c *APIClient) GetTopic(ctx context.Context, id domain.TopicId) (domain.Topic, error) {
	var resp api.TopicResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/topics/%d", id), nil, &resp)
	return resp.Topic, err
}

func (c *APIClient) UpdateTopic(ctx context.Context, id domain.TopicId, name string, isPublic bool) (domain.Topic, error) {
	var resp api.TopicResponse
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/topics/%d", id), api.UpdateTopicRequest{Name: name, IsPublic: isPublic}, &resp)
	return resp.Topic, err
}

func (c *APIClient) DeleteTopic(ctx context.Context, id domain.TopicId) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/topics/%d", id), nil, nil)
}
