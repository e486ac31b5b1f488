package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dailypush/dailypush/internal/api"
	"github.com/dailypush/dailypush/internal/domain"
)

func (c *APIClient) ListPosts(ctx context.Context, topicId domain.TopicId, page int) (api.PostListResponse, error) {
	var resp api.PostListResponse
	path := fmt.Sprintf("/v1/topics/%d/posts", topicId)
	if page > 1 {
		path = fmt.Sprintf("%s?page=%d", path, page)
	}
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp, err
}

func (c *APIClient) CreatePost(ctx context.Context, topicId domain.TopicId, title, body string) (domain.Post, error) {
	var resp api.PostResponse
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/v1/topics/%d/posts", topicId), api.CreatePostRequest{Title: title, Body: body}, &resp)
	return resp.Post, err
}

func (c *APIClient) GetPost(ctx context.Context, id domain.PostId) (domain.Post, error) {
	var resp api.PostResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/posts/%d", id), nil, &resp)
	return resp.Post, err
}

func (c *APIClient) UpdatePost(ctx context.Context, id domain.PostId, title, body string) (domain.Post, error) {
	var resp api.PostResponse
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/v1/posts/%d", id), api.UpdatePostRequest{Title: title, Body: body}, &resp)
	return resp.Post, err
}

func (c *APIClient) DeletePost(ctx context.Context, id domain.PostId) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/posts/%d", id), nil, nil)
}
