package api

import "github.com/dailypush/dailypush/internal/domain"

// Request DTOs

// Title is optional; a blank title is stored as is.
type CreatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body" validate:"required"`
}

type UpdatePostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body" validate:"required"`
}

// Response DTOs

type PostResponse struct {
	domain.Post
	Message string `json:"message,omitempty"`
}

// PageMeta carries everything a client needs to build prev/next links.
type PageMeta struct {
	domain.Pagination
	Pages   int  `json:"pages"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
	PrevNum int  `json:"prev_num,omitempty"`
	NextNum int  `json:"next_num,omitempty"`
}

func NewPageMeta(p domain.Pagination) PageMeta {
	return PageMeta{
		Pagination: p,
		Pages:      p.Pages(),
		HasPrev:    p.HasPrev(),
		HasNext:    p.HasNext(),
		PrevNum:    p.PrevNum(),
		NextNum:    p.NextNum(),
	}
}

type PostListResponse struct {
	Topic      domain.Topic  `json:"topic"`
	Posts      []domain.Post `json:"posts"`
	Pagination PageMeta      `json:"pagination"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
