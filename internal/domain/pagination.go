package domain

import "math"

type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
}

func NewPagination(page, perPage, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	// keeps Offset from overflowing on absurd page numbers
	if maxPage := math.MaxInt / perPage; page > maxPage {
		page = maxPage
	}
	return Pagination{Page: page, PerPage: perPage, Total: total}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Pagination) Pages() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

func (p Pagination) HasNext() bool {
	return p.Page < p.Pages()
}

// PrevNum returns 0 when there is no previous page.
func (p Pagination) PrevNum() int {
	if !p.HasPrev() {
		return 0
	}
	return p.Page - 1
}

// NextNum returns 0 when there is no next page.
func (p Pagination) NextNum() int {
	if !p.HasNext() {
		return 0
	}
	return p.Page + 1
}

type PostPage struct {
	Topic      Topic
	Posts      []Post
	Pagination Pagination
}

type Stats struct {
	Users  int `json:"users"`
	Topics int `json:"topics"`
	Posts  int `json:"posts"`
}
