package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailypush/dailypush/internal/api"
	"github.com/dailypush/dailypush/internal/domain"
	mw "github.com/dailypush/dailypush/internal/middleware"
	"github.com/dailypush/dailypush/internal/utils"
)

func postIdParam(r *http.Request) (domain.PostId, error) {
	return utils.ParseId(chi.URLParam(r, "post"), "Post")
}

// ListPosts returns one page of a topic's posts, newest first.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	topicId, err := topicIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	page, err := h.post.ListByTopic(r.Context(), mw.PrincipalFromContext(r), topicId, utils.ParsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	posts := page.Posts
	if posts == nil {
		posts = []domain.Post{}
	}
	utils.WriteJSON(w, http.StatusOK, api.PostListResponse{
		Topic:      page.Topic,
		Posts:      posts,
		Pagination: api.NewPageMeta(page.Pagination),
	})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	topicId, err := topicIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(r.Context(), mw.PrincipalFromContext(r), topicId, body.Title, body.Body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/posts/%d", post.Id))
	utils.WriteJSON(w, http.StatusCreated, api.PostResponse{Post: post, Message: "Post created!"})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Get(r.Context(), mw.PrincipalFromContext(r), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostResponse{Post: post})
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Update(r.Context(), mw.PrincipalFromContext(r), id, body.Title, body.Body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostResponse{Post: post, Message: "Post updated!"})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.post.Delete(r.Context(), mw.PrincipalFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Post deleted!"})
}
