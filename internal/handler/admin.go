package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dailypush/dailypush/internal/api"
	"github.com/dailypush/dailypush/internal/domain"
	mw "github.com/dailypush/dailypush/internal/middleware"
	"github.com/dailypush/dailypush/internal/utils"
)

// AdminIndex returns row counts for the dashboard.
func (h *Handler) AdminIndex(w http.ResponseWriter, r *http.Request) {
	p := mw.PrincipalFromContext(r)
	stats, err := h.admin.Stats(r.Context(), p)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.AdminIndexResponse{Stats: stats, Admin: p.Username})
}

// =========================================================================
// Users
// =========================================================================

func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	users, pg, err := h.admin.Users(r.Context(), mw.PrincipalFromContext(r), r.URL.Query().Get("q"), utils.ParsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	utils.WriteJSON(w, http.StatusOK, api.AdminUserListResponse{Users: users, Pagination: api.NewPageMeta(pg)})
}

func (h *Handler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseId(chi.URLParam(r, "user"), "User")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.AdminUpdateUserRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.admin.RenameUser(r.Context(), mw.PrincipalFromContext(r), id, body.Username)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseId(chi.URLParam(r, "user"), "User")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.admin.DeleteUser(r.Context(), mw.PrincipalFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "User deleted!"})
}

// =========================================================================
// Topics
// =========================================================================

func (h *Handler) AdminListTopics(w http.ResponseWriter, r *http.Request) {
	topics, pg, err := h.admin.Topics(r.Context(), mw.PrincipalFromContext(r), r.URL.Query().Get("q"), utils.ParsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if topics == nil {
		topics = []domain.Topic{}
	}
	utils.WriteJSON(w, http.StatusOK, api.AdminTopicListResponse{Topics: topics, Pagination: api.NewPageMeta(pg)})
}

func (h *Handler) AdminCreateTopic(w http.ResponseWriter, r *http.Request) {
	var body api.AdminCreateTopicRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topic, err := h.admin.CreateTopic(r.Context(), mw.PrincipalFromContext(r), domain.TopicCreationData{
		Name:     body.Name,
		AuthorId: body.AuthorId,
		IsPublic: body.IsPublic,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.TopicResponse{Topic: topic, Message: "Topic created!"})
}

func (h *Handler) AdminUpdateTopic(w http.ResponseWriter, r *http.Request) {
	id, err := topicIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	var body api.UpdateTopicRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topic, err := h.admin.UpdateTopic(r.Context(), mw.PrincipalFromContext(r), id, domain.TopicUpdateData{Name: body.Name, IsPublic: body.IsPublic})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.TopicResponse{Topic: topic, Message: "Topic updated!"})
}

func (h *Handler) AdminDeleteTopic(w http.ResponseWriter, r *http.Request) {
	id, err := topicIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.admin.DeleteTopic(r.Context(), mw.PrincipalFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Topic deleted!"})
}

// =========================================================================
// Posts
// =========================================================================

func (h *Handler) AdminListPosts(w http.ResponseWriter, r *http.Request) {
	posts, pg, err := h.admin.Posts(r.Context(), mw.PrincipalFromContext(r), r.URL.Query().Get("q"), utils.ParsePage(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	utils.WriteJSON(w, http.StatusOK, api.AdminPostListResponse{Posts: posts, Pagination: api.NewPageMeta(pg)})
}

func (h *Handler) AdminCreatePost(w http.ResponseWriter, r *http.Request) {
	var body api.AdminCreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.admin.CreatePost(r.Context(), mw.PrincipalFromContext(r), body.TopicId, body.Title, body.Body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.PostResponse{Post: post, Message: "Post created!"})
}

func (h *Handler) AdminUpdatePost(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.admin.UpdatePost(r.Context(), mw.PrincipalFromContext(r), id, body.Title, body.Body)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.PostResponse{Post: post, Message: "Post updated!"})
}

func (h *Handler) AdminDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := postIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if err := h.admin.DeletePost(r.Context(), mw.PrincipalFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Post deleted!"})
}
