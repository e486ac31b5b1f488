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

func topicIdParam(r *http.Request) (domain.TopicId, error) {
	return utils.ParseId(chi.URLParam(r, "topic"), "Topic")
}

// ListTopics serves ?scope=public (default) and ?scope=mine.
func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	scope := domain.TopicScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = domain.ScopePublic
	}

	topics, err := h.topic.List(r.Context(), mw.PrincipalFromContext(r), scope)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	if topics == nil {
		topics = []domain.Topic{}
	}
	utils.WriteJSON(w, http.StatusOK, api.TopicListResponse{Scope: scope, Topics: topics})
}

func (h *Handler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var body api.CreateTopicRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topic, err := h.topic.Create(r.Context(), mw.PrincipalFromContext(r), body.Name, body.IsPublic)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v1/topics/%d", topic.Id))
	utils.WriteJSON(w, http.StatusCreated, api.TopicResponse{Topic: topic, Message: "Topic created!"})
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id, err := topicIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	topic, err := h.topic.Get(r.Context(), mw.PrincipalFromContext(r), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.TopicResponse{Topic: topic})
}

func (h *Handler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
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

	topic, err := h.topic.Update(r.Context(), mw.PrincipalFromContext(r), id, domain.TopicUpdateData{Name: body.Name, IsPublic: body.IsPublic})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.TopicResponse{Topic: topic, Message: "Topic updated!"})
}

func (h *Handler) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	id, err := topicIdParam(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.topic.Delete(r.Context(), mw.PrincipalFromContext(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Topic deleted!"})
}
