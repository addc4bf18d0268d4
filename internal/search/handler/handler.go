// Package handler exposes the global search HTTP endpoints.
package handler

import (
	"net/http"

	"opticlinic_backend/internal/search/service"
	"opticlinic_backend/internal/search/transport"
	"opticlinic_backend/platform/httpkit"
	"opticlinic_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *service.Service
	validate *validator.Validator
}

func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{service: svc, validate: validate}
}

// Search handles GET /search/global?q=...&limit=...
func (h *Handler) Search(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	response, err := h.service.Search(c.Request.Context(), identity.UserID(), identity.BranchID(), req.Query, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, response)
}

// Recent handles GET /search/recent
func (h *Handler) Recent(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	items, err := h.service.Recent(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.RecentSearchesResponse{Items: items})
}

// ClearRecent handles DELETE /search/recent
func (h *Handler) ClearRecent(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	if httpkit.HandleError(c, h.service.ClearRecent(c.Request.Context(), identity.UserID())) {
		return
	}
	c.Status(http.StatusNoContent)
}
