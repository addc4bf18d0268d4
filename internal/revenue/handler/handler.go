// Package handler exposes the revenue HTTP endpoints.
package handler

import (
	"net/http"

	"opticlinic_backend/internal/revenue/service"
	"opticlinic_backend/internal/revenue/transport"
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

func (h *Handler) bind(c *gin.Context) (transport.ListRequest, bool) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", nil)
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", err.Error())
		return req, false
	}
	return req, true
}

// List handles GET /revenue
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}

	response, err := h.service.List(c.Request.Context(), identity.BranchID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, response)
}

// Summary handles GET /revenue/summary
func (h *Handler) Summary(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}

	response, err := h.service.Summary(c.Request.Context(), identity.BranchID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, response)
}
