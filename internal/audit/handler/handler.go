// Package handler exposes the audit log HTTP endpoints.
package handler

import (
	"net/http"

	"opticlinic_backend/internal/audit/service"
	"opticlinic_backend/internal/audit/transport"
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

// List handles GET /admin/audit
func (h *Handler) List(c *gin.Context) {
	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	response, err := h.service.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, response)
}
