// Package handler exposes the referral HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"opticlinic_backend/internal/referrals/service"
	"opticlinic_backend/internal/referrals/transport"
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

// Create handles POST /referrals
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	referral, err := h.service.Create(c.Request.Context(), identity.BranchID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, referral)
}

// List handles GET /referrals
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	response, err := h.service.List(c.Request.Context(), identity.BranchID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, response)
}

// UpdateStatus handles PATCH /referrals/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid referral id", nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	referral, err := h.service.UpdateStatus(c.Request.Context(), identity.BranchID(), id, req.Status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, referral)
}
