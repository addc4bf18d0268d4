// Package handler exposes the scan HTTP endpoints.
package handler

import (
	"net/http"
	"strconv"

	"opticlinic_backend/internal/scans/service"
	"opticlinic_backend/internal/scans/transport"
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

// Upload handles POST /scans (multipart form: file, patientId, scanType).
func (h *Handler) Upload(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	patientID, err := strconv.ParseInt(c.PostForm("patientId"), 10, 64)
	if err != nil || patientID < 1 {
		httpkit.Error(c, http.StatusBadRequest, "invalid patientId", nil)
		return
	}
	scanType := c.PostForm("scanType")
	if err := h.validate.Var(scanType, "required,oneof=oct fundus topography visual_field pachymetry"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid scanType", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "failed to read file", nil)
		return
	}
	defer file.Close()

	scan, err := h.service.Upload(c.Request.Context(), identity.BranchID(), service.UploadInput{
		PatientID:   patientID,
		ScanType:    scanType,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Body:        file,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, scan)
}

// List handles GET /scans
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

// Download handles GET /scans/:id/download
func (h *Handler) Download(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid scan id", nil)
		return
	}

	response, err := h.service.Download(c.Request.Context(), identity.BranchID(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, response)
}
