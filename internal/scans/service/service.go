// Package service implements scan upload, listing, and post-processing.
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"opticlinic_backend/internal/adapters/storage"
	"opticlinic_backend/internal/events"
	"opticlinic_backend/internal/jobs"
	"opticlinic_backend/internal/scans/repository"
	"opticlinic_backend/internal/scans/transport"
	"opticlinic_backend/platform/apperr"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/httpkit"
	"opticlinic_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
)

const defaultPageSize = 25

type Service struct {
	repo   *repository.Repository
	store  *storage.Service
	queue  jobs.ScanEnqueuer
	bus    events.Bus
	bucket string
	log    *logger.Logger
}

func New(repo *repository.Repository, store *storage.Service, queue jobs.ScanEnqueuer, bus events.Bus, cfg config.MinIOConfig, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		queue:  queue,
		bus:    bus,
		bucket: cfg.GetMinioBucketScans(),
		log:    log,
	}
}

// UploadInput carries a validated multipart upload.
type UploadInput struct {
	PatientID   int64
	ScanType    string
	FileName    string
	ContentType string
	SizeBytes   int64
	Body        io.Reader
}

// Upload stores the scan file, records it, and queues post-processing.
func (s *Service) Upload(ctx context.Context, callerBranch *uuid.UUID, in UploadInput) (*transport.Scan, error) {
	if callerBranch == nil {
		return nil, apperr.Validation("a branch is required to upload a scan")
	}
	if err := s.store.ValidateContentType(in.ContentType); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := s.store.ValidateFileSize(in.SizeBytes); err != nil {
		return nil, apperr.Validation(err.Error())
	}

	folder := callerBranch.String()
	fileKey, err := s.store.Upload(ctx, s.bucket, folder, in.FileName, in.ContentType, in.Body, in.SizeBytes)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to store scan file", err)
	}

	id, err := s.repo.Insert(ctx, *callerBranch, in.PatientID, in.ScanType, fileKey, in.FileName, in.SizeBytes)
	if err != nil {
		// best effort: don't leave an orphaned object behind
		if delErr := s.store.Delete(ctx, s.bucket, fileKey); delErr != nil {
			s.log.Warn("failed to remove orphaned scan file", "file_key", fileKey, "error", delErr)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to record scan", err)
	}

	if err := s.queue.EnqueueScanProcess(ctx, jobs.ScanProcessPayload{
		ScanID:    id,
		PatientID: in.PatientID,
		FileKey:   fileKey,
	}); err != nil {
		s.log.Warn("failed to enqueue scan processing", "scan_id", id, "error", err)
	}

	return s.repo.GetByID(ctx, id)
}

// List returns a page of scans in the standard envelope.
func (s *Service) List(ctx context.Context, callerBranch *uuid.UUID, req transport.ListRequest) (*transport.ListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	filter := repository.Filter{
		BranchID:  callerBranch,
		PatientID: req.PatientID,
		ScanType:  req.ScanType,
		Status:    req.Status,
	}

	items, err := s.repo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list scans", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count scans", err)
	}

	envelope := httpkit.NewPage(items, total, page, pageSize)
	return &envelope, nil
}

// Download returns a presigned URL for a scan the caller may access.
func (s *Service) Download(ctx context.Context, callerBranch *uuid.UUID, id int64) (*transport.DownloadResponse, error) {
	scan, err := s.getScoped(ctx, callerBranch, id)
	if err != nil {
		return nil, err
	}

	presigned, err := s.store.PresignDownload(ctx, s.bucket, scan.FileKey)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to presign download", err)
	}
	return &transport.DownloadResponse{URL: presigned.URL, ExpiresAt: presigned.ExpiresAt}, nil
}

func (s *Service) getScoped(ctx context.Context, callerBranch *uuid.UUID, id int64) (*transport.Scan, error) {
	scan, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("scan not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load scan", err)
	}
	if callerBranch != nil && scan.BranchID != callerBranch.String() {
		return nil, apperr.Forbidden("scan belongs to another branch")
	}
	return scan, nil
}

// ProcessScan is the background post-processing step: it pulls the stored
// file, extracts the device capture time from EXIF metadata when present,
// and marks the scan ready. Files without usable EXIF data still become
// ready, just without a capture time.
func (s *Service) ProcessScan(ctx context.Context, scanID int64) error {
	scan, err := s.repo.GetByID(ctx, scanID)
	if err != nil {
		return err
	}

	if err := s.repo.SetStatus(ctx, scanID, transport.StatusProcessing); err != nil {
		return err
	}

	capturedAt := s.extractCaptureTime(ctx, scan.FileKey)

	if err := s.repo.SetProcessed(ctx, scanID, capturedAt); err != nil {
		return err
	}

	s.bus.Publish(ctx, events.ScanProcessed{
		BaseEvent:  events.NewBaseEvent(),
		ScanID:     scanID,
		PatientID:  scan.PatientID,
		CapturedAt: capturedAt,
	})
	return nil
}

func (s *Service) extractCaptureTime(ctx context.Context, fileKey string) *time.Time {
	body, err := s.store.Download(ctx, s.bucket, fileKey)
	if err != nil {
		s.log.Warn("failed to download scan for processing", "file_key", fileKey, "error", err)
		return nil
	}
	defer body.Close()

	meta, err := exif.Decode(body)
	if err != nil {
		return nil
	}
	captured, err := meta.DateTime()
	if err != nil {
		return nil
	}
	return &captured
}
