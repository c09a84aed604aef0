package services

import (
	"Folio/internal/models"
	"Folio/internal/repository"
	"Folio/internal/storage"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type SweepResult struct {
	Pending int `json:"pending"`
	Deleted int `json:"deleted"`
	Failed  int `json:"failed"`
}

// SweepService deletes blobs whose file records are already gone. Each blob
// is tracked by a tombstone written in the same batch as the record delete.
type SweepService interface {
	Sweep(ctx context.Context, limit int) (SweepResult, error)
	Reap(ctx context.Context, tombstones []models.BlobTombstone) SweepResult
}

type sweepServiceImpl struct {
	tombstoneRepo repository.TombstoneRepository
	blobStore     storage.BlobStore
	logService    LogService
}

func NewSweepService(tombstoneRepo repository.TombstoneRepository, blobStore storage.BlobStore, logService LogService) SweepService {
	return &sweepServiceImpl{tombstoneRepo: tombstoneRepo, blobStore: blobStore, logService: logService}
}

func (s *sweepServiceImpl) Sweep(ctx context.Context, limit int) (SweepResult, error) {
	tombstones, err := s.tombstoneRepo.FindPending(ctx, limit)
	if err != nil {
		return SweepResult{}, fmt.Errorf("find pending tombstones: %w", err)
	}
	return s.Reap(ctx, tombstones), nil
}

// Reap deletes each blob and drops its tombstone. Failures stay pending with
// the attempt recorded.
func (s *sweepServiceImpl) Reap(ctx context.Context, tombstones []models.BlobTombstone) SweepResult {
	result := SweepResult{Pending: len(tombstones)}
	for _, tombstone := range tombstones {
		err := s.blobStore.Delete(ctx, tombstone.StoragePath)
		if err == nil {
			err = s.tombstoneRepo.Delete(ctx, tombstone.ID)
		}
		if err != nil {
			result.Failed++
			s.logService.Log.WithFields(logrus.Fields{
				"job":    "sweep",
				"path":   tombstone.StoragePath,
				"status": "error",
				"error":  err.Error(),
			}).Warn("failed to delete blob")
			if recordErr := s.tombstoneRepo.RecordFailure(ctx, tombstone.ID, err); recordErr != nil {
				s.logService.Log.WithError(recordErr).Error("failed to record sweep failure")
			}
			continue
		}
		result.Deleted++
	}
	return result
}
