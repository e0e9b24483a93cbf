package service

import (
	"alcyxob/plan-admin/internal/domain"
	"alcyxob/plan-admin/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrExportFailed = errors.New("failed to export catalog")

// CatalogExport points at a JSON snapshot of one catalog in object storage.
type CatalogExport struct {
	Catalog   domain.Catalog `json:"catalog"`
	Key       string         `json:"key"`
	URL       string         `json:"url"`
	Count     int            `json:"count"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// ExportService writes catalog snapshots for download.
type ExportService interface {
	ExportCatalog(ctx context.Context, ownerID primitive.ObjectID, catalog domain.Catalog) (*CatalogExport, error)
}

type exportService struct {
	academy     AcademyPlanService
	turf        TurfPlanService
	fileStorage storage.FileStorage // nil when no bucket is configured
	expiry      time.Duration
}

// NewExportService creates an export service. fileStorage may be nil, in which
// case every export fails with storage.ErrNotConfigured.
func NewExportService(academy AcademyPlanService, turf TurfPlanService, fileStorage storage.FileStorage) ExportService {
	return &exportService{
		academy:     academy,
		turf:        turf,
		fileStorage: fileStorage,
		expiry:      storage.DefaultPresignedURLExpiry,
	}
}

func (s *exportService) ExportCatalog(ctx context.Context, ownerID primitive.ObjectID, catalog domain.Catalog) (*CatalogExport, error) {
	if s.fileStorage == nil {
		return nil, storage.ErrNotConfigured
	}

	var (
		snapshot any
		count    int
	)
	switch catalog {
	case domain.CatalogAcademy:
		plans, err := s.academy.ListPlans(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		snapshot, count = plans, len(plans)
	case domain.CatalogTurf:
		plans, err := s.turf.ListPlans(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		snapshot, count = plans, len(plans)
	default:
		return nil, fmt.Errorf("%w: unknown catalog %q", ErrExportFailed, catalog)
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	objectKey := path.Join("exports", ownerID.Hex(), string(catalog), uuid.NewString()+".json")
	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.expiry)
	if err != nil {
		// An unreachable snapshot is useless; don't leave it behind.
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			log.Printf("WARN: Could not remove orphaned export '%s': %v", objectKey, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return &CatalogExport{
		Catalog:   catalog,
		Key:       objectKey,
		URL:       url,
		Count:     count,
		ExpiresAt: time.Now().UTC().Add(s.expiry),
	}, nil
}
