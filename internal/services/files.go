package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/filemanager/backend/internal/apperrors"
	"github.com/filemanager/backend/internal/models"
	"github.com/filemanager/backend/internal/storage"
	"github.com/filemanager/backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxFileSize is the upload ceiling.
const MaxFileSize = 50 * 1024 * 1024

// FileService orchestrates file uploads, reads, and deletes across the
// record store and the object store. Every lookup filters by id and owner in
// one predicate, so files of other users are indistinguishable from absent
// ones.
type FileService struct {
	DB      *gorm.DB
	Storage storage.ObjectStorage
	Bucket  string
}

func NewFileService(db *gorm.DB, store storage.ObjectStorage, bucket string) *FileService {
	return &FileService{DB: db, Storage: store, Bucket: bucket}
}

// Upload validates, writes the blob, then persists the record. The blob write
// comes first: a crash in between leaves an orphan blob, never a record that
// points at nothing.
func (s *FileService) Upload(ctx context.Context, owner *models.User, reader io.Reader, declaredName, contentType string, declaredSize int64) (*models.File, error) {
	if declaredSize == 0 {
		return nil, apperrors.ErrEmptyFile
	}
	if declaredSize > MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	originalName := filepath.Base(strings.TrimSpace(declaredName))
	if originalName == "" || originalName == "." || originalName == string(filepath.Separator) {
		return nil, apperrors.ErrInvalidFileName
	}

	storedName := uuid.New().String() + filepath.Ext(originalName)
	storageKey := fmt.Sprintf("files/%s/%s", owner.ID, storedName)

	if err := s.Storage.Put(ctx, s.Bucket, storageKey, reader, declaredSize, contentType); err != nil {
		return nil, err
	}

	record := models.File{
		StoredName:   storedName,
		OriginalName: originalName,
		Size:         declaredSize,
		ContentType:  contentType,
		Bucket:       s.Bucket,
		StorageKey:   storageKey,
		OwnerID:      owner.ID,
	}
	if err := s.DB.WithContext(ctx).Create(&record).Error; err != nil {
		// Best-effort cleanup; an orphan blob is acceptable, a dangling
		// record is not.
		_, _ = s.Storage.Delete(ctx, s.Bucket, storageKey)
		return nil, err
	}

	logger.InfoWithUser(owner.ID.String(), "file_uploaded", map[string]interface{}{
		"file_id":      record.ID.String(),
		"file_name":    originalName,
		"file_size":    declaredSize,
		"content_type": contentType,
		"storage_key":  storageKey,
	})
	return &record, nil
}

func (s *FileService) Get(ctx context.Context, fileID, ownerID uuid.UUID) (*models.File, error) {
	var record models.File
	err := s.DB.WithContext(ctx).First(&record, "id = ? AND owner_id = ?", fileID, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Download resolves the record under the ownership predicate and streams the
// blob. A live record whose blob is gone is a broken invariant and surfaces
// as an internal inconsistency, not as not-found.
func (s *FileService) Download(ctx context.Context, fileID, ownerID uuid.UUID) (*models.File, io.ReadCloser, error) {
	record, err := s.Get(ctx, fileID, ownerID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.Storage.Get(ctx, record.Bucket, record.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			logger.Error("file_blob_missing", apperrors.ErrStorageInconsistency, map[string]interface{}{
				"file_id":     record.ID.String(),
				"storage_key": record.StorageKey,
				"owner_id":    ownerID.String(),
			})
			return nil, nil, apperrors.ErrStorageInconsistency
		}
		return nil, nil, err
	}

	return record, reader, nil
}

// Delete removes the blob before the record. If the blob deletion fails the
// record is kept, matching the upload ordering: an orphan blob beats a
// dangling record.
func (s *FileService) Delete(ctx context.Context, fileID, ownerID uuid.UUID) error {
	record, err := s.Get(ctx, fileID, ownerID)
	if err != nil {
		return err
	}

	existed, err := s.Storage.Delete(ctx, record.Bucket, record.StorageKey)
	if err != nil {
		return err
	}
	if !existed {
		logger.Warn("file_blob_already_absent", map[string]interface{}{
			"file_id":     record.ID.String(),
			"storage_key": record.StorageKey,
		})
	}

	if err := s.DB.WithContext(ctx).Delete(&models.File{}, "id = ?", record.ID).Error; err != nil {
		return err
	}

	logger.InfoWithUser(ownerID.String(), "file_deleted", map[string]interface{}{
		"file_id":     record.ID.String(),
		"storage_key": record.StorageKey,
	})
	return nil
}

var fileSortFields = map[string]string{
	"createdAt":    "created_at",
	"originalName": "original_name",
	"size":         "size",
}

// List returns one stable page of the owner's files. Unknown sort fields fall
// back to creation time.
func (s *FileService) List(ctx context.Context, ownerID uuid.UUID, page, limit int, sortField, sortDir string) ([]models.File, int64, error) {
	column, ok := fileSortFields[sortField]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortDir, "asc") {
		direction = "ASC"
	}

	query := s.DB.WithContext(ctx).Model(&models.File{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.File
	err := query.
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (s *FileService) Count(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.File{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (s *FileService) TotalSize(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total int64
	err := s.DB.WithContext(ctx).Model(&models.File{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(size), 0)").
		Scan(&total).Error
	return total, err
}
