package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"estimate-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrCustomPathDisabled is returned when a caller supplies a workbook path
	// while the deployment only allows the configured source.
	ErrCustomPathDisabled = errors.New("custom workbook paths are disabled")
	// ErrPathOutsideBase is returned when a custom path escapes the base
	// directory.
	ErrPathOutsideBase = errors.New("workbook path outside the allowed directory")
	// ErrUploadTooLarge is returned before parsing when an upload exceeds the
	// configured ceiling.
	ErrUploadTooLarge = errors.New("upload exceeds the size limit")
	// ErrUploadEmpty is returned for zero-byte uploads.
	ErrUploadEmpty = errors.New("upload is empty")
	// ErrBadExtension is returned for files outside the workbook allow-list.
	ErrBadExtension = errors.New("unsupported file extension")
)

// allowedExtensions are the accepted workbook container variants.
var allowedExtensions = map[string]struct{}{
	".xlsx": {},
	".xlsm": {},
	".xltx": {},
	".xltm": {},
}

// Service resolves workbook sources, runs the reconciler inside one
// transaction per sync, and optionally archives synced workbooks.
type Service struct {
	db         *gorm.DB
	cfg        Config
	archive    storage.Client
	archiveCfg storage.Config
	rec        *Reconciler
	log        *zap.Logger
}

// NewService builds a Service. archive may be nil when archiving is disabled.
func NewService(db *gorm.DB, cfg Config, archive storage.Client, archiveCfg storage.Config, log *zap.Logger) *Service {
	return &Service{
		db:         db,
		cfg:        cfg,
		archive:    archive,
		archiveCfg: archiveCfg,
		rec:        NewReconciler(log),
		log:        log,
	}
}

// SyncDefault reconciles the configured source workbook.
func (s *Service) SyncDefault(ctx context.Context) (*Result, error) {
	return s.run(ctx, s.cfg.SourcePath)
}

// SyncPath reconciles an operator-supplied workbook path. The path must
// resolve under the configured base directory, and the deployment must allow
// custom paths at all; both are checked before any store access.
func (s *Service) SyncPath(ctx context.Context, path string) (*Result, error) {
	if strings.TrimSpace(path) == "" {
		return s.SyncDefault(ctx)
	}
	if !s.cfg.AllowCustomPath {
		return nil, ErrCustomPathDisabled
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workbook path: %w", err)
	}
	base, err := filepath.Abs(s.cfg.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s", ErrPathOutsideBase, path)
	}
	return s.run(ctx, abs)
}

// SyncUpload validates an uploaded workbook, writes it under the upload
// directory and reconciles it. size is the declared upload size in bytes.
func (s *Service) SyncUpload(ctx context.Context, filename string, size int64, src io.Reader) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrBadExtension, ext)
	}
	if size <= 0 {
		return nil, ErrUploadEmpty
	}
	if size > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrUploadTooLarge, size, s.cfg.MaxUploadBytes)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	dest := filepath.Join(s.cfg.UploadDir,
		time.Now().UTC().Format("20060102T150405")+"_"+filepath.Base(filename))

	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	// LimitReader guards against a dishonest declared size.
	if _, err := io.Copy(out, io.LimitReader(src, s.cfg.MaxUploadBytes+1)); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	if info, err := os.Stat(dest); err == nil && info.Size() > s.cfg.MaxUploadBytes {
		os.Remove(dest)
		return nil, fmt.Errorf("%w: limit %d", ErrUploadTooLarge, s.cfg.MaxUploadBytes)
	}

	s.log.Info("workbook uploaded", zap.String("file", dest), zap.Int64("bytes", size))
	return s.run(ctx, dest)
}

// run opens the workbook and replays it inside a single transaction. Either
// every sheet's upserts commit together or none do.
func (s *Service) run(ctx context.Context, path string) (*Result, error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	var result *Result
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var runErr error
		result, runErr = s.rec.Run(wb, NewStore(tx))
		return runErr
	})
	if err != nil {
		return nil, err
	}

	s.archiveWorkbook(ctx, wb.Path())
	return result, nil
}

// archiveWorkbook copies a successfully synced workbook into object storage.
// Archival is best effort: a failure is logged, never surfaced, since the
// sync itself already committed.
func (s *Service) archiveWorkbook(ctx context.Context, path string) {
	if s.archive == nil {
		return
	}

	bucket := s.archiveCfg.Bucket
	exists, err := s.archive.BucketExists(ctx, bucket)
	if err == nil && !exists {
		err = s.archive.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: s.archiveCfg.Region})
	}
	if err != nil {
		s.log.Warn("workbook archive unavailable", zap.Error(err))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		s.log.Warn("failed to open workbook for archiving", zap.Error(err))
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		s.log.Warn("failed to stat workbook for archiving", zap.Error(err))
		return
	}

	object := time.Now().UTC().Format("2006/01/02") + "/" + filepath.Base(path)
	if _, err := s.archive.PutObject(ctx, bucket, object, f, info.Size(), minio.PutObjectOptions{
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}); err != nil {
		s.log.Warn("failed to archive workbook", zap.Error(err))
		return
	}
	s.log.Info("workbook archived", zap.String("object", object))
}

// ArchivedWorkbook describes one archived workbook object.
type ArchivedWorkbook struct {
	Key      string    `json:"key"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// ListArchived returns the archived workbooks, newest last. It returns an
// empty list when archiving is disabled.
func (s *Service) ListArchived(ctx context.Context) ([]ArchivedWorkbook, error) {
	archived := []ArchivedWorkbook{}
	if s.archive == nil {
		return archived, nil
	}

	for obj := range s.archive.ListObjects(ctx, s.archiveCfg.Bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archived workbooks: %w", obj.Err)
		}
		archived = append(archived, ArchivedWorkbook{
			Key:      obj.Key,
			Size:     obj.Size,
			Modified: obj.LastModified,
		})
	}
	return archived, nil
}
