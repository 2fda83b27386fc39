package sync

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"estimate-manager/core/models"
	"estimate-manager/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	return NewService(newTestDB(t), cfg, nil, storage.Config{}, zap.NewNop())
}

func TestSyncPathDisabledByDefault(t *testing.T) {
	svc := newTestService(t, Config{})

	_, err := svc.SyncPath(context.Background(), "somewhere/else.xlsx")
	assert.ErrorIs(t, err, ErrCustomPathDisabled)
}

func TestSyncPathOutsideBase(t *testing.T) {
	base := t.TempDir()
	outside := writeWorkbook(t, map[string][][]any{
		SheetCustomers: {{"C-001", nil, "顧客"}},
	})
	svc := newTestService(t, Config{AllowCustomPath: true, BaseDir: base})

	_, err := svc.SyncPath(context.Background(), outside)
	assert.ErrorIs(t, err, ErrPathOutsideBase)

	_, err = svc.SyncPath(context.Background(), filepath.Join(base, "..", "escape.xlsx"))
	assert.ErrorIs(t, err, ErrPathOutsideBase)
}

func TestSyncPathInsideBase(t *testing.T) {
	base := t.TempDir()
	source := writeWorkbook(t, map[string][][]any{
		SheetCustomers: {{"C-001", nil, "顧客"}},
	})
	inside := filepath.Join(base, "estimates.xlsx")
	data, err := os.ReadFile(source)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(inside, data, 0o644))

	svc := newTestService(t, Config{AllowCustomPath: true, BaseDir: base})

	result, err := svc.SyncPath(context.Background(), inside)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CustomersUpserted)
	assert.Equal(t, inside, result.WorkbookPath)
}

func TestSyncBlankPathFallsBackToSource(t *testing.T) {
	source := writeWorkbook(t, map[string][][]any{
		SheetCustomers: {{"C-001", nil, "顧客"}},
	})
	svc := newTestService(t, Config{SourcePath: source})

	result, err := svc.SyncPath(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, 1, result.CustomersUpserted)
}

func TestSyncDefaultMissingWorkbook(t *testing.T) {
	svc := newTestService(t, Config{SourcePath: filepath.Join(t.TempDir(), "gone.xlsm")})

	_, err := svc.SyncDefault(context.Background())
	assert.ErrorIs(t, err, ErrWorkbookNotFound)
}

func TestSyncUploadValidation(t *testing.T) {
	svc := newTestService(t, Config{MaxUploadBytes: 1024, UploadDir: t.TempDir()})
	ctx := context.Background()

	_, err := svc.SyncUpload(ctx, "estimates.csv", 10, strings.NewReader("a,b"))
	assert.ErrorIs(t, err, ErrBadExtension)

	_, err = svc.SyncUpload(ctx, "estimates.xlsx", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUploadEmpty)

	_, err = svc.SyncUpload(ctx, "estimates.xlsx", 2048, strings.NewReader("too big"))
	assert.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestSyncUpload(t *testing.T) {
	uploadDir := t.TempDir()
	source := writeWorkbook(t, map[string][][]any{
		SheetCustomers: {{"C-001", nil, "アップロード顧客"}},
	})
	data, err := os.ReadFile(source)
	require.NoError(t, err)

	svc := newTestService(t, Config{MaxUploadBytes: 1 << 20, UploadDir: uploadDir})

	result, err := svc.SyncUpload(context.Background(), "見積.xlsm", int64(len(data)), strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CustomersUpserted)

	// The upload is kept under the upload directory.
	entries, err := os.ReadDir(uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSyncRollsBackOnStoreFailure(t *testing.T) {
	db := newTestDB(t)
	source := writeWorkbook(t, map[string][][]any{
		SheetCustomers: {{"C-001", nil, "顧客"}},
		SheetInvoices:  {{"INV-001", "P-001", nil, nil, nil, nil, 1000}},
	})
	svc := NewService(db, Config{SourcePath: source}, nil, storage.Config{}, zap.NewNop())

	// Break the invoice table so the pass fails after customers were written.
	require.NoError(t, db.Migrator().DropTable(&models.Invoice{}))

	_, err := svc.SyncDefault(context.Background())
	require.Error(t, err)

	var customers int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	assert.Equal(t, int64(0), customers)
}
