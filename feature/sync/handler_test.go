package sync

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"estimate-manager/core/storage"
	"estimate-manager/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, cfg Config, archive storage.Client) *fiber.App {
	t.Helper()
	app := fiber.New()
	svc := NewService(newTestDB(t), cfg, archive, storage.Config{Bucket: "test-bucket"}, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleSyncExcel(t *testing.T) {
	source := writeWorkbook(t, map[string][][]any{
		SheetCustomers: {{"C-001", nil, "顧客"}},
		SheetProjects:  {{"P-001", "C-001", "顧客", "案件"}},
	})
	app := setupTestApp(t, Config{SourcePath: source}, nil)

	req := httptest.NewRequest("POST", "/sync/excel", nil)
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.CustomersUpserted)
	assert.Equal(t, 1, result.ProjectsUpserted)
}

func TestHandleSyncExcelNotFound(t *testing.T) {
	app := setupTestApp(t, Config{SourcePath: filepath.Join(t.TempDir(), "gone.xlsm")}, nil)

	req := httptest.NewRequest("POST", "/sync/excel", nil)
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleSyncExcelCustomPathRejected(t *testing.T) {
	app := setupTestApp(t, Config{}, nil)

	body, err := json.Marshal(SyncRequest{WorkbookPath: "/etc/passwd"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/sync/excel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func newUploadRequest(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandleSyncUpload(t *testing.T) {
	source := writeWorkbook(t, map[string][][]any{
		SheetCustomers: {{"C-001", nil, "アップロード顧客"}},
	})
	data, err := os.ReadFile(source)
	require.NoError(t, err)

	app := setupTestApp(t, Config{MaxUploadBytes: 1 << 20, UploadDir: t.TempDir()}, nil)

	body, contentType := newUploadRequest(t, "見積.xlsm", data)
	req := httptest.NewRequest("POST", "/sync/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.CustomersUpserted)
}

func TestHandleSyncUploadBadExtension(t *testing.T) {
	app := setupTestApp(t, Config{MaxUploadBytes: 1 << 20, UploadDir: t.TempDir()}, nil)

	body, contentType := newUploadRequest(t, "estimates.csv", []byte("a,b"))
	req := httptest.NewRequest("POST", "/sync/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleSyncUploadTooLarge(t *testing.T) {
	app := setupTestApp(t, Config{MaxUploadBytes: 8, UploadDir: t.TempDir()}, nil)

	body, contentType := newUploadRequest(t, "estimates.xlsx", bytes.Repeat([]byte("x"), 64))
	req := httptest.NewRequest("POST", "/sync/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 413, resp.StatusCode)
}

func TestHandleListArchive(t *testing.T) {
	mockClient := new(mocks.Client)
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Key: "2025/06/01/見積.xlsm", Size: 2048, LastModified: time.Now()}
	close(ch)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	app := setupTestApp(t, Config{}, mockClient)

	req := httptest.NewRequest("GET", "/sync/archive", nil)
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var archived []ArchivedWorkbook
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&archived))
	require.Len(t, archived, 1)
	assert.Equal(t, "2025/06/01/見積.xlsm", archived[0].Key)
	assert.Equal(t, int64(2048), archived[0].Size)
}

func TestHandleListArchiveDisabled(t *testing.T) {
	app := setupTestApp(t, Config{}, nil)

	req := httptest.NewRequest("GET", "/sync/archive", nil)
	resp, err := app.Test(req, 5000)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var archived []ArchivedWorkbook
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&archived))
	assert.Empty(t, archived)
}
