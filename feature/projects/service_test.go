package projects

import (
	"context"
	"testing"

	"estimate-manager/core/database"
	"estimate-manager/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, customerID, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Customer{
		CustomerID:   customerID,
		CustomerName: name,
		Status:       models.DefaultCustomerStatus,
	}).Error)
}

func TestCreateProject(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "C-001", "矢島不動産管理株式会社")
	svc := NewService(db, zap.NewNop())

	project, err := svc.CreateProject(context.Background(), CreateInput{
		CustomerID:  "C-001",
		ProjectName: "外壁塗装工事",
		SiteAddress: " 東京都台東区 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "P-001", project.ProjectID)
	assert.Equal(t, "P-001_外壁塗装工事", project.ProjectSheetName)
	assert.Equal(t, "矢島不動産管理株式会社", project.CustomerName)
	assert.Equal(t, models.DefaultOwnerName, project.OwnerName)
	assert.Equal(t, models.DefaultMarginRate, project.TargetMarginRate)
	assert.Equal(t, models.DefaultProjectStatus, project.ProjectStatus)
	if assert.NotNil(t, project.SiteAddress) {
		assert.Equal(t, "東京都台東区", *project.SiteAddress)
	}
}

func TestCreateProjectAllocatesNextID(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "C-001", "顧客")
	require.NoError(t, db.Create(&models.Project{
		ProjectID:        "P-003",
		ProjectSheetName: "P-003_既存",
		CustomerID:       "C-001",
		CustomerName:     "顧客",
		ProjectName:      "既存",
		OwnerName:        models.DefaultOwnerName,
		TargetMarginRate: models.DefaultMarginRate,
		ProjectStatus:    models.DefaultProjectStatus,
	}).Error)
	svc := NewService(db, zap.NewNop())

	project, err := svc.CreateProject(context.Background(), CreateInput{
		CustomerID:  "C-001",
		ProjectName: "次の案件",
	})
	require.NoError(t, err)
	assert.Equal(t, "P-004", project.ProjectID)
}

func TestCreateProjectSheetNameDisambiguated(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "C-001", "顧客")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	// Force a sheet-name collision: an existing row already holds the name
	// the next allocation would produce.
	require.NoError(t, db.Create(&models.Project{
		ProjectID:        "P-900",
		ProjectSheetName: "P-001_同名案件",
		CustomerID:       "C-001",
		CustomerName:     "顧客",
		ProjectName:      "同名案件",
		OwnerName:        models.DefaultOwnerName,
		TargetMarginRate: models.DefaultMarginRate,
		ProjectStatus:    models.DefaultProjectStatus,
	}).Error)

	project, err := svc.CreateProject(ctx, CreateInput{
		CustomerID:  "C-001",
		ProjectName: "同名案件",
	})
	require.NoError(t, err)
	assert.Equal(t, "P-001_同名案件_2", project.ProjectSheetName)
}

func TestCreateProjectValidation(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "C-001", "顧客")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, CreateInput{CustomerID: "C-404", ProjectName: "案件"})
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	_, err = svc.CreateProject(ctx, CreateInput{CustomerID: "C-001", ProjectName: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestListProjectsFilters(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "C-001", "顧客A")
	seedCustomer(t, db, "C-002", "顧客B")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	for _, seed := range []struct {
		customerID string
		name       string
		status     string
	}{
		{"C-001", "案件1", "①リード"},
		{"C-001", "案件2", "⑤完工"},
		{"C-002", "案件3", "①リード"},
	} {
		project, err := svc.CreateProject(ctx, CreateInput{CustomerID: seed.customerID, ProjectName: seed.name})
		require.NoError(t, err)
		require.NoError(t, db.Model(project).Update("project_status", seed.status).Error)
	}

	all, err := svc.ListProjects(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	// Ordered by business key.
	assert.Equal(t, "P-001", all.Items[0].ProjectID)

	leads, err := svc.ListProjects(ctx, ListFilter{Status: "①リード"})
	require.NoError(t, err)
	assert.Equal(t, 2, leads.Total)

	byCustomer, err := svc.ListProjects(ctx, ListFilter{CustomerID: "C-002"})
	require.NoError(t, err)
	assert.Equal(t, 1, byCustomer.Total)
	assert.Equal(t, "案件3", byCustomer.Items[0].ProjectName)

	paged, err := svc.ListProjects(ctx, ListFilter{Offset: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, paged.Total)
	assert.Equal(t, "P-003", paged.Items[0].ProjectID)
}

func TestGetProject(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "C-001", "顧客")
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, CreateInput{CustomerID: "C-001", ProjectName: "案件"})
	require.NoError(t, err)

	got, err := svc.GetProject(ctx, created.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, created.ProjectSheetName, got.ProjectSheetName)

	_, err = svc.GetProject(ctx, "P-404")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
