package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"recruitment-backend/db"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	dbmodels "recruitment-backend/models/db"
)

// New отдельная БД sqlite в памяти со структурой и справочником воронок
func New(t *testing.T) *gorm.DB {
	t.Helper()
	DB, err := db.Open(db.ConnectParams{
		Type: db.TypeSqlite,
		Name: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	sqlDB, err := DB.DB()
	require.NoError(t, err)
	// одно соединение: база в памяти живет, пока оно открыто
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrateDB(DB))

	defs, err := pipelinedefinitions.Load("")
	require.NoError(t, err)
	_, err = pipelinedefinitions.Setup(DB, defs)
	require.NoError(t, err)
	return DB
}

func NewApplicant(t *testing.T, DB *gorm.DB, cnic string) dbmodels.Applicant {
	t.Helper()
	rec := dbmodels.Applicant{
		FirstName: "Ali",
		LastName:  "Khan",
		CNIC:      cnic,
	}
	require.NoError(t, DB.Create(&rec).Error)
	return rec
}

// NewJobApplicant кандидат без воронки
func NewJobApplicant(t *testing.T, DB *gorm.DB, applicantID string) dbmodels.JobApplicant {
	t.Helper()
	rec := dbmodels.JobApplicant{
		ApplicantID:    applicantID,
		DemandID:       "DEM-0001",
		DemandPosition: "Electrician",
	}
	require.NoError(t, DB.Omit("Applicant", "CurrentStage").Create(&rec).Error)
	return rec
}
