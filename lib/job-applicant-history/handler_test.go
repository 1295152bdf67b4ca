package jobapplicanthistoryhandler_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	jobapplicanthistoryhandler "recruitment-backend/lib/job-applicant-history"
	testdb "recruitment-backend/lib/utils/test-db"
	apimodels "recruitment-backend/models/api"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
	dbmodels "recruitment-backend/models/db"
)

func TestHistory(t *testing.T) {
	DB := testdb.New(t)
	applicant := testdb.NewApplicant(t, DB, "3520212345671")
	jobApplicant := testdb.NewJobApplicant(t, DB, applicant.ID)
	handler := jobapplicanthistoryhandler.NewInstance(DB)

	require.NoError(t, handler.SaveTx(DB, jobApplicant.ID, "", dbmodels.HistoryTypeAdded, dbmodels.ApplicantChanges{
		Description: "Кандидат добавлен",
	}))
	require.NoError(t, handler.SaveTx(DB, jobApplicant.ID, "hr-1", dbmodels.HistoryTypeStageChange, dbmodels.ApplicantChanges{
		Description: "Переход на этап Screening",
		Data: []dbmodels.ApplicantChange{
			{Field: "current_stage", OldValue: nil, NewValue: "Screening"},
		},
	}))

	t.Run(`все действия по кандидату`, func(t *testing.T) {
		list, rowCount, err := handler.List(jobApplicant.ID, jobapplicantapimodels.HistoryFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 2, rowCount)
		require.Len(t, list, 2)
		require.Equal(t, "Система", list[0].UserName)
		require.Equal(t, "", list[0].UserID)
		require.Equal(t, "hr-1", list[1].UserID)
		require.Len(t, list[1].Changes.Data, 1)
		require.Equal(t, "Screening", list[1].Changes.Data[0].NewValue)
	})
	t.Run(`фильтр по типу действия`, func(t *testing.T) {
		list, rowCount, err := handler.List(jobApplicant.ID, jobapplicantapimodels.HistoryFilter{
			ActionType: dbmodels.HistoryTypeStageChange,
		})
		require.NoError(t, err)
		require.EqualValues(t, 1, rowCount)
		require.Len(t, list, 1)
	})
	t.Run(`страница за пределами списка`, func(t *testing.T) {
		list, rowCount, err := handler.List(jobApplicant.ID, jobapplicantapimodels.HistoryFilter{
			Pagination: apimodels.Pagination{Page: 5, Limit: 1},
		})
		require.NoError(t, err)
		require.EqualValues(t, 2, rowCount)
		require.Empty(t, list)
	})
	t.Run(`постраничный вывод`, func(t *testing.T) {
		list, _, err := handler.List(jobApplicant.ID, jobapplicantapimodels.HistoryFilter{
			Pagination: apimodels.Pagination{Page: 2, Limit: 1},
		})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, dbmodels.HistoryTypeStageChange, list[0].ActionType)
	})
}
