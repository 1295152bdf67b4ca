package xlsexport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"recruitment-backend/models"
	interviewapimodels "recruitment-backend/models/api/interview"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
)

func TestExportBulkReport(t *testing.T) {
	buf, err := impl{}.ExportBulkReport(interviewapimodels.BulkReport{
		Created: []interviewapimodels.BulkCreated{{JobApplicantID: "ja-1", InterviewID: "int-1"}},
		Failed:  []interviewapimodels.BulkFailure{{JobApplicantID: "ja-3", Reason: models.ReasonDuplicateRound, Message: "дубль"}},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Массовое назначение")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "ja-1", rows[1][0])
	require.Equal(t, "DuplicateInterviewRound", rows[2][3])
}

func TestExportJobApplicants(t *testing.T) {
	buf, err := impl{}.ExportJobApplicants([]jobapplicantapimodels.JobApplicantView{
		{ApplicantName: "Ali Khan", CNIC: "3520212345671", Pipeline: "Interviews", CurrentStageName: "Screening", IsMissingDocuments: true},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Кандидаты")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"Ali Khan", "3520212345671", "", "", "Interviews", "Screening", "да", "", "нет"}, rows[1])
}
