package pdfexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInterviewLetter(t *testing.T) {
	body, err := GenerateInterviewLetter(InterviewLetterData{
		CompanyName:    "Overseas Employment Promoters",
		ApplicantName:  "Ali Khan",
		CNIC:           "3520212345671",
		DemandPosition: "Electrician",
		RoundName:      "HR Round",
		InterviewLevel: "Internal-HR",
		InterviewDate:  "2026-03-01",
		StartTime:      "10:00",
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
