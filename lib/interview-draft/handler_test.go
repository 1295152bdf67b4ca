package interviewdraft

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	interviewdraftstore "recruitment-backend/lib/interview-draft/store"
	testdb "recruitment-backend/lib/utils/test-db"
	"recruitment-backend/models"
	interviewapimodels "recruitment-backend/models/api/interview"
)

func TestDraft(t *testing.T) {
	DB := testdb.New(t)
	applicant := testdb.NewApplicant(t, DB, "3520212345671")
	ja := testdb.NewJobApplicant(t, DB, applicant.ID)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	handler := impl{
		db:    DB,
		store: interviewdraftstore.NewInstance(DB),
		ttl:   time.Hour,
		now:   func() time.Time { return now },
	}

	t.Run(`черновик создается и читается по токену`, func(t *testing.T) {
		draft, err := handler.Create(interviewapimodels.DraftRequest{JobApplicantID: ja.ID}, "user-1")
		require.NoError(t, err)
		require.NotEmpty(t, draft.Token)

		got, err := handler.Get(draft.Token)
		require.NoError(t, err)
		require.Equal(t, ja.ID, got.JobApplicantID)
	})
	t.Run(`неизвестный кандидат`, func(t *testing.T) {
		_, err := handler.Create(interviewapimodels.DraftRequest{JobApplicantID: "missing"}, "")
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))
	})
	t.Run(`просроченный черновик недоступен и удаляется`, func(t *testing.T) {
		draft, err := handler.Create(interviewapimodels.DraftRequest{JobApplicantID: ja.ID}, "")
		require.NoError(t, err)

		later := handler
		later.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err = later.Get(draft.Token)
		require.Equal(t, models.ReasonRecordNotFound, models.ReasonOf(err))

		removed, err := later.Cleanup(context.Background())
		require.NoError(t, err)
		require.EqualValues(t, 2, removed)
	})
}
