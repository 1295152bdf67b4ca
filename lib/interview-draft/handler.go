package interviewdraft

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruitment-backend/db"
	interviewdraftstore "recruitment-backend/lib/interview-draft/store"
	jobapplicantstore "recruitment-backend/lib/job-applicant/store"
	baseworker "recruitment-backend/lib/utils/base-worker"
	"recruitment-backend/models"
	interviewapimodels "recruitment-backend/models/api/interview"
	dbmodels "recruitment-backend/models/db"
)

// Provider короткоживущий черновик собеседования между шагами формы, ключ - токен
type Provider interface {
	Create(request interviewapimodels.DraftRequest, userID string) (interviewapimodels.DraftView, error)
	Get(token string) (interviewapimodels.DraftView, error)
	// Resolve кандидат по токену, используется при создании собеседования
	Resolve(tx *gorm.DB, token string) (*dbmodels.InterviewDraft, error)
	Delete(tx *gorm.DB, token string) error
	Cleanup(ctx context.Context) (int64, error)
	StartCleanup(ctx context.Context, interval time.Duration)
}

var Instance Provider

func NewHandler(ttl time.Duration) {
	Instance = NewInstance(db.DB, ttl)
}

func NewInstance(DB *gorm.DB, ttl time.Duration) Provider {
	return impl{
		db:    DB,
		store: interviewdraftstore.NewInstance(DB),
		ttl:   ttl,
		now:   time.Now,
	}
}

type impl struct {
	db    *gorm.DB
	store interviewdraftstore.Provider
	ttl   time.Duration
	now   func() time.Time
}

func (i impl) Create(request interviewapimodels.DraftRequest, userID string) (interviewapimodels.DraftView, error) {
	candidate, err := jobapplicantstore.NewInstance(i.db).GetByID(request.JobApplicantID)
	if err != nil {
		return interviewapimodels.DraftView{}, errors.Wrap(err, "ошибка получения кандидата")
	}
	if candidate == nil {
		return interviewapimodels.DraftView{}, models.NewErrNotFound("кандидат", request.JobApplicantID)
	}
	now := i.now()
	rec := dbmodels.InterviewDraft{
		Token:            uuid.NewString(),
		JobApplicantID:   request.JobApplicantID,
		InterviewRoundID: request.InterviewRoundID,
		UserID:           userID,
		CreatedAt:        now,
		ExpiresAt:        now.Add(i.ttl),
	}
	if err = i.store.Create(rec); err != nil {
		return interviewapimodels.DraftView{}, errors.Wrap(err, "ошибка сохранения черновика собеседования")
	}
	return interviewapimodels.DraftConvert(rec), nil
}

func (i impl) Get(token string) (interviewapimodels.DraftView, error) {
	rec, err := i.Resolve(i.db, token)
	if err != nil {
		return interviewapimodels.DraftView{}, err
	}
	return interviewapimodels.DraftConvert(*rec), nil
}

func (i impl) Resolve(tx *gorm.DB, token string) (*dbmodels.InterviewDraft, error) {
	rec, err := interviewdraftstore.NewInstance(tx).Get(token, i.now())
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения черновика собеседования")
	}
	if rec == nil {
		return nil, models.NewErrNotFound("черновик собеседования", token)
	}
	return rec, nil
}

func (i impl) Delete(tx *gorm.DB, token string) error {
	return interviewdraftstore.NewInstance(tx).Delete(token)
}

func (i impl) Cleanup(ctx context.Context) (int64, error) {
	return i.store.DeleteExpired(i.now())
}

func (i impl) StartCleanup(ctx context.Context, interval time.Duration) {
	worker := baseworker.NewInstance("InterviewDraftCleanup", interval, interval)
	worker.Start(ctx, i.Cleanup)
	log.WithField("interval", interval.String()).Info("очистка черновиков собеседований запущена")
}
