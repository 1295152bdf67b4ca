package interviewdraftstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.InterviewDraft) error
	// Get только действующий черновик, просроченный считается отсутствующим
	Get(token string, now time.Time) (*dbmodels.InterviewDraft, error)
	Delete(token string) error
	DeleteExpired(now time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.InterviewDraft) error {
	return i.db.
		Create(&rec).
		Error
}

func (i impl) Get(token string, now time.Time) (*dbmodels.InterviewDraft, error) {
	rec := dbmodels.InterviewDraft{}
	err := i.db.
		Where("token = ?", token).
		Where("expires_at > ?", now).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Delete(token string) error {
	return i.db.
		Where("token = ?", token).
		Delete(&dbmodels.InterviewDraft{}).
		Error
}

func (i impl) DeleteExpired(now time.Time) (int64, error) {
	tx := i.db.
		Where("expires_at <= ?", now).
		Delete(&dbmodels.InterviewDraft{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
