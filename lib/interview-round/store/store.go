package interviewroundstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.InterviewRound) (id string, err error)
	GetByID(id string) (*dbmodels.InterviewRound, error)
	GetByName(roundName string) (*dbmodels.InterviewRound, error)
	List() ([]dbmodels.InterviewRound, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.InterviewRound) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.InterviewRound, error) {
	return i.get(i.db.Where("id = ?", id))
}

func (i impl) GetByName(roundName string) (*dbmodels.InterviewRound, error) {
	return i.get(i.db.Where("round_name = ?", roundName))
}

func (i impl) get(tx *gorm.DB) (*dbmodels.InterviewRound, error) {
	rec := dbmodels.InterviewRound{}
	err := tx.
		Model(&dbmodels.InterviewRound{}).
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

func (i impl) List() ([]dbmodels.InterviewRound, error) {
	list := []dbmodels.InterviewRound{}
	err := i.db.
		Order("round_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
