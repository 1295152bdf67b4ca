package interviewround

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruitment-backend/db"
	interviewroundstore "recruitment-backend/lib/interview-round/store"
	"recruitment-backend/models"
	interviewapimodels "recruitment-backend/models/api/interview"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(data interviewapimodels.RoundData) (id string, err error)
	GetByID(id string) (interviewapimodels.RoundView, error)
	List() ([]interviewapimodels.RoundView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store: interviewroundstore.NewInstance(DB),
	}
}

type impl struct {
	store interviewroundstore.Provider
}

func (i impl) Create(data interviewapimodels.RoundData) (id string, err error) {
	exist, err := i.store.GetByName(data.RoundName)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки раунда собеседования")
	}
	if exist != nil {
		return "", models.NewErrValidation(models.ReasonInvalidParameter, "раунд собеседования '%s' уже существует", data.RoundName)
	}
	rec := dbmodels.InterviewRound{
		RoundName:      data.RoundName,
		InterviewLevel: data.InterviewLevel,
		Description:    data.Description,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.WithError(err).WithField("round_name", data.RoundName).Error("ошибка создания раунда собеседования")
		return "", errors.New("ошибка создания раунда собеседования")
	}
	return id, nil
}

func (i impl) GetByID(id string) (interviewapimodels.RoundView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return interviewapimodels.RoundView{}, errors.Wrap(err, "ошибка получения раунда собеседования")
	}
	if rec == nil {
		return interviewapimodels.RoundView{}, models.NewErrNotFound("раунд собеседования", id)
	}
	return interviewapimodels.RoundConvert(*rec), nil
}

func (i impl) List() ([]interviewapimodels.RoundView, error) {
	list, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка раундов собеседований")
	}
	result := make([]interviewapimodels.RoundView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.RoundConvert(rec))
	}
	return result, nil
}
