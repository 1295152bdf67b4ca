package applicant

import (
	"context"
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"recruitment-backend/db"
	applicantstore "recruitment-backend/lib/applicant/store"
	filestorage "recruitment-backend/lib/file-storage"
	jobapplicant "recruitment-backend/lib/job-applicant"
	"recruitment-backend/lib/utils/helpers"
	"recruitment-backend/models"
	applicantapimodels "recruitment-backend/models/api/applicant"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(data applicantapimodels.ApplicantData) (applicantapimodels.ApplicantView, error)
	Update(id string, data applicantapimodels.ApplicantData) (applicantapimodels.ApplicantView, error)
	GetByID(id string) (applicantapimodels.ApplicantView, error)
	List(search string) ([]applicantapimodels.ApplicantView, error)
	// ReplaceDocuments заменяет список документов и проверяет комплект у всех карточек кандидата
	ReplaceDocuments(id string, request applicantapimodels.DocumentsRequest, userID string) (applicantapimodels.ApplicantView, error)
	UploadDocument(ctx context.Context, id, documentID, fileName string, fileReader io.Reader, fileSize int64, contentType, userID string) (applicantapimodels.DocumentView, error)
	GetDocumentFile(ctx context.Context, id, documentID string) (body []byte, fileName string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, jobapplicant.Instance, filestorage.Instance)
}

func NewInstance(DB *gorm.DB, jobApplicants jobapplicant.Provider, files filestorage.Provider) Provider {
	return impl{
		db:            DB,
		store:         applicantstore.NewInstance(DB),
		jobApplicants: jobApplicants,
		files:         files,
	}
}

type impl struct {
	db            *gorm.DB
	store         applicantstore.Provider
	jobApplicants jobapplicant.Provider
	files         filestorage.Provider
}

func (i impl) Create(data applicantapimodels.ApplicantData) (applicantapimodels.ApplicantView, error) {
	data, err := normalize(data)
	if err != nil {
		return applicantapimodels.ApplicantView{}, err
	}
	var id string
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := applicantstore.NewInstance(tx)
		if err := checkUnique(store, data, ""); err != nil {
			return err
		}
		rec := dbmodels.Applicant{
			FirstName:          data.FirstName,
			LastName:           data.LastName,
			MiddleName:         data.MiddleName,
			Email:              data.Email,
			Phone:              data.Phone,
			DateOfBirth:        data.GetDateOfBirth(),
			CNIC:               data.CNIC,
			PassportExpiryDate: data.GetPassportExpiryDate(),
		}
		if data.PassportNumber != "" {
			rec.PassportNumber = &data.PassportNumber
		}
		id, err = store.Create(rec)
		return err
	})
	if err != nil {
		log.WithField("cnic", data.CNIC).WithError(err).Error("ошибка создания карточки человека")
		return applicantapimodels.ApplicantView{}, err
	}
	return i.GetByID(id)
}

func (i impl) Update(id string, data applicantapimodels.ApplicantData) (applicantapimodels.ApplicantView, error) {
	data, err := normalize(data)
	if err != nil {
		return applicantapimodels.ApplicantView{}, err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		store := applicantstore.NewInstance(tx)
		if err := checkUnique(store, data, id); err != nil {
			return err
		}
		var passportNumber *string
		if data.PassportNumber != "" {
			passportNumber = &data.PassportNumber
		}
		return store.Update(id, map[string]interface{}{
			"first_name":           data.FirstName,
			"last_name":            data.LastName,
			"middle_name":          data.MiddleName,
			"email":                data.Email,
			"phone":                data.Phone,
			"date_of_birth":        data.GetDateOfBirth(),
			"cnic":                 data.CNIC,
			"passport_number":      passportNumber,
			"passport_expiry_date": data.GetPassportExpiryDate(),
		})
	})
	if err != nil {
		log.WithField("applicant_id", id).WithError(err).Error("ошибка обновления карточки человека")
		return applicantapimodels.ApplicantView{}, err
	}
	return i.GetByID(id)
}

// normalize CNIC без разделителей, паспорт в верхнем регистре
func normalize(data applicantapimodels.ApplicantData) (applicantapimodels.ApplicantData, error) {
	data.CNIC = helpers.NormalizeCNIC(data.CNIC)
	if !helpers.IsValidCNIC(data.CNIC) {
		return data, models.NewErrValidation(models.ReasonInvalidCNIC, "CNIC должен состоять из 13 цифр")
	}
	data.PassportNumber = helpers.NormalizePassport(data.PassportNumber)
	if data.PassportNumber != "" && !helpers.IsValidPassport(data.PassportNumber) {
		return data, models.NewErrValidation(models.ReasonInvalidPassport, "номер паспорта должен состоять из 2 букв и 7 цифр")
	}
	return data, nil
}

func checkUnique(store applicantstore.Provider, data applicantapimodels.ApplicantData, excludeID string) error {
	exists, err := store.ExistsCNIC(data.CNIC, excludeID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности CNIC")
	}
	if exists {
		return models.NewErrPreconditionBlocked(models.ReasonDuplicateCNIC, "карточка с CNIC %s уже существует", data.CNIC)
	}
	if data.PassportNumber == "" {
		return nil
	}
	exists, err = store.ExistsPassport(data.PassportNumber, excludeID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности паспорта")
	}
	if exists {
		return models.NewErrPreconditionBlocked(models.ReasonDuplicatePassport, "карточка с паспортом %s уже существует", data.PassportNumber)
	}
	return nil
}

func (i impl) GetByID(id string) (applicantapimodels.ApplicantView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.WithField("applicant_id", id).WithError(err).Error("ошибка получения карточки человека")
		return applicantapimodels.ApplicantView{}, errors.New("ошибка получения карточки человека")
	}
	if rec == nil {
		return applicantapimodels.ApplicantView{}, models.NewErrNotFound("карточка человека", id)
	}
	return applicantapimodels.ApplicantConvert(*rec), nil
}

func (i impl) List(search string) ([]applicantapimodels.ApplicantView, error) {
	list, err := i.store.List(search)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка карточек")
		return nil, errors.New("ошибка получения списка карточек")
	}
	result := make([]applicantapimodels.ApplicantView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicantapimodels.ApplicantConvert(rec))
	}
	return result, nil
}

func (i impl) ReplaceDocuments(id string, request applicantapimodels.DocumentsRequest, userID string) (applicantapimodels.ApplicantView, error) {
	documents := make([]dbmodels.ApplicantDocument, 0, len(request.Documents))
	for _, doc := range request.Documents {
		documents = append(documents, doc.ToDB())
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := applicantstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения карточки человека")
		}
		if rec == nil {
			return models.NewErrNotFound("карточка человека", id)
		}
		err = store.ReplaceDocuments(id, documents)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения документов")
		}
		return i.jobApplicants.SyncDocumentsTx(tx, id, userID)
	})
	if err != nil {
		log.WithField("applicant_id", id).WithError(err).Error("ошибка обновления документов")
		return applicantapimodels.ApplicantView{}, err
	}
	return i.GetByID(id)
}

func (i impl) UploadDocument(ctx context.Context, id, documentID, fileName string, fileReader io.Reader, fileSize int64, contentType, userID string) (applicantapimodels.DocumentView, error) {
	if i.files == nil {
		return applicantapimodels.DocumentView{}, errors.New("хранилище файлов не настроено")
	}
	doc, err := i.getDocument(id, documentID)
	if err != nil {
		return applicantapimodels.DocumentView{}, err
	}
	key, err := i.files.UploadDocument(ctx, id, documentID, fileName, fileReader, fileSize, contentType)
	if err != nil {
		return applicantapimodels.DocumentView{}, err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		err := applicantstore.NewInstance(tx).UpdateDocument(documentID, map[string]interface{}{
			"file":      key,
			"file_name": fileName,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения ссылки на файл")
		}
		return i.jobApplicants.SyncDocumentsTx(tx, id, userID)
	})
	if err != nil {
		log.WithField("applicant_id", id).WithField("document_id", documentID).WithError(err).Error("ошибка загрузки документа")
		return applicantapimodels.DocumentView{}, err
	}
	doc.File = key
	doc.FileName = fileName
	return applicantapimodels.DocumentConvert(*doc), nil
}

func (i impl) GetDocumentFile(ctx context.Context, id, documentID string) ([]byte, string, error) {
	if i.files == nil {
		return nil, "", errors.New("хранилище файлов не настроено")
	}
	doc, err := i.getDocument(id, documentID)
	if err != nil {
		return nil, "", err
	}
	if doc.File == "" {
		return nil, "", models.NewErrNotFound("файл документа", documentID)
	}
	body, err := i.files.GetFile(ctx, doc.File)
	if err != nil {
		return nil, "", err
	}
	return body, doc.FileName, nil
}

func (i impl) getDocument(id, documentID string) (*dbmodels.ApplicantDocument, error) {
	doc, err := i.store.GetDocument(id, documentID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения документа")
	}
	if doc == nil {
		return nil, models.NewErrNotFound("документ", documentID)
	}
	return doc, nil
}
