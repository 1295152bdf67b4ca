package applicantstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"recruitment-backend/models"
	dbmodels "recruitment-backend/models/db"
)

type Provider interface {
	Create(data dbmodels.Applicant) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.Applicant, err error)
	List(search string) ([]dbmodels.Applicant, error)
	// ExistsCNIC CNIC занят другой карточкой
	ExistsCNIC(cnic, excludeID string) (bool, error)
	ExistsPassport(passportNumber, excludeID string) (bool, error)
	ReplaceDocuments(applicantID string, documents []dbmodels.ApplicantDocument) error
	GetDocument(applicantID, documentID string) (*dbmodels.ApplicantDocument, error)
	UpdateDocument(documentID string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Applicant) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Applicant{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewErrNotFound("карточка кандидата", id)
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Applicant, error) {
	rec := dbmodels.Applicant{}
	err := i.db.
		Model(&dbmodels.Applicant{}).
		Where("id = ?", id).
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
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

func (i impl) List(search string) ([]dbmodels.Applicant, error) {
	list := []dbmodels.Applicant{}
	tx := i.db.Model(&dbmodels.Applicant{})
	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where("cnic like ? or first_name like ? or last_name like ? or passport_number like ?", like, like, like, like)
	}
	err := tx.
		Order("last_name, first_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistsCNIC(cnic, excludeID string) (bool, error) {
	return i.exists(i.db.Where("cnic = ?", cnic), excludeID)
}

func (i impl) ExistsPassport(passportNumber, excludeID string) (bool, error) {
	return i.exists(i.db.Where("passport_number = ?", passportNumber), excludeID)
}

func (i impl) exists(tx *gorm.DB, excludeID string) (bool, error) {
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var rowCount int64
	err := tx.
		Model(&dbmodels.Applicant{}).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}

func (i impl) ReplaceDocuments(applicantID string, documents []dbmodels.ApplicantDocument) error {
	err := i.db.
		Where("applicant_id = ?", applicantID).
		Delete(&dbmodels.ApplicantDocument{}).
		Error
	if err != nil {
		return err
	}
	if len(documents) == 0 {
		return nil
	}
	for k := range documents {
		documents[k].ApplicantID = applicantID
	}
	return i.db.
		Create(&documents).
		Error
}

func (i impl) GetDocument(applicantID, documentID string) (*dbmodels.ApplicantDocument, error) {
	rec := dbmodels.ApplicantDocument{}
	err := i.db.
		Where("applicant_id = ?", applicantID).
		Where("id = ?", documentID).
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

func (i impl) UpdateDocument(documentID string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.ApplicantDocument{}).
		Where("id = ?", documentID).
		Updates(updMap).
		Error
}
