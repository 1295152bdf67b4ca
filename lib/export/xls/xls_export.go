package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	interviewapimodels "recruitment-backend/models/api/interview"
	jobapplicantapimodels "recruitment-backend/models/api/jobapplicant"
)

type Provider interface {
	ExportBulkReport(report interviewapimodels.BulkReport) (*bytes.Buffer, error)
	ExportJobApplicants(list []jobapplicantapimodels.JobApplicantView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

var bulkHeaders = []string{"Кандидат", "Результат", "Собеседование", "Причина", "Сообщение"}

var jobApplicantHeaders = []string{"ФИО", "CNIC", "Заявка", "Позиция", "Воронка", "Этап", "Нет документов", "Недостающие документы", "Готов к воронке"}

func (i impl) ExportBulkReport(report interviewapimodels.BulkReport) (*bytes.Buffer, error) {
	return export("Массовое назначение", bulkHeaders, func(f *excelize.File, sheet string, row int) error {
		if err := applyDataCellStyle(f, sheet, 1, row+1, len(bulkHeaders), row+len(report.Created)+len(report.Failed)); err != nil {
			return err
		}
		for _, item := range report.Created {
			row++
			if err := writeRow(f, sheet, row, item.JobApplicantID, "создано", item.InterviewID); err != nil {
				return err
			}
		}
		for _, item := range report.Failed {
			row++
			if err := writeRow(f, sheet, row, item.JobApplicantID, "отказ", "", string(item.Reason), item.Message); err != nil {
				return err
			}
		}
		return nil
	})
}

func (i impl) ExportJobApplicants(list []jobapplicantapimodels.JobApplicantView) (*bytes.Buffer, error) {
	return export("Кандидаты", jobApplicantHeaders, func(f *excelize.File, sheet string, row int) error {
		if err := applyDataCellStyle(f, sheet, 1, row+1, len(jobApplicantHeaders), row+len(list)); err != nil {
			return err
		}
		for _, item := range list {
			row++
			err := writeRow(f, sheet, row,
				item.ApplicantName,
				item.CNIC,
				item.DemandID,
				item.DemandPosition,
				item.Pipeline,
				item.CurrentStageName,
				yesNo(item.IsMissingDocuments),
				item.MissingDocumentsName,
				yesNo(item.ReadyForPipeline))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func export(sheetName string, headers []string, writeData func(f *excelize.File, sheet string, row int) error) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, headers)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if err = writeData(f, sheet, row); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	return f.WriteToBuffer()
}

func yesNo(value bool) string {
	if value {
		return "да"
	}
	return "нет"
}
