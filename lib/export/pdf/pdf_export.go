package pdfexport

import (
	"bytes"
	"html/template"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// InterviewLetterData данные письма-приглашения на собеседование
type InterviewLetterData struct {
	CompanyName    string
	ApplicantName  string
	CNIC           string
	PassportNumber string
	DemandPosition string
	JobOpening     string
	RoundName      string
	InterviewLevel string
	InterviewDate  string
	StartTime      string
	EndTime        string
}

const interviewLetterTemplate = `<b>Interview Call Letter</b><br><br>
Dear {{.ApplicantName}},<br><br>
You are invited to the <b>{{.RoundName}}</b> ({{.InterviewLevel}}) interview
{{if .DemandPosition}}for the position of <b>{{.DemandPosition}}</b>{{end}}
on <b>{{.InterviewDate}}</b>{{if .StartTime}} at <b>{{.StartTime}}</b>{{end}}{{if .EndTime}} - {{.EndTime}}{{end}}.<br><br>
CNIC: {{.CNIC}}<br>
{{if .PassportNumber}}Passport: {{.PassportNumber}}<br>{{end}}
<br>Please bring your original CNIC, passport and CV.<br><br>
{{.CompanyName}}`

func GenerateInterviewLetter(data InterviewLetterData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateInterviewLetter panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	tpl, err := template.New("interview_letter").Parse(interviewLetterTemplate)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	err = tpl.Execute(buf, data)
	if err != nil {
		return nil, err
	}
	_, lineHt := pdf.GetFontSize()
	html := pdf.HTMLBasicNew()
	html.Write(lineHt*1.5, tr(buf.String()))

	buf = new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
