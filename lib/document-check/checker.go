package documentcheck

import (
	"strings"

	dbmodels "recruitment-backend/models/db"
)

// Check документ считается недостающим, если тип указан, а файл не приложен.
// Типы возвращаются в порядке первого появления, без повторов.
func Check(documents []dbmodels.ApplicantDocument) (missing bool, missingTypes []string) {
	missingTypes = []string{}
	seen := map[string]bool{}
	for _, doc := range documents {
		docType := strings.TrimSpace(doc.DocumentType)
		if docType == "" || strings.TrimSpace(doc.File) != "" {
			continue
		}
		if seen[docType] {
			continue
		}
		seen[docType] = true
		missingTypes = append(missingTypes, docType)
	}
	return len(missingTypes) != 0, missingTypes
}

// ApplyPolicy применяет результат проверки к карточке кандидата.
// Флаг не снимается автоматически, заполненное вручную поле не перезаписывается.
func ApplyPolicy(rec *dbmodels.JobApplicant, missing bool, missingTypes []string) (changed bool) {
	if !missing {
		return false
	}
	if !rec.IsMissingDocuments {
		rec.IsMissingDocuments = true
		changed = true
	}
	if strings.TrimSpace(rec.MissingDocumentsName) == "" {
		rec.MissingDocumentsName = strings.Join(missingTypes, ", ")
		changed = true
	}
	return changed
}

// MissingRequired обязательные типы документов без приложенного файла
func MissingRequired(documents []dbmodels.ApplicantDocument, required []string) []string {
	attached := map[string]bool{}
	for _, doc := range documents {
		if doc.DocumentType != "" && strings.TrimSpace(doc.File) != "" {
			attached[strings.TrimSpace(doc.DocumentType)] = true
		}
	}
	result := make([]string, 0, len(required))
	for _, docType := range required {
		if !attached[docType] {
			result = append(result, docType)
		}
	}
	return result
}
