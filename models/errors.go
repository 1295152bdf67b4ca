package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type ReasonCode string

const (
	ReasonPipelineNotFound       ReasonCode = "PipelineNotFound"
	ReasonStageNotFound          ReasonCode = "StageNotFound"
	ReasonRecordNotFound         ReasonCode = "RecordNotFound"
	ReasonStageNotInPipeline     ReasonCode = "StageNotInPipeline"
	ReasonPipelineRequired       ReasonCode = "PipelineRequired"
	ReasonApplicantLocked        ReasonCode = "ApplicantLocked"
	ReasonStageBlocksInterview   ReasonCode = "StageBlocksInterview"
	ReasonInternalRequired       ReasonCode = "InternalInterviewRequired"
	ReasonDuplicateRound         ReasonCode = "DuplicateInterviewRound"
	ReasonEmployerHoldAfterFail  ReasonCode = "EmployerHoldAfterFail"
	ReasonResultAlreadySettled   ReasonCode = "ResultAlreadySettled"
	ReasonInterviewCancelled     ReasonCode = "InterviewCancelled"
	ReasonReadyForPipelineChecks ReasonCode = "ReadyForPipelineChecks"
	ReasonVisaProcessNotAllowed  ReasonCode = "VisaProcessNotAllowed"
	ReasonVisaStageNotCompleted  ReasonCode = "VisaStageNotCompleted"
	ReasonDuplicateCNIC          ReasonCode = "DuplicateCNIC"
	ReasonDuplicatePassport      ReasonCode = "DuplicatePassport"
	ReasonInvalidCNIC            ReasonCode = "InvalidCNIC"
	ReasonInvalidPassport        ReasonCode = "InvalidPassport"
	ReasonSelectionMismatch      ReasonCode = "SelectionMismatch"
	ReasonInvalidParameter       ReasonCode = "InvalidParameter"
	ReasonInternalError          ReasonCode = "InternalError"
)

// ErrNotFound запись (воронка, этап, кандидат, собеседование) не существует
type ErrNotFound struct {
	error
	Reason ReasonCode
}

func NewErrNotFound(resourceType, id string) *ErrNotFound {
	return &ErrNotFound{error: fmt.Errorf("%s '%s' не найден(а)", resourceType, id), Reason: ReasonRecordNotFound}
}

func NewErrPipelineNotFound(name string) *ErrNotFound {
	return &ErrNotFound{error: fmt.Errorf("воронка '%s' не найдена", name), Reason: ReasonPipelineNotFound}
}

func NewErrStageNotFound(pipelineName, stageName string) *ErrNotFound {
	return &ErrNotFound{error: fmt.Errorf("этап '%s' не найден в воронке '%s'", stageName, pipelineName), Reason: ReasonStageNotFound}
}

// ErrInvalidTransition переход запрещен, запись кандидата не изменяется
type ErrInvalidTransition struct {
	error
	Reason ReasonCode
}

func NewErrInvalidTransition(reason ReasonCode, format string, args ...any) *ErrInvalidTransition {
	return &ErrInvalidTransition{error: fmt.Errorf(format, args...), Reason: reason}
}

func NewErrStageNotInPipeline(stageName, pipelineName string) *ErrInvalidTransition {
	return NewErrInvalidTransition(ReasonStageNotInPipeline, "этап '%s' не принадлежит воронке '%s'", stageName, pipelineName)
}

// ErrPreconditionBlocked отказ по бизнес-правилу, повторять автоматически не нужно
type ErrPreconditionBlocked struct {
	error
	Reason  ReasonCode
	Details []string
}

func NewErrPreconditionBlocked(reason ReasonCode, format string, args ...any) *ErrPreconditionBlocked {
	return &ErrPreconditionBlocked{error: fmt.Errorf(format, args...), Reason: reason}
}

func NewErrPreconditionBlockedWithDetails(reason ReasonCode, message string, details []string) *ErrPreconditionBlocked {
	return &ErrPreconditionBlocked{
		error:   fmt.Errorf("%s: %s", message, strings.Join(details, "; ")),
		Reason:  reason,
		Details: details,
	}
}

// ErrConcurrencyConflict запись кандидата изменена параллельным запросом
type ErrConcurrencyConflict struct {
	error
}

func NewErrConcurrencyConflict(resourceType, id string) *ErrConcurrencyConflict {
	return &ErrConcurrencyConflict{fmt.Errorf("%s '%s' изменен(а) параллельно, повторите операцию", resourceType, id)}
}

// ErrValidation ошибка входных данных запроса
type ErrValidation struct {
	error
	Reason ReasonCode
}

func NewErrValidation(reason ReasonCode, format string, args ...any) *ErrValidation {
	return &ErrValidation{error: fmt.Errorf(format, args...), Reason: reason}
}

// ReasonOf код причины для типизированных ошибок движка, пустая строка для прочих
func ReasonOf(err error) ReasonCode {
	var notFound *ErrNotFound
	var invalid *ErrInvalidTransition
	var blocked *ErrPreconditionBlocked
	var conflict *ErrConcurrencyConflict
	var validation *ErrValidation
	switch {
	case errors.As(err, &notFound):
		return notFound.Reason
	case errors.As(err, &invalid):
		return invalid.Reason
	case errors.As(err, &blocked):
		return blocked.Reason
	case errors.As(err, &validation):
		return validation.Reason
	case errors.As(err, &conflict):
		return "ConcurrencyConflict"
	}
	return ""
}

func IsConcurrencyConflict(err error) bool {
	var conflict *ErrConcurrencyConflict
	return errors.As(err, &conflict)
}

// IsTransitionRejection переход отклонен правилами воронки, а не сбоем хранилища
func IsTransitionRejection(err error) bool {
	var invalid *ErrInvalidTransition
	var blocked *ErrPreconditionBlocked
	return errors.As(err, &invalid) || errors.As(err, &blocked)
}
