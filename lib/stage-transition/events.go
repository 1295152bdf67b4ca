package stagetransition

import (
	"fmt"

	"recruitment-backend/models"
)

// Event типизированное событие, которое переводит кандидата между воронками и этапами
type Event interface {
	fmt.Stringer
	isEvent()
}

// AssignPipeline переводит кандидата на этап входа указанной воронки
type AssignPipeline struct {
	PipelineName string
}

// ClearPipeline убирает кандидата из воронки
type ClearPipeline struct{}

// MoveToStage переводит кандидата на этап текущей воронки
type MoveToStage struct {
	StageName string
}

// ReadyForPipelineOn включение признака "готов к воронке", равносильно AssignPipeline(Interviews)
type ReadyForPipelineOn struct{}

// ReadyForPipelineOff выключение признака "готов к воронке", равносильно ClearPipeline
type ReadyForPipelineOff struct{}

func (AssignPipeline) isEvent()      {}
func (ClearPipeline) isEvent()       {}
func (MoveToStage) isEvent()         {}
func (ReadyForPipelineOn) isEvent()  {}
func (ReadyForPipelineOff) isEvent() {}

func (e AssignPipeline) String() string {
	return fmt.Sprintf("AssignPipeline(%s)", e.PipelineName)
}

func (ClearPipeline) String() string {
	return "ClearPipeline"
}

func (e MoveToStage) String() string {
	return fmt.Sprintf("MoveToStage(%s)", e.StageName)
}

func (ReadyForPipelineOn) String() string {
	return fmt.Sprintf("ReadyForPipelineOn(%s)", models.PipelineInterviews)
}

func (ReadyForPipelineOff) String() string {
	return "ReadyForPipelineOff"
}
