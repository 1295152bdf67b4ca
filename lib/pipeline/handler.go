package pipeline

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"recruitment-backend/db"
	pipelinedefinitions "recruitment-backend/lib/pipeline/definitions"
	pipelinestore "recruitment-backend/lib/pipeline/store"
	"recruitment-backend/models"
	pipelineapimodels "recruitment-backend/models/api/pipeline"
	dbmodels "recruitment-backend/models/db"
)

// Registry справочник воронок и этапов, только чтение
type Registry interface {
	FirstStage(pipelineName string) (*dbmodels.PipelineStage, error)
	StageBelongsTo(pipelineName, stageID string) (bool, error)
	StageByName(pipelineName, stageName string) (*dbmodels.PipelineStage, error)
	StageByID(stageID string) (*dbmodels.PipelineStage, error)
	NextStage(pipelineName, stageID string) (*dbmodels.PipelineStage, error)
}

type Provider interface {
	Registry
	// WithTx справочник в рамках транзакции, чтения внутри одного решения о переходе согласованы
	WithTx(tx *gorm.DB) Registry
	List() ([]pipelineapimodels.PipelineView, error)
	Setup() (pipelinedefinitions.SetupResult, error)
	Definitions() pipelinedefinitions.Definitions
}

var Instance Provider

func NewHandler(defs pipelinedefinitions.Definitions) {
	Instance = NewInstance(db.DB, defs)
}

func NewInstance(DB *gorm.DB, defs pipelinedefinitions.Definitions) Provider {
	return &impl{
		registry: newRegistry(DB, false),
		db:       DB,
		defs:     defs,
	}
}

type impl struct {
	*registry
	db   *gorm.DB
	defs pipelinedefinitions.Definitions
}

func (i impl) WithTx(tx *gorm.DB) Registry {
	return newRegistry(tx, true)
}

func (i impl) List() ([]pipelineapimodels.PipelineView, error) {
	list, err := i.store.ListPipelines()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка воронок")
	}
	result := make([]pipelineapimodels.PipelineView, 0, len(list))
	for _, rec := range list {
		result = append(result, pipelineapimodels.PipelineConvert(rec))
	}
	return result, nil
}

func (i impl) Setup() (pipelinedefinitions.SetupResult, error) {
	return pipelinedefinitions.Setup(i.db, i.defs)
}

func (i impl) Definitions() pipelinedefinitions.Definitions {
	return i.defs
}

type registry struct {
	store pipelinestore.Provider
	// этапы по воронкам, заполняется только для справочника в транзакции
	stages map[string][]dbmodels.PipelineStage
	memo   bool
}

func newRegistry(DB *gorm.DB, memo bool) *registry {
	return &registry{
		store:  pipelinestore.NewInstance(DB),
		stages: map[string][]dbmodels.PipelineStage{},
		memo:   memo,
	}
}

func (r *registry) listStages(pipelineName string) ([]dbmodels.PipelineStage, error) {
	if r.memo {
		if list, ok := r.stages[pipelineName]; ok {
			return list, nil
		}
	}
	rec, err := r.store.GetPipeline(pipelineName)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения воронки")
	}
	if rec == nil {
		return nil, models.NewErrPipelineNotFound(pipelineName)
	}
	list, err := r.store.ListStages(pipelineName)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения этапов воронки")
	}
	if r.memo {
		r.stages[pipelineName] = list
	}
	return list, nil
}

// FirstStage этап входа - с минимальным порядковым номером
func (r *registry) FirstStage(pipelineName string) (*dbmodels.PipelineStage, error) {
	list, err := r.listStages(pipelineName)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, models.NewErrStageNotFound(pipelineName, "<первый этап>")
	}
	first := list[0]
	for _, stage := range list[1:] {
		if stage.Sequence < first.Sequence {
			first = stage
		}
	}
	return &first, nil
}

func (r *registry) StageBelongsTo(pipelineName, stageID string) (bool, error) {
	list, err := r.listStages(pipelineName)
	if err != nil {
		return false, err
	}
	for _, stage := range list {
		if stage.ID == stageID {
			return true, nil
		}
	}
	return false, nil
}

func (r *registry) StageByName(pipelineName, stageName string) (*dbmodels.PipelineStage, error) {
	list, err := r.listStages(pipelineName)
	if err != nil {
		return nil, err
	}
	for _, stage := range list {
		if stage.StageName == stageName {
			found := stage
			return &found, nil
		}
	}
	return nil, models.NewErrStageNotFound(pipelineName, stageName)
}

func (r *registry) StageByID(stageID string) (*dbmodels.PipelineStage, error) {
	if r.memo {
		for _, list := range r.stages {
			for _, stage := range list {
				if stage.ID == stageID {
					found := stage
					return &found, nil
				}
			}
		}
	}
	rec, err := r.store.GetStageByID(stageID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения этапа")
	}
	if rec == nil {
		return nil, models.NewErrNotFound("этап", stageID)
	}
	return rec, nil
}

// NextStage следующий по порядку этап той же воронки, nil для последнего
func (r *registry) NextStage(pipelineName, stageID string) (*dbmodels.PipelineStage, error) {
	list, err := r.listStages(pipelineName)
	if err != nil {
		return nil, err
	}
	var current *dbmodels.PipelineStage
	for k := range list {
		if list[k].ID == stageID {
			current = &list[k]
			break
		}
	}
	if current == nil {
		return nil, models.NewErrInvalidTransition(models.ReasonStageNotInPipeline, "этап %s не принадлежит воронке '%s'", stageID, pipelineName)
	}
	var next *dbmodels.PipelineStage
	for k := range list {
		if list[k].Sequence > current.Sequence && (next == nil || list[k].Sequence < next.Sequence) {
			found := list[k]
			next = &found
		}
	}
	return next, nil
}
