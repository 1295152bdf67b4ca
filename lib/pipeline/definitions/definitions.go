package pipelinedefinitions

import (
	_ "embed"
	"os"
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	pipelinestore "recruitment-backend/lib/pipeline/store"
	dbmodels "recruitment-backend/models/db"
)

//go:embed pipelines.yml
var defaultDefinitions []byte

type Definitions struct {
	Pipelines []PipelineDefinition `yaml:"pipelines"`
}

type PipelineDefinition struct {
	Name      string            `yaml:"name"`
	AppliesTo string            `yaml:"applies_to"`
	Stages    []StageDefinition `yaml:"stages"`
}

type StageDefinition struct {
	Name      string   `yaml:"name"`
	Sequence  int      `yaml:"sequence"`
	Terminal  bool     `yaml:"terminal"`
	Completed []string `yaml:"completed"` // статусы, при которых этап визы считается пройденным
}

type SetupResult struct {
	CreatedPipelines int `json:"created_pipelines"`
	CreatedStages    int `json:"created_stages"`
}

// Load читает описание воронок из файла, без файла - встроенное описание
func Load(fileName string) (Definitions, error) {
	body := defaultDefinitions
	if fileName != "" {
		fileBody, err := os.ReadFile(fileName)
		if err != nil {
			return Definitions{}, errors.Wrapf(err, "ошибка чтения файла воронок %s", fileName)
		}
		body = fileBody
	}
	return Parse(body)
}

func Parse(body []byte) (Definitions, error) {
	defs := Definitions{}
	if err := yaml.Unmarshal(body, &defs); err != nil {
		return Definitions{}, errors.Wrap(err, "ошибка разбора описания воронок")
	}
	if err := defs.Validate(); err != nil {
		return Definitions{}, err
	}
	return defs, nil
}

func (d Definitions) Validate() error {
	names := map[string]bool{}
	for _, p := range d.Pipelines {
		if p.Name == "" {
			return errors.New("не указано название воронки")
		}
		if names[p.Name] {
			return errors.Errorf("воронка '%s' описана дважды", p.Name)
		}
		names[p.Name] = true
		if len(p.Stages) == 0 {
			return errors.Errorf("у воронки '%s' нет этапов", p.Name)
		}
		stageNames := map[string]bool{}
		sequences := map[int]bool{}
		for _, s := range p.Stages {
			if s.Name == "" || stageNames[s.Name] {
				return errors.Errorf("некорректный или повторяющийся этап '%s' в воронке '%s'", s.Name, p.Name)
			}
			if sequences[s.Sequence] {
				return errors.Errorf("повторяющийся порядковый номер %d в воронке '%s'", s.Sequence, p.Name)
			}
			stageNames[s.Name] = true
			sequences[s.Sequence] = true
		}
	}
	return nil
}

// CompletedStatuses статусы завершения этапа, ok=false если этап не описан
func (d Definitions) CompletedStatuses(pipelineName, stageName string) (statuses []string, ok bool) {
	for _, p := range d.Pipelines {
		if p.Name != pipelineName {
			continue
		}
		for _, s := range p.Stages {
			if s.Name == stageName {
				return s.Completed, true
			}
		}
	}
	return nil, false
}

// Setup создает недостающие воронки и этапы, повторный запуск ничего не меняет
func Setup(DB *gorm.DB, defs Definitions) (result SetupResult, err error) {
	err = DB.Transaction(func(tx *gorm.DB) error {
		store := pipelinestore.NewInstance(tx)
		for _, p := range defs.Pipelines {
			existed, err := store.GetPipeline(p.Name)
			if err != nil {
				return errors.Wrap(err, "ошибка получения воронки")
			}
			if existed == nil {
				err = store.CreatePipeline(dbmodels.Pipeline{
					Name:      p.Name,
					AppliesTo: p.AppliesTo,
					IsActive:  true,
				})
				if err != nil {
					return errors.Wrapf(err, "ошибка создания воронки %s", p.Name)
				}
				result.CreatedPipelines++
			}
			stages := append([]StageDefinition{}, p.Stages...)
			sort.Slice(stages, func(i, j int) bool {
				return stages[i].Sequence < stages[j].Sequence
			})
			for _, s := range stages {
				existedStage, err := store.GetStageByName(p.Name, s.Name)
				if err != nil {
					return errors.Wrap(err, "ошибка получения этапа")
				}
				if existedStage != nil {
					continue
				}
				_, err = store.CreateStage(dbmodels.PipelineStage{
					PipelineName: p.Name,
					StageName:    s.Name,
					Sequence:     s.Sequence,
					IsTerminal:   s.Terminal,
				})
				if err != nil {
					return errors.Wrapf(err, "ошибка создания этапа %s", s.Name)
				}
				result.CreatedStages++
			}
		}
		return nil
	})
	if err != nil {
		return SetupResult{}, err
	}
	if result.CreatedPipelines != 0 || result.CreatedStages != 0 {
		log.
			WithField("created_pipelines", result.CreatedPipelines).
			WithField("created_stages", result.CreatedStages).
			Info("добавлены воронки и этапы")
	}
	return result, nil
}
