package pipelineapimodels

import dbmodels "recruitment-backend/models/db"

type PipelineView struct {
	Name      string      `json:"name"`
	AppliesTo string      `json:"applies_to"`
	IsActive  bool        `json:"is_active"`
	Stages    []StageView `json:"stages"`
}

type StageView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Sequence   int    `json:"sequence"`
	IsTerminal bool   `json:"is_terminal"`
}

func PipelineConvert(rec dbmodels.Pipeline) PipelineView {
	result := PipelineView{
		Name:      rec.Name,
		AppliesTo: rec.AppliesTo,
		IsActive:  rec.IsActive,
		Stages:    make([]StageView, 0, len(rec.Stages)),
	}
	for _, stage := range rec.Stages {
		result.Stages = append(result.Stages, StageConvert(stage))
	}
	return result
}

func StageConvert(rec dbmodels.PipelineStage) StageView {
	return StageView{
		ID:         rec.ID,
		Name:       rec.StageName,
		Sequence:   rec.Sequence,
		IsTerminal: rec.IsTerminal,
	}
}
