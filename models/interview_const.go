package models

type InterviewLevel string

const (
	InterviewLevelInternalHR        InterviewLevel = "Internal-HR"
	InterviewLevelInternalTechnical InterviewLevel = "Internal-Technical"
	InterviewLevelEmployer          InterviewLevel = "Employer"
)

func (l InterviewLevel) IsValid() bool {
	switch l {
	case InterviewLevelInternalHR, InterviewLevelInternalTechnical, InterviewLevelEmployer:
		return true
	}
	return false
}

func (l InterviewLevel) IsInternal() bool {
	return l == InterviewLevelInternalHR || l == InterviewLevelInternalTechnical
}

type InterviewResult string

const (
	InterviewResultUnset InterviewResult = ""
	InterviewResultPass  InterviewResult = "Pass"
	InterviewResultFail  InterviewResult = "Fail"
	InterviewResultHold  InterviewResult = "Hold"
)

func (r InterviewResult) IsValid() bool {
	switch r {
	case InterviewResultUnset, InterviewResultPass, InterviewResultFail, InterviewResultHold:
		return true
	}
	return false
}

// IsSettled Hold и пустой результат не двигают кандидата по этапам
func (r InterviewResult) IsSettled() bool {
	return r == InterviewResultPass || r == InterviewResultFail
}
