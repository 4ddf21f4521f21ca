package dto

import (
	"time"

	"workskill/internal/domain/analysis"
)

type SkillGapResponse struct {
	AnalysisID         string                       `json:"analysisId"`
	UserID             string                       `json:"userId"`
	JobRole            string                       `json:"jobRole"`
	MatchScore         float64                      `json:"matchScore"`
	RequiredSkills     []analysis.SkillAnalysis     `json:"requiredSkills"`
	CurrentSkills      []analysis.UserSkillAnalysis `json:"currentSkills"`
	MissingSkills      []analysis.SkillAnalysis     `json:"missingSkills"`
	PartialMatchSkills []analysis.SkillAnalysis     `json:"partialMatchSkills"`
	GapAnalysis        map[string]any               `json:"gapAnalysis"`
	Recommendations    []string                     `json:"recommendations"`
	TimeToCloseGap     string                       `json:"timeToCloseGap"`
	SalaryImpact       string                       `json:"salaryImpact"`
	IsCurrentRole      bool                         `json:"isCurrentRole"`
	AnalyzedAt         time.Time                    `json:"analyzedAt"`
}

func NewSkillGapResponse(a analysis.SkillGapAnalysis) SkillGapResponse {
	return SkillGapResponse{
		AnalysisID:         a.ID.Hex(),
		UserID:             a.UserID,
		JobRole:            a.JobRole,
		MatchScore:         a.MatchScore,
		RequiredSkills:     a.RequiredSkills,
		CurrentSkills:      a.CurrentSkills,
		MissingSkills:      a.MissingSkills,
		PartialMatchSkills: a.PartialMatchSkills,
		GapAnalysis:        a.GapAnalysis,
		Recommendations:    a.Recommendations,
		TimeToCloseGap:     a.TimeToCloseGap,
		SalaryImpact:       a.SalaryImpact,
		IsCurrentRole:      a.IsCurrentRole,
		AnalyzedAt:         a.AnalyzedAt,
	}
}

func NewSkillGapHistory(items []analysis.SkillGapAnalysis) []SkillGapResponse {
	out := make([]SkillGapResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewSkillGapResponse(a))
	}
	return out
}
