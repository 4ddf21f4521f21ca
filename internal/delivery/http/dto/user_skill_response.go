package dto

type GenerateExamRequest struct {
	Skill             string `json:"skill"`
	Category          string `json:"category"`
	Difficulty        string `json:"difficulty"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

type ExamResultRequest struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}

type EvaluateAnswerRequest struct {
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer"`
	Context    string `json:"context"`
}

type SkillGapRequest struct {
	JobRole string `json:"jobRole"`
}
