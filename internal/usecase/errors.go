package usecase

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrTokenExpired        = errors.New("token expired")
	ErrForbidden           = errors.New("forbidden")
	ErrInternal            = errors.New("internal error")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrSkillNotFound       = errors.New("skill not found")
	ErrResumeNotFound      = errors.New("resume not found")
	ErrEmptyFile           = errors.New("file is empty")
	ErrUnsupportedFileType = errors.New("invalid file type, only PDF, DOCX and TXT files are allowed")
	ErrFileTooLarge        = errors.New("file too large")
	ErrTextExtraction      = errors.New("could not extract text from file")
	ErrAnalysisFailed      = errors.New("skill gap analysis failed")
	ErrAnalysisInProgress  = errors.New("analysis already in progress")
)
