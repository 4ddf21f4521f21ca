package resume

import (
	"time"

	"workskill/internal/domain/profile"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TypePDF  = "pdf"
	TypeDOCX = "docx"
	TypeTXT  = "txt"
)

const UploadSourceWeb = "web"

// ParsedData is the structured content extracted from a resume.
type ParsedData struct {
	FullName        string                  `bson:"fullName" json:"fullName"`
	Email           string                  `bson:"email" json:"email"`
	ContactNumber   string                  `bson:"contactNumber" json:"contactNumber"`
	Location        string                  `bson:"location" json:"location"`
	Title           string                  `bson:"title" json:"title"`
	Summary         string                  `bson:"summary" json:"summary"`
	TechnicalSkills []string                `bson:"technicalSkills" json:"technicalSkills"`
	SoftSkills      []string                `bson:"softSkills" json:"softSkills"`
	Languages       []string                `bson:"languages" json:"languages"`
	TotalExperience string                  `bson:"totalExperience" json:"totalExperience"`
	Education       []profile.Education     `bson:"education" json:"education"`
	Experience      []profile.Experience    `bson:"experience" json:"experience"`
	Certifications  []profile.Certification `bson:"certifications" json:"certifications"`
	Projects        []profile.Project       `bson:"projects" json:"projects"`
}

type Resume struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"userId" json:"userId"`
	FileName         string             `bson:"fileName" json:"fileName"`
	OriginalFileName string             `bson:"originalFileName" json:"originalFileName"`
	FileType         string             `bson:"fileType" json:"fileType"`
	FileSize         int64              `bson:"fileSize" json:"fileSize"`
	FileData         []byte             `bson:"fileData,omitempty" json:"-"`
	UploadDate       time.Time          `bson:"uploadDate" json:"uploadDate"`
	AnalyzedDate     *time.Time         `bson:"analyzedDate,omitempty" json:"analyzedDate"`

	ParsedData `bson:",inline"`

	IsActive         bool    `bson:"isActive" json:"isActive"`
	AnalysisComplete bool    `bson:"analysisComplete" json:"analysisComplete"`
	ConfidenceScore  float64 `bson:"confidenceScore" json:"confidenceScore"`
	UploadSource     string  `bson:"uploadSource" json:"uploadSource"`
	Checksum         string  `bson:"checksum" json:"checksum"`
}

func (r Resume) History() profile.ResumeHistory {
	return profile.ResumeHistory{
		ResumeID:     r.ID.Hex(),
		FileName:     r.OriginalFileName,
		UploadDate:   r.UploadDate,
		AnalyzedDate: r.AnalyzedDate,
		FileSize:     r.FileSize,
		FileType:     r.FileType,
	}
}
