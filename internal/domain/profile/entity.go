package profile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        string             `bson:"userId" json:"userId"`
	FullName      string             `bson:"fullName,omitempty" json:"fullName"`
	Email         string             `bson:"email,omitempty" json:"email"`
	ContactNumber string             `bson:"contactNumber,omitempty" json:"contactNumber"`
	Location      string             `bson:"location,omitempty" json:"location"`
	LinkedInURL   string             `bson:"linkedInUrl,omitempty" json:"linkedInUrl"`
	GithubURL     string             `bson:"githubUrl,omitempty" json:"githubUrl"`
	PortfolioURL  string             `bson:"portfolioUrl,omitempty" json:"portfolioUrl"`

	Title           string   `bson:"title,omitempty" json:"title"`
	Summary         string   `bson:"summary,omitempty" json:"summary"`
	TechnicalSkills []string `bson:"technicalSkills" json:"technicalSkills"`
	SoftSkills      []string `bson:"softSkills" json:"softSkills"`
	Languages       []string `bson:"languages" json:"languages"`
	TotalExperience string   `bson:"totalExperience,omitempty" json:"totalExperience"`

	Education      []Education     `bson:"education" json:"education"`
	Experience     []Experience    `bson:"experience" json:"experience"`
	Certifications []Certification `bson:"certifications" json:"certifications"`
	Projects       []Project       `bson:"projects" json:"projects"`

	CurrentResumeID string          `bson:"currentResumeId,omitempty" json:"currentResumeId"`
	ResumeHistory   []ResumeHistory `bson:"resumeHistory" json:"resumeHistory"`

	IsPublic             bool     `bson:"isPublic" json:"isPublic"`
	SeekingOpportunities bool     `bson:"seekingOpportunities" json:"seekingOpportunities"`
	PreferredRoles       []string `bson:"preferredRoles" json:"preferredRoles"`
	ExpectedSalary       string   `bson:"expectedSalary,omitempty" json:"expectedSalary"`
	NoticePeriod         string   `bson:"noticePeriod,omitempty" json:"noticePeriod"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type Education struct {
	Degree      string `bson:"degree,omitempty" json:"degree"`
	Institution string `bson:"institution,omitempty" json:"institution"`
	Year        string `bson:"year,omitempty" json:"year"`
	Location    string `bson:"location,omitempty" json:"location"`
	Grade       string `bson:"grade,omitempty" json:"grade"`
}

type Experience struct {
	Position     string   `bson:"position,omitempty" json:"position"`
	Company      string   `bson:"company,omitempty" json:"company"`
	Duration     string   `bson:"duration,omitempty" json:"duration"`
	Description  string   `bson:"description,omitempty" json:"description"`
	Location     string   `bson:"location,omitempty" json:"location"`
	Technologies []string `bson:"technologies,omitempty" json:"technologies"`
}

type Certification struct {
	Name                string `bson:"name,omitempty" json:"name"`
	IssuingOrganization string `bson:"issuingOrganization,omitempty" json:"issuingOrganization"`
	IssueDate           string `bson:"issueDate,omitempty" json:"issueDate"`
	ExpiryDate          string `bson:"expiryDate,omitempty" json:"expiryDate"`
	CredentialID        string `bson:"credentialId,omitempty" json:"credentialId"`
	CredentialURL       string `bson:"credentialUrl,omitempty" json:"credentialUrl"`
}

type Project struct {
	Name         string   `bson:"name,omitempty" json:"name"`
	Description  string   `bson:"description,omitempty" json:"description"`
	Duration     string   `bson:"duration,omitempty" json:"duration"`
	Technologies []string `bson:"technologies,omitempty" json:"technologies"`
	ProjectURL   string   `bson:"projectUrl,omitempty" json:"projectUrl"`
	GithubURL    string   `bson:"githubUrl,omitempty" json:"githubUrl"`
	Role         string   `bson:"role,omitempty" json:"role"`
}

type ResumeHistory struct {
	ResumeID     string     `bson:"resumeId" json:"resumeId"`
	FileName     string     `bson:"fileName" json:"fileName"`
	UploadDate   time.Time  `bson:"uploadDate" json:"uploadDate"`
	AnalyzedDate *time.Time `bson:"analyzedDate,omitempty" json:"analyzedDate"`
	FileSize     int64      `bson:"fileSize" json:"fileSize"`
	FileType     string     `bson:"fileType" json:"fileType"`
}

// Update carries a partial profile change; nil fields are left untouched.
type Update struct {
	FullName      *string
	Email         *string
	ContactNumber *string
	Location      *string
	LinkedInURL   *string
	GithubURL     *string
	PortfolioURL  *string

	Title           *string
	Summary         *string
	TechnicalSkills []string
	SoftSkills      []string
	Languages       []string
	TotalExperience *string

	Education      []Education
	Experience     []Experience
	Certifications []Certification
	Projects       []Project

	IsPublic             *bool
	SeekingOpportunities *bool
	PreferredRoles       []string
	ExpectedSalary       *string
	NoticePeriod         *string
}

// Apply copies every set field of u onto p and reports whether the skill
// lists changed.
func (p *Profile) Apply(u Update) (skillsChanged bool) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&p.FullName, u.FullName)
	setStr(&p.Email, u.Email)
	setStr(&p.ContactNumber, u.ContactNumber)
	setStr(&p.Location, u.Location)
	setStr(&p.LinkedInURL, u.LinkedInURL)
	setStr(&p.GithubURL, u.GithubURL)
	setStr(&p.PortfolioURL, u.PortfolioURL)
	setStr(&p.Title, u.Title)
	setStr(&p.Summary, u.Summary)
	setStr(&p.TotalExperience, u.TotalExperience)
	setStr(&p.ExpectedSalary, u.ExpectedSalary)
	setStr(&p.NoticePeriod, u.NoticePeriod)

	if u.TechnicalSkills != nil {
		p.TechnicalSkills = u.TechnicalSkills
		skillsChanged = true
	}
	if u.SoftSkills != nil {
		p.SoftSkills = u.SoftSkills
		skillsChanged = true
	}
	if u.Languages != nil {
		p.Languages = u.Languages
	}
	if u.Education != nil {
		p.Education = u.Education
	}
	if u.Experience != nil {
		p.Experience = u.Experience
	}
	if u.Certifications != nil {
		p.Certifications = u.Certifications
	}
	if u.Projects != nil {
		p.Projects = u.Projects
	}
	if u.IsPublic != nil {
		p.IsPublic = *u.IsPublic
	}
	if u.SeekingOpportunities != nil {
		p.SeekingOpportunities = *u.SeekingOpportunities
	}
	if u.PreferredRoles != nil {
		p.PreferredRoles = u.PreferredRoles
	}
	return skillsChanged
}
