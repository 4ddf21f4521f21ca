package dto

import "workskill/internal/domain/profile"

// ProfileUpdateRequest mirrors profile.Update; absent JSON fields stay nil.
type ProfileUpdateRequest struct {
	FullName      *string `json:"fullName"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contactNumber"`
	Location      *string `json:"location"`
	LinkedInURL   *string `json:"linkedInUrl"`
	GithubURL     *string `json:"githubUrl"`
	PortfolioURL  *string `json:"portfolioUrl"`

	Title           *string  `json:"title"`
	Summary         *string  `json:"summary"`
	TechnicalSkills []string `json:"technicalSkills"`
	SoftSkills      []string `json:"softSkills"`
	Languages       []string `json:"languages"`
	TotalExperience *string  `json:"totalExperience"`

	Education      []profile.Education     `json:"education"`
	Experience     []profile.Experience    `json:"experience"`
	Certifications []profile.Certification `json:"certifications"`
	Projects       []profile.Project       `json:"projects"`

	IsPublic             *bool    `json:"isPublic"`
	SeekingOpportunities *bool    `json:"seekingOpportunities"`
	PreferredRoles       []string `json:"preferredRoles"`
	ExpectedSalary       *string  `json:"expectedSalary"`
	NoticePeriod         *string  `json:"noticePeriod"`
}

func (r ProfileUpdateRequest) ToUpdate() profile.Update {
	return profile.Update{
		FullName:             r.FullName,
		Email:                r.Email,
		ContactNumber:        r.ContactNumber,
		Location:             r.Location,
		LinkedInURL:          r.LinkedInURL,
		GithubURL:            r.GithubURL,
		PortfolioURL:         r.PortfolioURL,
		Title:                r.Title,
		Summary:              r.Summary,
		TechnicalSkills:      r.TechnicalSkills,
		SoftSkills:           r.SoftSkills,
		Languages:            r.Languages,
		TotalExperience:      r.TotalExperience,
		Education:            r.Education,
		Experience:           r.Experience,
		Certifications:       r.Certifications,
		Projects:             r.Projects,
		IsPublic:             r.IsPublic,
		SeekingOpportunities: r.SeekingOpportunities,
		PreferredRoles:       r.PreferredRoles,
		ExpectedSalary:       r.ExpectedSalary,
		NoticePeriod:         r.NoticePeriod,
	}
}
