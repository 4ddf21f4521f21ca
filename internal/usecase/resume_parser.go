package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"workskill/internal/domain/profile"
	"workskill/internal/domain/resume"
	"workskill/internal/infrastructure/gemini"

	"github.com/tidwall/gjson"
)

const maxResumePromptChars = 3000

var (
	errNoJSONObject = errors.New("no JSON object found in model output")

	codeFencePattern     = regexp.MustCompile("(?i)```json|```")
	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
)

var resumeGenerationConfig = gemini.GenerationConfig{
	Temperature:     0.1,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

type ResumeAnalyzer interface {
	Parse(ctx context.Context, text string) (resume.ParsedData, error)
}

// ResumeParser turns extracted resume text into structured data with a
// single Gemini model.
type ResumeParser struct {
	model     ResumeModel
	modelName string
	logger    *log.Logger
}

func NewResumeParser(model ResumeModel, modelName string, logger *log.Logger) *ResumeParser {
	return &ResumeParser{model: model, modelName: modelName, logger: logger}
}

func (p *ResumeParser) Parse(ctx context.Context, text string) (resume.ParsedData, error) {
	if p.model == nil || !p.model.Enabled() {
		return EmptyParsedData(), gemini.ErrDisabled
	}
	out, err := p.model.Generate(ctx, p.modelName, resumePrompt(text), resumeGenerationConfig)
	if err != nil {
		return EmptyParsedData(), err
	}
	data, err := ParseResumeJSON(out)
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("[Resume] unparseable model output (%d chars): %v", len(out), err)
		}
		return EmptyParsedData(), err
	}
	if p.logger != nil {
		p.logger.Printf("[Resume] parsed skills=%d education=%d experience=%d",
			len(data.TechnicalSkills), len(data.Education), len(data.Experience))
	}
	return data, nil
}

func resumePrompt(text string) string {
	if r := []rune(text); len(r) > maxResumePromptChars {
		text = string(r[:maxResumePromptChars])
	}
	return fmt.Sprintf(`Analyze this resume text and extract structured information. Return ONLY valid JSON.

RESUME TEXT:
%s

Extract into this exact JSON structure:
{
  "fullName": "extracted full name",
  "email": "extracted email",
  "contactNumber": "extracted phone number",
  "location": "city and country",
  "title": "extracted job title or current position",
  "summary": "professional summary",
  "totalExperience": "total years of experience",
  "skills": ["array of technical skills"],
  "softSkills": ["array of soft skills"],
  "languages": ["array of spoken languages"],
  "certifications": ["array of certification names"],
  "education": [{"degree": "degree name", "institution": "institution name", "year": "graduation year"}],
  "experience": [{"position": "job position", "company": "company name", "duration": "employment duration", "description": "job description"}],
  "projects": [{"name": "project name", "description": "what it does", "technologies": ["tech"]}]
}

IMPORTANT RULES:
- Return ONLY valid JSON, no other text or explanations
- Use empty strings ("") for missing fields
- Use empty arrays ([]) for missing arrays
- Do not leave trailing commas
`, text)
}

// ExtractJSON pulls the outermost JSON object out of model output that may be
// wrapped in code fences or prose.
func ExtractJSON(text string) (string, error) {
	cleaned := strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return "", errNoJSONObject
	}
	return trailingCommaPattern.ReplaceAllString(cleaned[start:end+1], "$1"), nil
}

// ParseResumeJSON reads the model's JSON leniently: any scalar is accepted
// where a string is expected and blank entries are dropped.
func ParseResumeJSON(text string) (resume.ParsedData, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return EmptyParsedData(), err
	}
	if !gjson.Valid(raw) {
		return EmptyParsedData(), fmt.Errorf("%w: invalid JSON", errNoJSONObject)
	}
	root := gjson.Parse(raw)

	out := EmptyParsedData()
	out.FullName = jsonString(root, "fullName")
	out.Email = jsonString(root, "email")
	out.ContactNumber = jsonString(root, "contactNumber")
	out.Location = jsonString(root, "location")
	out.Title = jsonString(root, "title")
	out.Summary = jsonString(root, "summary")
	out.TotalExperience = jsonString(root, "totalExperience")
	out.TechnicalSkills = jsonStrings(root.Get("skills"))
	out.SoftSkills = jsonStrings(root.Get("softSkills"))
	out.Languages = jsonStrings(root.Get("languages"))

	for _, name := range jsonStrings(root.Get("certifications")) {
		out.Certifications = append(out.Certifications, profile.Certification{Name: name})
	}
	root.Get("education").ForEach(func(_, v gjson.Result) bool {
		e := profile.Education{
			Degree:      jsonString(v, "degree"),
			Institution: jsonString(v, "institution"),
			Year:        jsonString(v, "year"),
		}
		if e.Degree != "" || e.Institution != "" {
			out.Education = append(out.Education, e)
		}
		return true
	})
	root.Get("experience").ForEach(func(_, v gjson.Result) bool {
		e := profile.Experience{
			Position:    jsonString(v, "position"),
			Company:     jsonString(v, "company"),
			Duration:    jsonString(v, "duration"),
			Description: jsonString(v, "description"),
		}
		if e.Position != "" || e.Company != "" {
			out.Experience = append(out.Experience, e)
		}
		return true
	})
	root.Get("projects").ForEach(func(_, v gjson.Result) bool {
		pr := profile.Project{
			Name:         jsonString(v, "name"),
			Description:  jsonString(v, "description"),
			Technologies: jsonStrings(v.Get("technologies")),
		}
		if pr.Name != "" {
			out.Projects = append(out.Projects, pr)
		}
		return true
	})
	return out, nil
}

func EmptyParsedData() resume.ParsedData {
	return resume.ParsedData{
		TechnicalSkills: []string{},
		SoftSkills:      []string{},
		Languages:       []string{},
		Education:       []profile.Education{},
		Experience:      []profile.Experience{},
		Certifications:  []profile.Certification{},
		Projects:        []profile.Project{},
	}
}

func jsonString(v gjson.Result, path string) string {
	r := v.Get(path)
	if !r.Exists() || r.Type == gjson.Null || r.IsObject() || r.IsArray() {
		return ""
	}
	return strings.TrimSpace(r.String())
}

func jsonStrings(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.Null || item.IsObject() || item.IsArray() {
			return true
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
