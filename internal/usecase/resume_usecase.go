package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"workskill/internal/config"
	"workskill/internal/domain/profile"
	"workskill/internal/domain/resume"
	"workskill/internal/infrastructure/textextract"
	"workskill/internal/repository"
	"workskill/internal/ws"
)

const (
	resumeConfidence  = 0.85
	resumeHistorySize = 4
)

type UploadInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ResumeAnalysis struct {
	Success         bool              `json:"success"`
	Message         string            `json:"message"`
	ResumeID        string            `json:"resumeId"`
	ProfileID       string            `json:"profileId"`
	ConfidenceScore float64           `json:"confidenceScore"`
	Analysis        resume.ParsedData `json:"analysis"`
}

type ResumeFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type TextPreview struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Length   int    `json:"length"`
	Text     string `json:"text"`
}

type ResumeUsecase interface {
	Upload(ctx context.Context, userID string, in UploadInput) (ResumeAnalysis, error)
	List(ctx context.Context, userID string) ([]resume.Resume, error)
	History(ctx context.Context, userID string) ([]resume.Resume, error)
	Get(ctx context.Context, userID, id string) (resume.Resume, error)
	Download(ctx context.Context, userID, id string) (ResumeFile, error)
	Activate(ctx context.Context, userID, id string) error
	Reanalyze(ctx context.Context, userID, id string) (ResumeAnalysis, error)
	Delete(ctx context.Context, userID, id string) error
	ExtractText(ctx context.Context, in UploadInput) (TextPreview, error)
}

type Resumes struct {
	resumes   repository.ResumeRepository
	profiles  repository.ProfileRepository
	students  repository.StudentRepository
	skills    UserSkillUsecase
	extractor TextExtractor
	analyzer  ResumeAnalyzer
	notifier  Notifier
	cfg       config.ResumeConfig
	logger    *log.Logger
	now       func() time.Time
}

func NewResumeUsecase(
	resumes repository.ResumeRepository,
	profiles repository.ProfileRepository,
	students repository.StudentRepository,
	skills UserSkillUsecase,
	extractor TextExtractor,
	analyzer ResumeAnalyzer,
	notifier Notifier,
	cfg config.ResumeConfig,
	logger *log.Logger,
) *Resumes {
	return &Resumes{
		resumes:   resumes,
		profiles:  profiles,
		students:  students,
		skills:    skills,
		extractor: extractor,
		analyzer:  analyzer,
		notifier:  notifierOrNoop(notifier),
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Resumes) Upload(ctx context.Context, userID string, in UploadInput) (ResumeAnalysis, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ResumeAnalysis{}, ErrInvalidInput
	}
	fileType, err := u.validate(in)
	if err != nil {
		return ResumeAnalysis{}, err
	}
	text, err := u.extract(fileType, in.Data)
	if err != nil {
		return ResumeAnalysis{}, err
	}

	now := u.now().UTC()
	sum := sha256.Sum256(in.Data)
	doc := resume.Resume{
		UserID:           userID,
		FileName:         storedFileName(in.FileName, now),
		OriginalFileName: strings.TrimSpace(in.FileName),
		FileType:         fileType,
		FileSize:         int64(len(in.Data)),
		FileData:         in.Data,
		UploadDate:       now,
		UploadSource:     resume.UploadSourceWeb,
		Checksum:         hex.EncodeToString(sum[:]),
	}
	u.applyAnalysis(ctx, &doc, text)

	saved, err := u.resumes.Create(ctx, doc)
	if err != nil {
		return ResumeAnalysis{}, ErrInternal
	}
	u.logf("[Resume] stored resume=%s user=%s type=%s size=%d", saved.ID.Hex(), userID, fileType, saved.FileSize)
	u.enforceLimit(ctx, userID, saved.ID.Hex())

	p, err := u.mergeIntoProfile(ctx, saved, true)
	if err != nil {
		return ResumeAnalysis{}, err
	}
	if err := u.resumes.SetActive(ctx, userID, saved.ID.Hex()); err != nil {
		return ResumeAnalysis{}, ErrInternal
	}
	u.afterAnalysis(ctx, saved)

	return ResumeAnalysis{
		Success:         true,
		Message:         "Resume uploaded and analyzed successfully",
		ResumeID:        saved.ID.Hex(),
		ProfileID:       p.ID.Hex(),
		ConfidenceScore: saved.ConfidenceScore,
		Analysis:        saved.ParsedData,
	}, nil
}

func (u *Resumes) List(ctx context.Context, userID string) ([]resume.Resume, error) {
	return u.list(ctx, userID, 0)
}

func (u *Resumes) History(ctx context.Context, userID string) ([]resume.Resume, error) {
	return u.list(ctx, userID, resumeHistorySize)
}

func (u *Resumes) Get(ctx context.Context, userID, id string) (resume.Resume, error) {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	if userID == "" || id == "" {
		return resume.Resume{}, ErrInvalidInput
	}
	r, err := u.resumes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, ErrInternal
	}
	if r.UserID != userID {
		return resume.Resume{}, ErrResumeNotFound
	}
	return r, nil
}

func (u *Resumes) Download(ctx context.Context, userID, id string) (ResumeFile, error) {
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return ResumeFile{}, err
	}
	if len(r.FileData) == 0 {
		return ResumeFile{}, ErrResumeNotFound
	}
	name := r.OriginalFileName
	if name == "" {
		name = r.FileName
	}
	return ResumeFile{
		FileName:    name,
		ContentType: textextract.ContentType(r.FileType),
		Data:        r.FileData,
	}, nil
}

func (u *Resumes) Activate(ctx context.Context, userID, id string) error {
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	return u.activate(ctx, r.UserID, r.ID.Hex())
}

func (u *Resumes) Reanalyze(ctx context.Context, userID, id string) (ResumeAnalysis, error) {
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return ResumeAnalysis{}, err
	}
	text, err := u.extract(r.FileType, r.FileData)
	if err != nil {
		return ResumeAnalysis{}, err
	}
	u.applyAnalysis(ctx, &r, text)
	if err := u.resumes.Update(ctx, r); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ResumeAnalysis{}, ErrResumeNotFound
		}
		return ResumeAnalysis{}, ErrInternal
	}

	p, err := u.mergeIntoProfile(ctx, r, false)
	if err != nil {
		return ResumeAnalysis{}, err
	}
	u.afterAnalysis(ctx, r)

	return ResumeAnalysis{
		Success:         true,
		Message:         "Resume re-analyzed successfully",
		ResumeID:        r.ID.Hex(),
		ProfileID:       p.ID.Hex(),
		ConfidenceScore: r.ConfidenceScore,
		Analysis:        r.ParsedData,
	}, nil
}

func (u *Resumes) Delete(ctx context.Context, userID, id string) error {
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := u.resumes.Delete(ctx, r.ID.Hex()); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ErrResumeNotFound
		}
		return ErrInternal
	}

	p, err := loadOrCreateProfile(ctx, u.profiles, u.students, r.UserID, u.now().UTC())
	if err != nil {
		return err
	}
	p.ResumeHistory = removeHistory(p.ResumeHistory, r.ID.Hex())

	wasCurrent := r.IsActive || p.CurrentResumeID == r.ID.Hex()
	if wasCurrent {
		p.CurrentResumeID = ""
		remaining, err := u.resumes.FindByUserID(ctx, r.UserID, 1)
		if err != nil {
			return ErrInternal
		}
		if len(remaining) > 0 {
			next := remaining[0].ID.Hex()
			if err := u.resumes.SetActive(ctx, r.UserID, next); err != nil {
				return ErrInternal
			}
			p.CurrentResumeID = next
		}
	}
	p.UpdatedAt = u.now().UTC()
	if _, err := u.profiles.Save(ctx, p); err != nil {
		return ErrInternal
	}
	u.logf("[Resume] deleted resume=%s user=%s", r.ID.Hex(), r.UserID)
	return nil
}

func (u *Resumes) ExtractText(_ context.Context, in UploadInput) (TextPreview, error) {
	fileType, err := u.validate(in)
	if err != nil {
		return TextPreview{}, err
	}
	text, err := u.extract(fileType, in.Data)
	if err != nil {
		return TextPreview{}, err
	}
	return TextPreview{
		FileName: strings.TrimSpace(in.FileName),
		FileType: fileType,
		Length:   len([]rune(text)),
		Text:     text,
	}, nil
}

func (u *Resumes) validate(in UploadInput) (string, error) {
	if len(in.Data) == 0 {
		return "", ErrEmptyFile
	}
	fileType, err := textextract.DetectType(in.FileName, in.ContentType)
	if err != nil {
		return "", ErrUnsupportedFileType
	}
	if u.cfg.MaxBytes > 0 && int64(len(in.Data)) > u.cfg.MaxBytes {
		return "", ErrFileTooLarge
	}
	return fileType, nil
}

func (u *Resumes) extract(fileType string, data []byte) (string, error) {
	if u.extractor == nil {
		return "", ErrTextExtraction
	}
	text, err := u.extractor.Extract(fileType, data)
	if err != nil {
		u.logf("[Resume] text extraction failed type=%s err=%v", fileType, err)
		if errors.Is(err, textextract.ErrUnsupportedType) {
			return "", ErrUnsupportedFileType
		}
		return "", ErrTextExtraction
	}
	return text, nil
}

// applyAnalysis fills the parsed fields of r. A failed model call still
// completes the analysis with empty data.
func (u *Resumes) applyAnalysis(ctx context.Context, r *resume.Resume, text string) {
	data := EmptyParsedData()
	if u.analyzer != nil {
		parsed, err := u.analyzer.Parse(ctx, text)
		if err != nil {
			u.logf("[Resume] analysis failed user=%s err=%v", r.UserID, err)
		} else {
			data = parsed
		}
	}
	at := u.now().UTC()
	r.ParsedData = data
	r.AnalyzedDate = &at
	r.AnalysisComplete = true
	r.ConfidenceScore = resumeConfidence
}

// enforceLimit trims the user's oldest resumes once keep has been stored.
// Failures are logged; the upload itself already succeeded.
func (u *Resumes) enforceLimit(ctx context.Context, userID, keep string) {
	limit := u.cfg.MaxPerUser
	if limit <= 0 {
		return
	}
	existing, err := u.resumes.FindByUserID(ctx, userID, 0)
	if err != nil {
		u.logf("[Resume] limit check failed user=%s err=%v", userID, err)
		return
	}
	for len(existing) > limit {
		oldest := existing[len(existing)-1]
		existing = existing[:len(existing)-1]
		if oldest.ID.Hex() == keep {
			continue
		}
		if err := u.resumes.Delete(ctx, oldest.ID.Hex()); err != nil && !errors.Is(err, repository.ErrResumeNotFound) {
			u.logf("[Resume] remove oldest resume=%s user=%s failed err=%v", oldest.ID.Hex(), userID, err)
			return
		}
		u.logf("[Resume] removed oldest resume=%s user=%s to stay within %d", oldest.ID.Hex(), userID, limit)
	}
}

func (u *Resumes) mergeIntoProfile(ctx context.Context, r resume.Resume, activate bool) (profile.Profile, error) {
	p, err := loadOrCreateProfile(ctx, u.profiles, u.students, r.UserID, u.now().UTC())
	if err != nil {
		return profile.Profile{}, err
	}
	MergeParsedIntoProfile(&p, r.ParsedData)

	p.ResumeHistory = append(removeHistory(p.ResumeHistory, r.ID.Hex()), r.History())
	if n := len(p.ResumeHistory); u.cfg.MaxPerUser > 0 && n > u.cfg.MaxPerUser {
		p.ResumeHistory = p.ResumeHistory[n-u.cfg.MaxPerUser:]
	}
	if activate {
		p.CurrentResumeID = r.ID.Hex()
	}
	p.UpdatedAt = u.now().UTC()

	saved, err := u.profiles.Save(ctx, p)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return saved, nil
}

func (u *Resumes) afterAnalysis(ctx context.Context, r resume.Resume) {
	names := make([]string, 0, len(r.TechnicalSkills)+len(r.SoftSkills))
	names = append(names, r.TechnicalSkills...)
	names = append(names, r.SoftSkills...)
	if len(names) > 0 && u.skills != nil {
		if _, err := u.skills.SyncSkills(ctx, r.UserID, names); err != nil {
			u.logf("[Resume] skill sync failed user=%s err=%v", r.UserID, err)
		}
	}
	u.notifier.Notify(r.UserID, ws.EventResumeAnalyzed, map[string]any{
		"resumeId":        r.ID.Hex(),
		"fileName":        r.OriginalFileName,
		"skills":          len(r.TechnicalSkills),
		"confidenceScore": r.ConfidenceScore,
	})
}

func (u *Resumes) activate(ctx context.Context, userID, id string) error {
	if err := u.resumes.SetActive(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return ErrResumeNotFound
		}
		return ErrInternal
	}
	p, err := loadOrCreateProfile(ctx, u.profiles, u.students, userID, u.now().UTC())
	if err != nil {
		return err
	}
	p.CurrentResumeID = id
	p.UpdatedAt = u.now().UTC()
	if _, err := u.profiles.Save(ctx, p); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Resumes) list(ctx context.Context, userID string, limit int) ([]resume.Resume, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := u.resumes.FindByUserID(ctx, userID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []resume.Resume{}
	}
	return items, nil
}

func (u *Resumes) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

// MergeParsedIntoProfile copies resume data into p without overwriting
// anything the user already filled in.
func MergeParsedIntoProfile(p *profile.Profile, d resume.ParsedData) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = strings.TrimSpace(src)
		}
	}
	fill(&p.FullName, d.FullName)
	fill(&p.Email, d.Email)
	fill(&p.ContactNumber, d.ContactNumber)
	fill(&p.Location, d.Location)
	fill(&p.Title, d.Title)
	fill(&p.Summary, d.Summary)
	fill(&p.TotalExperience, d.TotalExperience)

	p.TechnicalSkills = mergeNames(p.TechnicalSkills, d.TechnicalSkills)
	p.SoftSkills = mergeNames(p.SoftSkills, d.SoftSkills)
	p.Languages = mergeNames(p.Languages, d.Languages)

	p.Education = mergeByKey(p.Education, d.Education, func(e profile.Education) string {
		return dedupeKey(e.Degree, e.Institution)
	})
	p.Experience = mergeByKey(p.Experience, d.Experience, func(e profile.Experience) string {
		return dedupeKey(e.Position, e.Company)
	})
	p.Certifications = mergeByKey(p.Certifications, d.Certifications, func(c profile.Certification) string {
		return dedupeKey(c.Name)
	})
	p.Projects = mergeByKey(p.Projects, d.Projects, func(pr profile.Project) string {
		return dedupeKey(pr.Name)
	})
}

func mergeByKey[T any](dst, src []T, key func(T) string) []T {
	if dst == nil {
		dst = []T{}
	}
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, v := range dst {
		seen[key(v)] = struct{}{}
	}
	for _, v := range src {
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}

func dedupeKey(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "\x00")
}

func removeHistory(items []profile.ResumeHistory, resumeID string) []profile.ResumeHistory {
	out := make([]profile.ResumeHistory, 0, len(items))
	for _, h := range items {
		if h.ResumeID != resumeID {
			out = append(out, h)
		}
	}
	return out
}

func storedFileName(original string, at time.Time) string {
	return "resume_" + strconv.FormatInt(at.UnixMilli(), 10) + strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
}
