package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

type ProjectInput struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Description string  `json:"description" validate:"required"`
	DemoLink    *string `json:"demo_link" validate:"omitempty,url,max=255"`
	GithubLink  *string `json:"github_link" validate:"omitempty,url,max=255"`
	CategoryID  string  `json:"category_id"`
	Tags        string  `json:"tags"`
	IsPublished *bool   `json:"is_published"`
	IsFeatured  *bool   `json:"is_featured"`
	Image       *Upload `json:"-"`
	Video       *Upload `json:"-"`
}

type AchievementInput struct {
	Title        string  `json:"title" validate:"required,max=100"`
	Description  string  `json:"description" validate:"required"`
	DateAchieved string  `json:"date_achieved" validate:"required,datetime=2006-01-02"`
	CategoryID   string  `json:"category_id"`
	Tags         string  `json:"tags"`
	IsPublished  *bool   `json:"is_published"`
	Image        *Upload `json:"-"`
	Certificate  *Upload `json:"-"`
}

type ExperienceInput struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Company     string  `json:"company" validate:"required,max=100"`
	Description string  `json:"description" validate:"required"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Location    *string `json:"location" validate:"omitempty,max=100"`
	IsCurrent   *bool   `json:"is_current"`
	IsPublished *bool   `json:"is_published"`
	CategoryID  string  `json:"category_id"`
	Tags        string  `json:"tags"`
}

type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description"`
}

// ContentService manages projects, achievements, experiences and categories.
// Every mutation requires an admin actor; reads hide drafts from everyone else.
type ContentService struct {
	projects     ProjectStore
	achievements AchievementStore
	experiences  ExperienceStore
	categories   CategoryStore
	tags         TagStore
	assets       AssetStore
	now          Clock
}

func NewContentService(
	projects ProjectStore,
	achievements AchievementStore,
	experiences ExperienceStore,
	categories CategoryStore,
	tags TagStore,
	assets AssetStore,
) *ContentService {
	return &ContentService{
		projects:     projects,
		achievements: achievements,
		experiences:  experiences,
		categories:   categories,
		tags:         tags,
		assets:       assets,
		now:          time.Now,
	}
}

// resolveCategory maps the form value to a category reference. "" and "0"
// mean no category.
func (s *ContentService) resolveCategory(ctx context.Context, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError("category_id", "must be a category id")
	}
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NewInvalidFieldError("category_id", "unknown category")
		}
		return nil, err
	}
	return &id, nil
}

func parseDate(field, value string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return datatypes.Date{}, errs.NewInvalidFieldError(field, "must be a date formatted as YYYY-MM-DD")
	}
	return datatypes.Date(t), nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// keepOr returns replacement when an asset was stored, else current.
func keepOr(current, replacement *string) *string {
	if replacement != nil {
		return replacement
	}
	return current
}

// dropReplaced removes previous once replacement has been saved in its place.
func dropReplaced(ctx context.Context, assets AssetStore, previous, replacement *string) {
	if previous == nil || replacement == nil || *previous == *replacement {
		return
	}
	assets.Remove(ctx, *previous)
}

// Projects

// ListAdminProjects returns every project, drafts included, newest first.
func (s *ContentService) ListAdminProjects(ctx context.Context, actor auth.Actor) ([]models.Project, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.projects.List(ctx, database.ProjectFilter{Sort: database.SortRecent})
}

// GetProject returns the project if the actor may see it.
func (s *ContentService) GetProject(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.VisibleOrNotFound(actor, project.IsPublished, "project"); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ContentService) prepareProject(ctx context.Context, in *ProjectInput) ([]string, *uuid.UUID, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DemoLink = trimmed(in.DemoLink)
	in.GithubLink = trimmed(in.GithubLink)
	if err := validateInput(in); err != nil {
		return nil, nil, err
	}

	tagNames, err := ParseTagNames(in.Tags)
	if err != nil {
		return nil, nil, err
	}
	categoryID, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	return tagNames, categoryID, nil
}

func (s *ContentService) CreateProject(ctx context.Context, actor auth.Actor, in ProjectInput) (*models.Project, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	tagNames, categoryID, err := s.prepareProject(ctx, &in)
	if err != nil {
		return nil, err
	}

	image, err := s.assets.Store(ctx, "image", in.Image, FolderProjects, AssetImage)
	if err != nil {
		return nil, err
	}
	video, err := s.assets.Store(ctx, "video", in.Video, FolderProjects, AssetVideo)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       in.Title,
		Description: in.Description,
		DemoLink:    in.DemoLink,
		GithubLink:  in.GithubLink,
		ImageURL:    image,
		VideoURL:    video,
		IsPublished: boolOr(in.IsPublished, true),
		IsFeatured:  boolOr(in.IsFeatured, false),
		CategoryID:  categoryID,
	}
	if err := s.projects.Create(ctx, project, tagNames); err != nil {
		return nil, err
	}

	log.Info().Str("projectID", project.ID.String()).Msg("Project created")
	return s.projects.FindByID(ctx, project.ID)
}

// UpdateProject replaces the project's fields and its whole tag set. Omitted
// flags keep their value and assets are only replaced by a new upload.
func (s *ContentService) UpdateProject(ctx context.Context, actor auth.Actor, id uuid.UUID, in ProjectInput) (*models.Project, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tagNames, categoryID, err := s.prepareProject(ctx, &in)
	if err != nil {
		return nil, err
	}

	image, err := s.assets.Store(ctx, "image", in.Image, FolderProjects, AssetImage)
	if err != nil {
		return nil, err
	}
	video, err := s.assets.Store(ctx, "video", in.Video, FolderProjects, AssetVideo)
	if err != nil {
		return nil, err
	}

	project.Title = in.Title
	project.Description = in.Description
	project.DemoLink = in.DemoLink
	project.GithubLink = in.GithubLink
	oldImage, oldVideo := project.ImageURL, project.VideoURL
	project.ImageURL = keepOr(project.ImageURL, image)
	project.VideoURL = keepOr(project.VideoURL, video)
	project.IsPublished = boolOr(in.IsPublished, project.IsPublished)
	project.IsFeatured = boolOr(in.IsFeatured, project.IsFeatured)
	project.CategoryID = categoryID
	project.Category = nil
	project.UpdatedAt = s.now()

	if err := s.projects.Update(ctx, project, tagNames); err != nil {
		return nil, err
	}
	dropReplaced(ctx, s.assets, oldImage, image)
	dropReplaced(ctx, s.assets, oldVideo, video)
	return s.projects.FindByID(ctx, id)
}

// DeleteProject removes the project with its comments and likes.
func (s *ContentService) DeleteProject(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("projectID", id.String()).Msg("Project deleted")
	return nil
}

// Achievements

// ListAchievements returns achievements by date achieved, newest first.
// Drafts are only included for admins.
func (s *ContentService) ListAchievements(ctx context.Context, actor auth.Actor) ([]models.Achievement, error) {
	return s.achievements.List(ctx, !auth.CanViewUnpublished(actor))
}

func (s *ContentService) GetAchievement(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Achievement, error) {
	achievement, err := s.achievements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.VisibleOrNotFound(actor, achievement.IsPublished, "achievement"); err != nil {
		return nil, err
	}
	return achievement, nil
}

func (s *ContentService) prepareAchievement(ctx context.Context, in *AchievementInput) (datatypes.Date, []string, *uuid.UUID, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.DateAchieved = strings.TrimSpace(in.DateAchieved)
	if err := validateInput(in); err != nil {
		return datatypes.Date{}, nil, nil, err
	}

	date, err := parseDate("date_achieved", in.DateAchieved)
	if err != nil {
		return datatypes.Date{}, nil, nil, err
	}
	tagNames, err := ParseTagNames(in.Tags)
	if err != nil {
		return datatypes.Date{}, nil, nil, err
	}
	categoryID, err := s.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return datatypes.Date{}, nil, nil, err
	}
	return date, tagNames, categoryID, nil
}

func (s *ContentService) CreateAchievement(ctx context.Context, actor auth.Actor, in AchievementInput) (*models.Achievement, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	date, tagNames, categoryID, err := s.prepareAchievement(ctx, &in)
	if err != nil {
		return nil, err
	}

	image, err := s.assets.Store(ctx, "image", in.Image, FolderAchievements, AssetImage)
	if err != nil {
		return nil, err
	}
	certificate, err := s.assets.Store(ctx, "certificate", in.Certificate, FolderAchievements, AssetDocument)
	if err != nil {
		return nil, err
	}

	achievement := &models.Achievement{
		Title:          in.Title,
		Description:    in.Description,
		DateAchieved:   date,
		ImageURL:       image,
		CertificateURL: certificate,
		IsPublished:    boolOr(in.IsPublished, true),
		CategoryID:     categoryID,
	}
	if err := s.achievements.Create(ctx, achievement, tagNames); err != nil {
		return nil, err
	}
	return s.achievements.FindByID(ctx, achievement.ID)
}

func (s *ContentService) UpdateAchievement(ctx context.Context, actor auth.Actor, id uuid.UUID, in AchievementInput) (*models.Achievement, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	achievement, err := s.achievements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	date, tagNames, categoryID, err := s.prepareAchievement(ctx, &in)
	if err != nil {
		return nil, err
	}

	image, err := s.assets.Store(ctx, "image", in.Image, FolderAchievements, AssetImage)
	if err != nil {
		return nil, err
	}
	certificate, err := s.assets.Store(ctx, "certificate", in.Certificate, FolderAchievements, AssetDocument)
	if err != nil {
		return nil, err
	}

	achievement.Title = in.Title
	achievement.Description = in.Description
	achievement.DateAchieved = date
	oldImage, oldCertificate := achievement.ImageURL, achievement.CertificateURL
	achievement.ImageURL = keepOr(achievement.ImageURL, image)
	achievement.CertificateURL = keepOr(achievement.CertificateURL, certificate)
	achievement.IsPublished = boolOr(in.IsPublished, achievement.IsPublished)
	achievement.CategoryID = categoryID
	achievement.Category = nil

	if err := s.achievements.Update(ctx, achievement, tagNames); err != nil {
		return nil, err
	}
	dropReplaced(ctx, s.assets, oldImage, image)
	dropReplaced(ctx, s.assets, oldCertificate, certificate)
	return s.achievements.FindByID(ctx, id)
}

func (s *ContentService) DeleteAchievement(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	return s.achievements.Delete(ctx, id)
}

// Experiences

// ListExperiences returns experiences by start date, newest first. Drafts are
// only included for admins.
func (s *ContentService) ListExperiences(ctx context.Context, actor auth.Actor) ([]models.Experience, error) {
	return s.experiences.List(ctx, !auth.CanViewUnpublished(actor))
}

func (s *ContentService) GetExperience(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Experience, error) {
	experience, err := s.experiences.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.VisibleOrNotFound(actor, experience.IsPublished, "experience"); err != nil {
		return nil, err
	}
	return experience, nil
}

type experienceFields struct {
	start    datatypes.Date
	end      *datatypes.Date
	tags     []string
	category *uuid.UUID
}

func (s *ContentService) prepareExperience(ctx context.Context, in *ExperienceInput) (experienceFields, error) {
	var f experienceFields
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Description = strings.TrimSpace(in.Description)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = trimmed(in.EndDate)
	in.Location = trimmed(in.Location)
	if err := validateInput(in); err != nil {
		return f, err
	}

	var err error
	if f.start, err = parseDate("start_date", in.StartDate); err != nil {
		return f, err
	}
	if in.EndDate != nil && !boolOr(in.IsCurrent, false) {
		end, err := parseDate("end_date", *in.EndDate)
		if err != nil {
			return f, err
		}
		if time.Time(end).Before(time.Time(f.start)) {
			return f, errs.NewInvalidFieldError("end_date", "must not be before start_date")
		}
		f.end = &end
	}
	if f.tags, err = ParseTagNames(in.Tags); err != nil {
		return f, err
	}
	if f.category, err = s.resolveCategory(ctx, in.CategoryID); err != nil {
		return f, err
	}
	return f, nil
}

func (s *ContentService) CreateExperience(ctx context.Context, actor auth.Actor, in ExperienceInput) (*models.Experience, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	f, err := s.prepareExperience(ctx, &in)
	if err != nil {
		return nil, err
	}

	experience := &models.Experience{
		Title:       in.Title,
		Company:     in.Company,
		Description: in.Description,
		StartDate:   f.start,
		EndDate:     f.end,
		Location:    in.Location,
		IsCurrent:   boolOr(in.IsCurrent, false),
		IsPublished: boolOr(in.IsPublished, true),
		CategoryID:  f.category,
	}
	if err := s.experiences.Create(ctx, experience, f.tags); err != nil {
		return nil, err
	}
	return s.experiences.FindByID(ctx, experience.ID)
}

func (s *ContentService) UpdateExperience(ctx context.Context, actor auth.Actor, id uuid.UUID, in ExperienceInput) (*models.Experience, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	experience, err := s.experiences.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.IsCurrent == nil {
		in.IsCurrent = &experience.IsCurrent
	}
	f, err := s.prepareExperience(ctx, &in)
	if err != nil {
		return nil, err
	}

	experience.Title = in.Title
	experience.Company = in.Company
	experience.Description = in.Description
	experience.StartDate = f.start
	experience.EndDate = f.end
	experience.Location = in.Location
	experience.IsCurrent = *in.IsCurrent
	experience.IsPublished = boolOr(in.IsPublished, experience.IsPublished)
	experience.CategoryID = f.category
	experience.Category = nil

	if err := s.experiences.Update(ctx, experience, f.tags); err != nil {
		return nil, err
	}
	return s.experiences.FindByID(ctx, id)
}

func (s *ContentService) DeleteExperience(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	return s.experiences.Delete(ctx, id)
}

// Taxonomy

func (s *ContentService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *ContentService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.List(ctx)
}

func (s *ContentService) GetCategory(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.categories.FindByID(ctx, id)
}

func (s *ContentService) CreateCategory(ctx context.Context, actor auth.Actor, in CategoryInput) (*models.Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = trimmed(in.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ContentService) UpdateCategory(ctx context.Context, actor auth.Actor, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Description = trimmed(in.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = in.Name
	category.Description = in.Description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category; content that used it becomes uncategorised.
func (s *ContentService) DeleteCategory(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
