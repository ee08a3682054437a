package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"golang.org/x/sync/errgroup"
)

const (
	homeFeaturedLimit = 3
	homeRecentLimit   = 6
	dashboardComments = 5
)

// PortfolioQuery is the public project filter as sent by clients.
type PortfolioQuery struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`
	Search   string `json:"search"`
	Sort     string `json:"sort"`
}

type HomePage struct {
	Featured []models.Project `json:"featured_projects"`
	Recent   []models.Project `json:"recent_projects"`
	Projects []models.Project `json:"projects"`
	Sort     string           `json:"sort"`
}

type PortfolioPage struct {
	Projects   []models.Project  `json:"projects"`
	Categories []models.Category `json:"categories"`
	Tags       []models.Tag      `json:"tags"`
	Filters    PortfolioQuery    `json:"filters"`
}

type AboutPage struct {
	About        *models.AboutMe      `json:"about_me"`
	Skills       []string             `json:"skills"`
	Achievements []models.Achievement `json:"achievements"`
	Experiences  []models.Experience  `json:"experiences"`
}

type Dashboard struct {
	TotalProjects     int64            `json:"total_projects"`
	TotalAchievements int64            `json:"total_achievements"`
	TotalExperiences  int64            `json:"total_experiences"`
	TotalUsers        int64            `json:"total_users"`
	RecentComments    []models.Comment `json:"recent_comments"`
}

type AboutInput struct {
	Content      string  `json:"content" validate:"required"`
	Skills       *string `json:"skills"`
	ProfileImage *Upload `json:"-"`
	Resume       *Upload `json:"-"`
}

// SiteService assembles the public pages and the admin dashboard.
type SiteService struct {
	projects     ProjectStore
	achievements AchievementStore
	experiences  ExperienceStore
	categories   CategoryStore
	tags         TagStore
	users        UserStore
	comments     CommentStore
	about        AboutStore
	assets       AssetStore
}

func NewSiteService(
	projects ProjectStore,
	achievements AchievementStore,
	experiences ExperienceStore,
	categories CategoryStore,
	tags TagStore,
	users UserStore,
	comments CommentStore,
	about AboutStore,
	assets AssetStore,
) *SiteService {
	return &SiteService{
		projects:     projects,
		achievements: achievements,
		experiences:  experiences,
		categories:   categories,
		tags:         tags,
		users:        users,
		comments:     comments,
		about:        about,
		assets:       assets,
	}
}

// parseSort maps the sort parameter; anything but "popular" sorts by recency.
func parseSort(raw string) database.ProjectSort {
	if strings.EqualFold(strings.TrimSpace(raw), string(database.SortPopular)) {
		return database.SortPopular
	}
	return database.SortRecent
}

// Home returns up to three featured and six recent published projects, plus
// six projects in the requested order.
func (s *SiteService) Home(ctx context.Context, sort string) (*HomePage, error) {
	page := &HomePage{Sort: string(parseSort(sort))}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.projects.List(gctx, database.ProjectFilter{
			PublishedOnly: true, FeaturedOnly: true, Sort: database.SortRecent, Limit: homeFeaturedLimit,
		})
		page.Featured = projects
		return err
	})
	g.Go(func() error {
		projects, err := s.projects.List(gctx, database.ProjectFilter{
			PublishedOnly: true, Sort: database.SortRecent, Limit: homeRecentLimit,
		})
		page.Recent = projects
		return err
	})
	if page.Sort == string(database.SortPopular) {
		g.Go(func() error {
			projects, err := s.projects.List(gctx, database.ProjectFilter{
				PublishedOnly: true, Sort: database.SortPopular, Limit: homeRecentLimit,
			})
			page.Projects = projects
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if page.Projects == nil {
		page.Projects = page.Recent
	}
	return page, nil
}

// Portfolio lists published projects matching every given filter, with the
// categories and tags available for filtering.
func (s *SiteService) Portfolio(ctx context.Context, q PortfolioQuery) (*PortfolioPage, error) {
	if err := checkText(q); err != nil {
		return nil, err
	}
	q.Category = strings.TrimSpace(q.Category)
	q.Tag = strings.TrimSpace(q.Tag)
	q.Sort = string(parseSort(q.Sort))

	filter := database.ProjectFilter{
		PublishedOnly: true,
		TagName:       q.Tag,
		Search:        q.Search,
		Sort:          database.ProjectSort(q.Sort),
	}
	if q.Category != "" && q.Category != "0" {
		id, err := uuid.Parse(q.Category)
		if err != nil {
			return nil, errs.NewInvalidFieldError("category", "must be a category id")
		}
		filter.CategoryID = &id
	}

	page := &PortfolioPage{Filters: q}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := s.projects.List(gctx, filter)
		page.Projects = projects
		return err
	})
	g.Go(func() error {
		categories, err := s.categories.List(gctx)
		page.Categories = categories
		return err
	})
	g.Go(func() error {
		tags, err := s.tags.List(gctx)
		page.Tags = tags
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

// About returns the about row (nil when none exists) with the published
// achievements and experiences.
func (s *SiteService) About(ctx context.Context) (*AboutPage, error) {
	page := &AboutPage{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		about, err := s.about.Get(gctx)
		page.About = about
		return err
	})
	g.Go(func() error {
		achievements, err := s.achievements.List(gctx, true)
		page.Achievements = achievements
		return err
	})
	g.Go(func() error {
		experiences, err := s.experiences.List(gctx, true)
		page.Experiences = experiences
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page.Skills = []string{}
	if page.About != nil {
		if skills := page.About.SkillList(); skills != nil {
			page.Skills = skills
		}
	}
	return page, nil
}

// GetAbout returns the about row for editing, or an empty one.
func (s *SiteService) GetAbout(ctx context.Context, actor auth.Actor) (*models.AboutMe, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	about, err := s.about.Get(ctx)
	if err != nil {
		return nil, err
	}
	if about == nil {
		about = &models.AboutMe{}
	}
	return about, nil
}

// UpdateAbout writes the about row, creating it on first use.
func (s *SiteService) UpdateAbout(ctx context.Context, actor auth.Actor, in AboutInput) (*models.AboutMe, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	in.Content = strings.TrimSpace(in.Content)
	in.Skills = trimmed(in.Skills)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	about, err := s.about.Get(ctx)
	if err != nil {
		return nil, err
	}
	if about == nil {
		about = &models.AboutMe{}
	}

	image, err := s.assets.Store(ctx, "profile_image", in.ProfileImage, FolderAbout, AssetImage)
	if err != nil {
		return nil, err
	}
	resume, err := s.assets.Store(ctx, "resume", in.Resume, FolderAbout, AssetDocument)
	if err != nil {
		return nil, err
	}

	about.Content = in.Content
	about.Skills = in.Skills
	oldImage, oldResume := about.ProfileImage, about.ResumeURL
	about.ProfileImage = keepOr(about.ProfileImage, image)
	about.ResumeURL = keepOr(about.ResumeURL, resume)
	if err := s.about.Save(ctx, about); err != nil {
		return nil, err
	}
	dropReplaced(ctx, s.assets, oldImage, image)
	dropReplaced(ctx, s.assets, oldResume, resume)
	return about, nil
}

// Dashboard gathers the admin overview counts and the latest comments.
func (s *SiteService) Dashboard(ctx context.Context, actor auth.Actor) (*Dashboard, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	d := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			*dst = n
			return err
		})
	}
	count(&d.TotalProjects, s.projects.Count)
	count(&d.TotalAchievements, s.achievements.Count)
	count(&d.TotalExperiences, s.experiences.Count)
	count(&d.TotalUsers, s.users.Count)
	g.Go(func() error {
		comments, err := s.comments.Recent(gctx, dashboardComments)
		d.RecentComments = comments
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// ShareLink returns the share-intent URL for a project visible to actor.
// baseURL is used when BASE_URL is not configured.
func (s *SiteService) ShareLink(ctx context.Context, actor auth.Actor, projectID uuid.UUID, platform, baseURL string) (string, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if err := auth.VisibleOrNotFound(actor, project.IsPublished, "project"); err != nil {
		return "", err
	}
	return ShareURL(platform, project, baseURL)
}
