package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/storage"
)

// The stubs embed the service interfaces so each test only implements the
// calls it expects; anything else panics and shows up as a 500.

type stubIdentity struct {
	IdentityService
	user      *models.User
	err       error
	resetFor  string
	lastLogin services.LoginInput
}

func (s *stubIdentity) Authenticate(ctx context.Context, in services.LoginInput) (*models.User, error) {
	s.lastLogin = in
	return s.user, s.err
}

func (s *stubIdentity) RequestReset(ctx context.Context, in services.ForgotPasswordInput) error {
	s.resetFor = in.Email
	return s.err
}

type stubContent struct {
	ContentService
	projects      []models.Project
	created       services.ProjectInput
	createdImage  string
	category      services.CategoryInput
	lastActor     auth.Actor
	deleteProject error
}

func (s *stubContent) ListAdminProjects(ctx context.Context, actor auth.Actor) ([]models.Project, error) {
	s.lastActor = actor
	return s.projects, nil
}

func (s *stubContent) CreateProject(ctx context.Context, actor auth.Actor, in services.ProjectInput) (*models.Project, error) {
	s.lastActor = actor
	s.created = in
	if in.Image != nil {
		s.createdImage = in.Image.Filename
	}
	return &models.Project{ID: uuid.New(), Title: in.Title}, nil
}

func (s *stubContent) DeleteProject(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	return s.deleteProject
}

func (s *stubContent) CreateCategory(ctx context.Context, actor auth.Actor, in services.CategoryInput) (*models.Category, error) {
	s.category = in
	return &models.Category{ID: uuid.New(), Name: in.Name}, nil
}

type stubEngagement struct {
	EngagementService
	likedBy auth.Actor
	detail  *services.ProjectDetail
}

func (s *stubEngagement) ToggleLike(ctx context.Context, actor auth.Actor, projectID uuid.UUID) (*services.LikeResult, error) {
	s.likedBy = actor
	return &services.LikeResult{Liked: true, LikeCount: 1, Message: "Project liked!"}, nil
}

func (s *stubEngagement) ProjectDetail(ctx context.Context, actor auth.Actor, id uuid.UUID) (*services.ProjectDetail, error) {
	if s.detail == nil {
		return nil, errs.NewNotFound("project")
	}
	return s.detail, nil
}

type stubSite struct {
	SiteService
	shareBaseURL   string
	sharePlatform  string
	homeSort       string
	portfolioQuery *services.PortfolioQuery
}

func (s *stubSite) Portfolio(ctx context.Context, q services.PortfolioQuery) (*services.PortfolioPage, error) {
	s.portfolioQuery = &q
	return &services.PortfolioPage{Filters: q}, nil
}

func (s *stubSite) ShareLink(ctx context.Context, actor auth.Actor, projectID uuid.UUID, platform, baseURL string) (string, error) {
	s.sharePlatform = platform
	s.shareBaseURL = baseURL
	return "https://twitter.com/intent/tweet?url=" + baseURL + "/project/" + projectID.String(), nil
}

func (s *stubSite) Home(ctx context.Context, sort string) (*services.HomePage, error) {
	s.homeSort = sort
	return &services.HomePage{Sort: sort}, nil
}

type stubUsers struct {
	users map[uuid.UUID]*models.User
}

func (s stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, errs.NewNotFound("user")
}

type stubAssets struct {
	objects map[string]string
	err     error
}

func (s stubAssets) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	body, ok := s.objects[key]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}
	return io.NopCloser(strings.NewReader(body)), "image/png", nil
}

type stubHealth struct {
	err error
}

func (s stubHealth) Ping(ctx context.Context) error {
	return s.err
}

var (
	adminUser   = &models.User{ID: uuid.New(), Username: "admin", Email: "admin@portfolio.com", IsAdmin: true}
	regularUser = &models.User{ID: uuid.New(), Username: "ana", Email: "ana@example.com"}
)

type testServer struct {
	handler  http.Handler
	sessions *auth.Sessions
}

// newTestServer builds the full router over deps, filling in sessions, a
// user directory with adminUser and regularUser, and a healthy database.
func newTestServer(t *testing.T, deps Dependencies, cfg map[string]string) testServer {
	t.Helper()

	sessions, err := auth.NewSessions("test-secret", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	deps.Sessions = sessions
	if deps.Users == nil {
		deps.Users = stubUsers{users: map[uuid.UUID]*models.User{
			adminUser.ID:   adminUser,
			regularUser.ID: regularUser,
		}}
	}
	if deps.Health == nil {
		deps.Health = stubHealth{}
	}
	if deps.Assets == nil {
		deps.Assets = stubAssets{}
	}
	if cfg == nil {
		cfg = map[string]string{}
	}

	return testServer{
		handler:  newRouter(deps, withConfig(cfg)),
		sessions: sessions,
	}
}

// tokenFor issues a session token for user.
func (s testServer) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, _, err := s.sessions.Issue(user.ID, false)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}
