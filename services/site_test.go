package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

type siteFixture struct {
	svc          *SiteService
	projects     *fakeProjects
	achievements *fakeAchievements
	experiences  *fakeExperiences
	categories   *fakeCategories
	users        *fakeUsers
	comments     *fakeComments
	about        *fakeAbout
	assets       *fakeAssets
}

func newSiteFixture() *siteFixture {
	f := &siteFixture{
		projects:     &fakeProjects{},
		achievements: &fakeAchievements{},
		experiences:  &fakeExperiences{},
		categories:   newFakeCategories(),
		users:        newFakeUsers(),
		about:        &fakeAbout{},
		assets:       &fakeAssets{},
	}
	f.comments = &fakeComments{users: f.users}
	f.svc = NewSiteService(f.projects, f.achievements, f.experiences, f.categories,
		&fakeTags{names: []string{"Go", "rust"}}, f.users, f.comments, f.about, f.assets)
	return f
}

func TestParseSort(t *testing.T) {
	tests := map[string]database.ProjectSort{
		"":         database.SortRecent,
		"recent":   database.SortRecent,
		"popular":  database.SortPopular,
		" Popular": database.SortPopular,
		"oldest":   database.SortRecent,
	}
	for raw, want := range tests {
		if got := parseSort(raw); got != want {
			t.Errorf("parseSort(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestHome(t *testing.T) {
	f := newSiteFixture()
	for i := 0; i < 8; i++ {
		f.projects.add(models.Project{Title: fmt.Sprintf("p%d", i), IsPublished: true, IsFeatured: i%2 == 0})
	}
	f.projects.add(models.Project{Title: "draft", IsFeatured: true})

	page, err := f.svc.Home(context.Background(), "")
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if len(page.Featured) != 3 || len(page.Recent) != 6 {
		t.Fatalf("featured=%d recent=%d, want 3 and 6", len(page.Featured), len(page.Recent))
	}
	for _, p := range append(page.Featured, page.Recent...) {
		if !p.IsPublished {
			t.Errorf("draft %q on home page", p.Title)
		}
	}
	if page.Recent[0].Title != "p7" {
		t.Errorf("most recent = %q, want p7", page.Recent[0].Title)
	}
	if page.Sort != "recent" || len(page.Projects) != len(page.Recent) {
		t.Errorf("default sort = %q with %d projects", page.Sort, len(page.Projects))
	}

	popular, err := f.svc.Home(context.Background(), "popular")
	if err != nil {
		t.Fatalf("Home popular: %v", err)
	}
	if popular.Sort != "popular" {
		t.Errorf("sort = %q", popular.Sort)
	}
	var sawPopular bool
	for _, filter := range f.projects.filters {
		if filter.Sort == database.SortPopular && filter.PublishedOnly && filter.Limit == 6 {
			sawPopular = true
		}
	}
	if !sawPopular {
		t.Error("popular home did not query projects by popularity")
	}
}

func TestPortfolio(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()
	web := &models.Category{Name: "Web"}
	f.categories.Create(ctx, web)

	f.projects.add(models.Project{Title: "Blog engine", Description: "Go blog", IsPublished: true, CategoryID: &web.ID}, "Go")
	f.projects.add(models.Project{Title: "CLI", Description: "rust tool", IsPublished: true}, "rust")
	f.projects.add(models.Project{Title: "Hidden blog", Description: "draft", CategoryID: &web.ID}, "Go")

	tests := []struct {
		name  string
		query PortfolioQuery
		want  []string
	}{
		{"all published", PortfolioQuery{}, []string{"CLI", "Blog engine"}},
		{"by tag", PortfolioQuery{Tag: "Go"}, []string{"Blog engine"}},
		{"by category", PortfolioQuery{Category: web.ID.String()}, []string{"Blog engine"}},
		{"zero category means all", PortfolioQuery{Category: "0"}, []string{"CLI", "Blog engine"}},
		{"search", PortfolioQuery{Search: "tool"}, []string{"CLI"}},
		{"search is case sensitive", PortfolioQuery{Search: "TOOL"}, nil},
		{"combined filters", PortfolioQuery{Tag: "Go", Search: "rust"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.svc.Portfolio(ctx, tt.query)
			if err != nil {
				t.Fatalf("Portfolio: %v", err)
			}
			var titles []string
			for _, p := range page.Projects {
				titles = append(titles, p.Title)
			}
			if strings.Join(titles, "|") != strings.Join(tt.want, "|") {
				t.Errorf("projects = %v, want %v", titles, tt.want)
			}
			if len(page.Categories) != 1 || len(page.Tags) != 2 {
				t.Errorf("facets = %d categories, %d tags", len(page.Categories), len(page.Tags))
			}
		})
	}

	if _, err := f.svc.Portfolio(ctx, PortfolioQuery{Category: "web"}); fieldOf(err) != "category" {
		t.Errorf("malformed category: got %v", err)
	}
	if _, err := f.svc.Portfolio(ctx, PortfolioQuery{Search: "\xff"}); fieldOf(err) != "search" || !errs.IsValidation(err) {
		t.Errorf("invalid utf-8 search: got %v", err)
	}
	if _, err := f.svc.Portfolio(ctx, PortfolioQuery{Tag: "G\x00o"}); fieldOf(err) != "tag" {
		t.Errorf("nul in tag: got %v", err)
	}
}

func TestAbout(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()

	page, err := f.svc.About(ctx)
	if err != nil {
		t.Fatalf("About: %v", err)
	}
	if page.About != nil || page.Skills == nil || len(page.Skills) != 0 {
		t.Errorf("empty about page = %+v", page)
	}

	if _, err := f.svc.UpdateAbout(ctx, userActor, AboutInput{Content: "hi"}); errs.StatusOf(err) != http.StatusForbidden {
		t.Errorf("non-admin update: got %v", err)
	}
	if _, err := f.svc.UpdateAbout(ctx, adminActor, AboutInput{Content: "  "}); !errs.IsMissingRequiredFieldError(err) {
		t.Errorf("blank content: got %v", err)
	}

	about, err := f.svc.UpdateAbout(ctx, adminActor, AboutInput{
		Content: "I build things",
		Skills:  strPtr("Go\n\n  Postgres \n"),
		Resume:  &Upload{Filename: "cv.pdf", Content: strings.NewReader("%PDF")},
	})
	if err != nil {
		t.Fatalf("UpdateAbout: %v", err)
	}
	if about.ResumeURL == nil || *about.ResumeURL != "about/cv.pdf" {
		t.Errorf("resume = %v", about.ResumeURL)
	}

	again, err := f.svc.UpdateAbout(ctx, adminActor, AboutInput{Content: "Still building"})
	if err != nil {
		t.Fatalf("second UpdateAbout: %v", err)
	}
	if again.ID != about.ID || again.ResumeURL == nil {
		t.Errorf("second update should edit the same row and keep the resume: %+v", again)
	}

	f.achievements.items = []*models.Achievement{{ID: uuid.New(), Title: "public", IsPublished: true}, {ID: uuid.New(), Title: "draft"}}
	page, err = f.svc.About(ctx)
	if err != nil {
		t.Fatalf("About: %v", err)
	}
	if page.About.Content != "Still building" {
		t.Errorf("content = %q", page.About.Content)
	}
	if len(page.Achievements) != 1 {
		t.Errorf("achievements = %d, want published only", len(page.Achievements))
	}
	if len(page.Skills) != 0 {
		t.Errorf("skills = %v, want none after the second update cleared them", page.Skills)
	}

	edit, err := f.svc.GetAbout(ctx, adminActor)
	if err != nil || edit.ID != about.ID {
		t.Errorf("GetAbout = %+v, %v", edit, err)
	}
}

func TestAboutSkills(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()
	if _, err := f.svc.UpdateAbout(ctx, adminActor, AboutInput{Content: "bio", Skills: strPtr("Go\n\n  Postgres \n")}); err != nil {
		t.Fatalf("UpdateAbout: %v", err)
	}
	page, err := f.svc.About(ctx)
	if err != nil {
		t.Fatalf("About: %v", err)
	}
	if strings.Join(page.Skills, ",") != "Go,Postgres" {
		t.Errorf("skills = %v", page.Skills)
	}
}

func TestDashboard(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()

	if _, err := f.svc.Dashboard(ctx, anonActor); !errs.IsUnauthorized(err) {
		t.Errorf("anonymous: got %v", err)
	}

	project := f.projects.add(models.Project{Title: "p", IsPublished: true})
	f.projects.add(models.Project{Title: "draft"})
	f.experiences.items = []*models.Experience{{ID: uuid.New()}}
	user := &models.User{Username: "u", Email: "u@x.io"}
	f.users.Create(ctx, user)
	for i := 0; i < 7; i++ {
		f.comments.Create(ctx, &models.Comment{Content: fmt.Sprintf("c%d", i), UserID: user.ID, ProjectID: project.ID, IsApproved: true})
	}

	d, err := f.svc.Dashboard(ctx, adminActor)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.TotalProjects != 2 || d.TotalAchievements != 0 || d.TotalExperiences != 1 || d.TotalUsers != 1 {
		t.Errorf("totals = %+v", d)
	}
	if len(d.RecentComments) != 5 || d.RecentComments[0].Content != "c6" {
		t.Errorf("recent comments = %d, first %q", len(d.RecentComments), d.RecentComments[0].Content)
	}
}

func TestShareLink(t *testing.T) {
	f := newSiteFixture()
	ctx := context.Background()
	project := f.projects.add(models.Project{Title: "Site", IsPublished: true}, "Go", "Web Dev")
	draft := f.projects.add(models.Project{Title: "Draft"})

	link, err := f.svc.ShareLink(ctx, anonActor, project.ID, "x", "https://me.dev")
	if err != nil {
		t.Fatalf("ShareLink: %v", err)
	}
	if !strings.HasPrefix(link, "https://twitter.com/intent/tweet?") || !strings.Contains(link, "hashtags=go%2Cwebdev") {
		t.Errorf("link = %s", link)
	}

	if _, err := f.svc.ShareLink(ctx, anonActor, draft.ID, "linkedin", "https://me.dev"); !errs.IsNotFound(err) {
		t.Errorf("draft share: got %v", err)
	}
}
