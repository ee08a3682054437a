package services

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/storage"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return errs.NewDuplicateEmailError()
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) find(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.NewNotFound("user")
}

func (f *fakeUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ID == id })
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUsers) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.ResetToken != nil && *u.ResetToken == token })
}

func (f *fakeUsers) FindProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeUsers) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errs.NewNotFound("user")
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (f *fakeUsers) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token && u.ResetTokenExpiry.After(now) {
			u.PasswordHash = passwordHash
			u.ResetToken = nil
			u.ResetTokenExpiry = nil
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errs.NewNotFound("user")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id uuid.UUID, username string, aboutMe, profileImage *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errs.NewNotFound("user")
	}
	u.Username = username
	u.AboutMe = aboutMe
	if profileImage != nil {
		u.ProfileImage = profileImage
	}
	return nil
}

func (f *fakeUsers) Promote(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.IsAdmin = true
	}
	return nil
}

func (f *fakeUsers) CountAdmins(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, u := range f.users {
		if u.IsAdmin {
			n++
		}
	}
	return n, nil
}

func (f *fakeUsers) AdminEmails(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var emails []string
	for _, u := range f.users {
		if u.IsAdmin {
			emails = append(emails, u.Email)
		}
	}
	return emails, nil
}

func (f *fakeUsers) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeNetworks struct {
	networks []models.SocialNetwork
}

func (f *fakeNetworks) Create(ctx context.Context, network *models.SocialNetwork) error {
	network.ID = uuid.New()
	f.networks = append(f.networks, *network)
	return nil
}

func (f *fakeNetworks) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SocialNetwork, error) {
	var out []models.SocialNetwork
	for _, n := range f.networks {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNetworks) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	for i, n := range f.networks {
		if n.ID == id && n.UserID == userID {
			f.networks = append(f.networks[:i], f.networks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeCategories struct {
	categories map[uuid.UUID]*models.Category
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{categories: make(map[uuid.UUID]*models.Category)}
}

func (f *fakeCategories) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategories) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, errs.NewNotFound("category")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategories) Create(ctx context.Context, category *models.Category) error {
	for _, c := range f.categories {
		if c.Name == category.Name {
			return errs.NewUniqueConstraintViolationError("category", "name", nil)
		}
	}
	category.ID = uuid.New()
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f *fakeCategories) Update(ctx context.Context, category *models.Category) error {
	if _, ok := f.categories[category.ID]; !ok {
		return errs.NewNotFound("category")
	}
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f *fakeCategories) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.categories[id]; !ok {
		return errs.NewNotFound("category")
	}
	delete(f.categories, id)
	return nil
}

type fakeTags struct {
	names []string
}

func (f *fakeTags) List(ctx context.Context) ([]models.Tag, error) {
	var out []models.Tag
	for _, n := range f.names {
		out = append(out, models.Tag{ID: uuid.New(), Name: n})
	}
	return out, nil
}

// fakeProjects keeps projects in insertion order; tag names are stored as given.
type fakeProjects struct {
	mu       sync.Mutex
	projects []*models.Project
	filters  []database.ProjectFilter
	deleted  []uuid.UUID
}

func (f *fakeProjects) add(p models.Project, tags ...string) *models.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for _, t := range tags {
		p.Tags = append(p.Tags, models.Tag{ID: uuid.New(), Name: t})
	}
	f.projects = append(f.projects, &p)
	return &p
}

func (f *fakeProjects) List(ctx context.Context, filter database.ProjectFilter) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)

	var out []models.Project
	for i := len(f.projects) - 1; i >= 0; i-- {
		p := f.projects[i]
		if filter.PublishedOnly && !p.IsPublished {
			continue
		}
		if filter.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		if filter.TagName != "" && !hasTag(p.Tags, filter.TagName) {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.Title, filter.Search) && !strings.Contains(p.Description, filter.Search) {
			continue
		}
		out = append(out, *p)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func hasTag(tags []models.Tag, name string) bool {
	for _, t := range tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

func (f *fakeProjects) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errs.NewNotFound("project")
}

func (f *fakeProjects) Create(ctx context.Context, project *models.Project, tagNames []string) error {
	stored := f.add(*project, tagNames...)
	project.ID = stored.ID
	return nil
}

func (f *fakeProjects) Update(ctx context.Context, project *models.Project, tagNames []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == project.ID {
			cp := *project
			cp.Tags = nil
			for _, t := range tagNames {
				cp.Tags = append(cp.Tags, models.Tag{ID: uuid.New(), Name: t})
			}
			f.projects[i] = &cp
			return nil
		}
	}
	return errs.NewNotFound("project")
}

func (f *fakeProjects) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errs.NewNotFound("project")
}

func (f *fakeProjects) Count(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.projects)), nil
}

type fakeAchievements struct {
	items       []*models.Achievement
	listedDraft []bool
}

func (f *fakeAchievements) List(ctx context.Context, publishedOnly bool) ([]models.Achievement, error) {
	f.listedDraft = append(f.listedDraft, !publishedOnly)
	var out []models.Achievement
	for _, a := range f.items {
		if publishedOnly && !a.IsPublished {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAchievements) FindByID(ctx context.Context, id uuid.UUID) (*models.Achievement, error) {
	for _, a := range f.items {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, errs.NewNotFound("achievement")
}

func (f *fakeAchievements) Create(ctx context.Context, achievement *models.Achievement, tagNames []string) error {
	achievement.ID = uuid.New()
	for _, t := range tagNames {
		achievement.Tags = append(achievement.Tags, models.Tag{Name: t})
	}
	cp := *achievement
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeAchievements) Update(ctx context.Context, achievement *models.Achievement, tagNames []string) error {
	for i, a := range f.items {
		if a.ID == achievement.ID {
			cp := *achievement
			cp.Tags = nil
			for _, t := range tagNames {
				cp.Tags = append(cp.Tags, models.Tag{Name: t})
			}
			f.items[i] = &cp
			return nil
		}
	}
	return errs.NewNotFound("achievement")
}

func (f *fakeAchievements) Delete(ctx context.Context, id uuid.UUID) error {
	for i, a := range f.items {
		if a.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFound("achievement")
}

func (f *fakeAchievements) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeExperiences struct {
	items []*models.Experience
}

func (f *fakeExperiences) List(ctx context.Context, publishedOnly bool) ([]models.Experience, error) {
	var out []models.Experience
	for _, e := range f.items {
		if publishedOnly && !e.IsPublished {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeExperiences) FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	for _, e := range f.items {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, errs.NewNotFound("experience")
}

func (f *fakeExperiences) Create(ctx context.Context, experience *models.Experience, tagNames []string) error {
	experience.ID = uuid.New()
	experience.NormalizeEndDate()
	cp := *experience
	f.items = append(f.items, &cp)
	return nil
}

func (f *fakeExperiences) Update(ctx context.Context, experience *models.Experience, tagNames []string) error {
	for i, e := range f.items {
		if e.ID == experience.ID {
			experience.NormalizeEndDate()
			cp := *experience
			f.items[i] = &cp
			return nil
		}
	}
	return errs.NewNotFound("experience")
}

func (f *fakeExperiences) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range f.items {
		if e.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errs.NewNotFound("experience")
}

func (f *fakeExperiences) Count(ctx context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeComments struct {
	mu       sync.Mutex
	comments []models.Comment
	users    *fakeUsers
}

func (f *fakeComments) Create(ctx context.Context, comment *models.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	if f.users != nil {
		if u, err := f.users.FindByID(ctx, comment.UserID); err == nil {
			comment.User = u
			summary := u.Summary()
			comment.Author = &summary
		}
	}
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeComments) ListApprovedForProject(ctx context.Context, projectID uuid.UUID) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for i := len(f.comments) - 1; i >= 0; i-- {
		c := f.comments[i]
		if c.ProjectID == projectID && c.IsApproved {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComments) Recent(ctx context.Context, limit int) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for i := len(f.comments) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.comments[i])
	}
	return out, nil
}

func (f *fakeComments) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Comment
	for i := len(f.comments) - 1; i >= 0 && len(out) < limit; i-- {
		if f.comments[i].UserID == userID {
			out = append(out, f.comments[i])
		}
	}
	return out, nil
}

func (f *fakeComments) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, c := range f.comments {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

type likeKey struct {
	user, project uuid.UUID
}

// fakeLikes mirrors the unique (user, project) pair with a set.
type fakeLikes struct {
	mu    sync.Mutex
	likes map[likeKey]bool
}

func newFakeLikes() *fakeLikes {
	return &fakeLikes{likes: make(map[likeKey]bool)}
}

func (f *fakeLikes) Toggle(ctx context.Context, userID, projectID uuid.UUID) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := likeKey{userID, projectID}
	liked := !f.likes[key]
	if liked {
		f.likes[key] = true
	} else {
		delete(f.likes, key)
	}

	var count int64
	for k := range f.likes {
		if k.project == projectID {
			count++
		}
	}
	return liked, count, nil
}

func (f *fakeLikes) Exists(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likes[likeKey{userID, projectID}], nil
}

func (f *fakeLikes) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.likes {
		if k.user == userID {
			n++
		}
	}
	return n, nil
}

type fakeAbout struct {
	about *models.AboutMe
	saves int
}

func (f *fakeAbout) Get(ctx context.Context) (*models.AboutMe, error) {
	if f.about == nil {
		return nil, nil
	}
	cp := *f.about
	return &cp, nil
}

func (f *fakeAbout) Save(ctx context.Context, about *models.AboutMe) error {
	if about.ID == uuid.Nil {
		about.ID = uuid.New()
	}
	f.saves++
	cp := *about
	f.about = &cp
	return nil
}

// fakeAssets records uploads and removals and returns a predictable key.
type fakeAssets struct {
	stored  []string
	removed []string
}

func (f *fakeAssets) Remove(ctx context.Context, key string) {
	f.removed = append(f.removed, key)
}

func (f *fakeAssets) Store(ctx context.Context, field string, upload *Upload, subfolder string, kind AssetKind) (*string, error) {
	if upload == nil {
		return nil, nil
	}
	key := subfolder + "/" + upload.Filename
	f.stored = append(f.stored, key)
	return &key, nil
}

type sentMail struct {
	recipients []string
	subject    string
	body       string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, recipients []string, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{recipients, subject, body})
	return nil
}

type fakeTexter struct {
	to   []string
	body []string
	err  error
}

func (f *fakeTexter) Send(ctx context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.body = append(f.body, body)
	return nil
}

type memoryObjects struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (m *memoryObjects) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.err != nil {
		return m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memoryObjects) Delete(ctx context.Context, key string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.objects[key]; !ok {
		return storage.ErrObjectNotFound
	}
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
