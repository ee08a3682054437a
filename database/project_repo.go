package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// ProjectSort selects the ordering of a project listing.
type ProjectSort string

const (
	SortRecent  ProjectSort = "recent"
	SortPopular ProjectSort = "popular"
)

// ProjectFilter composes a project listing. Every set field narrows the
// result; the zero value lists all projects, newest first.
type ProjectFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	CategoryID    *uuid.UUID
	TagName       string
	Search        string
	LikedBy       *uuid.UUID
	Sort          ProjectSort
	Limit         int
}

// projectColumns selects a project with its live like and comment counts.
const projectColumns = "projects.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.project_id = projects.id) AS like_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.project_id = projects.id) AS comment_count"

// projectUpdateColumns are the columns an admin edit may change.
var projectUpdateColumns = []string{
	"title", "description", "demo_link", "github_link", "image_url", "video_url",
	"is_published", "is_featured", "category_id", "updated_at",
}

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func orderTagsByName(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}

func (r *ProjectRepo) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select(projectColumns).
		Preload("Category").
		Preload("Tags", orderTagsByName)
}

// List runs a filtered listing. Filters combine with AND; search is a
// case-sensitive substring match on title or description.
func (r *ProjectRepo) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	q := r.withDetails(ctx)

	if f.PublishedOnly {
		q = q.Where("projects.is_published = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("projects.is_featured = ?", true)
	}
	if f.CategoryID != nil {
		q = q.Where("projects.category_id = ?", *f.CategoryID)
	}
	if f.TagName != "" {
		q = q.Joins("JOIN project_tags ON project_tags.project_id = projects.id").
			Joins("JOIN tags ON tags.id = project_tags.tag_id AND tags.name = ?", f.TagName)
	}
	if f.LikedBy != nil {
		q = q.Where("EXISTS (SELECT 1 FROM likes WHERE likes.project_id = projects.id AND likes.user_id = ?)", *f.LikedBy)
	}
	if f.Search != "" {
		q = q.Where("(strpos(projects.title, ?) > 0 OR strpos(projects.description, ?) > 0)", f.Search, f.Search)
	}

	switch f.Sort {
	case SortPopular:
		q = q.Order("like_count DESC").Order("projects.created_at DESC")
	default:
		q = q.Order("projects.created_at DESC")
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var projects []models.Project
	if err := q.Find(&projects).Error; err != nil {
		return nil, translateError("list", "projects", err)
	}
	return projects, nil
}

// FindByID reads from the primary so an edit is visible on the next request.
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.withDetails(ctx).Clauses(dbresolver.Write).Where("projects.id = ?", id).Take(&project).Error
	if err != nil {
		return nil, translateError("find", "project", err)
	}
	return &project, nil
}

// Create inserts the project and links it to the named tags, creating tags as needed.
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project, tagNames []string) error {
	return translateError("create", "project", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := ensureTags(tx, tagNames)
		if err != nil {
			return err
		}

		project.Tags = tags
		return tx.Omit("Tags.*", "Category").Create(project).Error
	}))
}

// Update writes the editable columns and replaces the tag set with tagNames.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project, tagNames []string) error {
	return translateError("update", "project", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(project).Select(projectUpdateColumns).Updates(project)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceTags(tx, project, tagNames)
	}))
}

// Delete removes a project and everything hanging off it: comments, likes,
// and tag links. Tags themselves stay.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return translateError("delete", "project", r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProjectCascade(tx, id)
	}))
}

func deleteProjectCascade(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Exec("DELETE FROM project_tags WHERE project_id = ?", id).Error; err != nil {
		return err
	}

	res := tx.Delete(&models.Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("project")
	}
	return nil
}

func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, translateError("count", "projects", err)
}
