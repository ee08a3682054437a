package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/models"
	"golang.org/x/sync/errgroup"
)

const maxCommentLength = 500

type CommentInput struct {
	Content string `json:"content"`
}

// LikeResult is the state of a (user, project) pair after a toggle.
type LikeResult struct {
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"like_count"`
	Message   string `json:"message"`
}

// ProjectDetail is a project page: the project, its approved comments newest
// first, and whether the viewer likes it.
type ProjectDetail struct {
	Project   *models.Project  `json:"project"`
	Comments  []models.Comment `json:"comments"`
	UserLiked bool             `json:"user_liked"`
}

// EngagementService handles likes and comments on projects.
type EngagementService struct {
	projects ProjectStore
	comments CommentStore
	likes    LikeStore
	notifier CommentNotifier
}

func NewEngagementService(projects ProjectStore, comments CommentStore, likes LikeStore, notifier CommentNotifier) *EngagementService {
	return &EngagementService{
		projects: projects,
		comments: comments,
		likes:    likes,
		notifier: notifier,
	}
}

func (s *EngagementService) visibleProject(ctx context.Context, actor auth.Actor, id uuid.UUID) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.VisibleOrNotFound(actor, project.IsPublished, "project"); err != nil {
		return nil, err
	}
	return project, nil
}

// ProjectDetail loads a project page for actor.
func (s *EngagementService) ProjectDetail(ctx context.Context, actor auth.Actor, id uuid.UUID) (*ProjectDetail, error) {
	project, err := s.visibleProject(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{Project: project}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := s.comments.ListApprovedForProject(gctx, id)
		detail.Comments = comments
		return err
	})
	if actor.Authenticated() {
		g.Go(func() error {
			liked, err := s.likes.Exists(gctx, actor.UserID, id)
			detail.UserLiked = liked
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if detail.Comments == nil {
		detail.Comments = []models.Comment{}
	}
	return detail, nil
}

// ToggleLike flips the actor's like on the project. Concurrent toggles for
// the same pair never leave more than one like behind.
func (s *EngagementService) ToggleLike(ctx context.Context, actor auth.Actor, projectID uuid.UUID) (*LikeResult, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	if _, err := s.visibleProject(ctx, actor, projectID); err != nil {
		return nil, err
	}

	liked, count, err := s.likes.Toggle(ctx, actor.UserID, projectID)
	if err != nil {
		return nil, err
	}

	key := "project_unliked"
	if liked {
		key = "project_liked"
	}
	return &LikeResult{Liked: liked, LikeCount: count, Message: i18n.T(actor.Locale, key)}, nil
}

// AddComment stores an approved comment and notifies the owner. A failed
// notification does not affect the comment.
func (s *EngagementService) AddComment(ctx context.Context, actor auth.Actor, projectID uuid.UUID, in CommentInput) (*models.Comment, error) {
	if err := auth.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if !ValidText(content) {
		return nil, errs.NewInvalidFieldError("content", textRule)
	}
	if content == "" {
		return nil, errs.NewEmptyCommentError()
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, errs.NewInvalidFieldError("content", "must be at most 500 characters")
	}

	project, err := s.visibleProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:    content,
		IsApproved: true,
		UserID:     actor.UserID,
		ProjectID:  project.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyNewComment(ctx, project, comment)
	}
	return comment, nil
}
